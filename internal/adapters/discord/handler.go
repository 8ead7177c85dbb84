package discord

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"activityroster/internal/application"
	"activityroster/internal/domain/entities"
	"activityroster/internal/ports/input"
	"activityroster/internal/ports/output"
	pkgdiscord "activityroster/pkg/discord"
)

// Session is the part of *discordgo.Session the handlers talk to.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseDelete(interaction *discordgo.Interaction, options ...discordgo.RequestOption) error
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Session = (*discordgo.Session)(nil)

// Translator is the i18n port plus locale negotiation.
type Translator interface {
	output.T
	Negotiate(preferences ...string) string
}

// pendingRemoval is a user's removal in progress, from the button press to
// Confirm or Cancel.
type pendingRemoval struct {
	channelID  string
	messageID  string
	candidates []entities.Registration
	page       int
	chosen     *entities.Registration
}

// Handler handles Discord interactions using the roster use cases.
type Handler struct {
	roster     input.RosterUseCase
	translator Translator
	statusTTL  time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	boards  map[string]*application.StatusBoard
	pending map[string]*pendingRemoval
}

// NewHandler creates a Handler.
func NewHandler(roster input.RosterUseCase, translator Translator, statusTTL time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		roster:     roster,
		translator: translator,
		statusTTL:  statusTTL,
		logger:     logger,
		boards:     make(map[string]*application.StatusBoard),
		pending:    make(map[string]*pendingRemoval),
	}
}

// board returns the status area of one user, so a new action supersedes
// only that user's previous message.
func (h *Handler) board(userID string) *application.StatusBoard {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.boards[userID]
	if !ok {
		b = application.NewStatusBoard(h.statusTTL)
		h.boards[userID] = b
	}
	return b
}

// dropIdleBoard forgets the user's board once its message has expired. A
// superseded message leaves the board visible, so it stays.
func (h *Handler) dropIdleBoard(userID string, b *application.StatusBoard) {
	if b.Current().Visible {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.boards[userID] == b && !b.Current().Visible {
		delete(h.boards, userID)
	}
}

func (h *Handler) setPending(userID string, p *pendingRemoval) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p == nil {
		delete(h.pending, userID)
		return
	}
	h.pending[userID] = p
}

// choosePending records the picked candidate of the user's removal.
func (h *Handler) choosePending(userID string, idx int) (entities.Registration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.pending[userID]
	if p == nil || idx < 0 || idx >= len(p.candidates) {
		return entities.Registration{}, false
	}
	reg := p.candidates[idx]
	p.chosen = &reg
	return reg, true
}

// turnPending moves the user's picker by delta pages, clamped to the
// candidates.
func (h *Handler) turnPending(userID string, delta int) ([]entities.Registration, int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.pending[userID]
	if p == nil {
		return nil, 0, false
	}
	p.page = max(0, min(p.page+delta, pkgdiscord.RemovalPages(len(p.candidates))-1))
	return p.candidates, p.page, true
}

// takePending removes and returns the user's removal in progress.
func (h *Handler) takePending(userID string) *pendingRemoval {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.pending[userID]
	delete(h.pending, userID)
	return p
}

func (h *Handler) locale(i *discordgo.InteractionCreate) string {
	return h.translator.Negotiate(string(i.Locale))
}

func (h *Handler) t(locale, key string, data map[string]any) string {
	return h.translator.T(locale, key, data)
}
