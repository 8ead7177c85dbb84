package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	pkgdiscord "activityroster/pkg/discord"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	guildID string
	logger  *slog.Logger
}

// NewBot opens no connection yet; Run does.
func NewBot(token, guildID string, handler *Handler, logger *slog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bot{
		session: s,
		handler: handler,
		guildID: guildID,
		logger:  logger,
	}
	b.session.AddHandler(b.handleInteraction)
	return b, nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handler.Dispatch(s, i)
}

// Run registers the slash command and serves interactions until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open session: %w", err)
	}
	defer b.session.Close()

	cmd := b.handler.Command()
	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.guildID, cmd); err != nil {
		b.logger.Warn("error registering command", "command", cmd.Name, "error", err)
	}

	b.logger.Info("discord bot online", "user", b.session.State.User.Username, "guild", b.guildID)
	<-ctx.Done()
	return nil
}

// Dispatch routes an interaction to its handler by type and custom ID.
func (h *Handler) Dispatch(s Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == CommandName {
			h.HandleCommand(s, i)
		}
	case discordgo.InteractionModalSubmit:
		if activity, ok := pkgdiscord.ActivityFromModalID(i.ModalSubmitData().CustomID); ok {
			h.HandleSignupModal(s, i, activity)
		}
	case discordgo.InteractionMessageComponent:
		switch i.MessageComponentData().CustomID {
		case pkgdiscord.CustomIDSignupSelect:
			h.HandleSignupSelect(s, i)
		case pkgdiscord.CustomIDRemoveButton:
			h.HandleRemoveButton(s, i)
		case pkgdiscord.CustomIDRemoveSelect:
			h.HandleRemoveSelect(s, i)
		case pkgdiscord.CustomIDRemovePrevious:
			h.HandleRemovePage(s, i, -1)
		case pkgdiscord.CustomIDRemoveNext:
			h.HandleRemovePage(s, i, 1)
		case pkgdiscord.CustomIDRemoveConfirm:
			h.HandleRemoveConfirm(s, i)
		case pkgdiscord.CustomIDRemoveCancel:
			h.HandleRemoveCancel(s, i)
		}
	}
}
