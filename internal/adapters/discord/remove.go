package discord

import (
	"context"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"activityroster/internal/application"
	"activityroster/internal/domain/entities"
	"activityroster/internal/ports/input"
	pkgdiscord "activityroster/pkg/discord"
)

// HandleRemoveButton loads the roster and offers every participant in it,
// MaxSelectOptions per page.
func (h *Handler) HandleRemoveButton(s Session, i *discordgo.InteractionCreate) {
	locale := h.locale(i)
	snap, err := h.roster.Load(context.Background())
	if err != nil {
		h.respondEphemeral(s, i.Interaction, "❌ "+h.t(locale, application.KeyLoadFailed, nil))
		return
	}

	var candidates []entities.Registration
	for _, a := range snap.Activities {
		for _, p := range a.Participants {
			candidates = append(candidates, entities.Registration{Activity: a.Name, Email: p})
		}
	}
	if len(candidates) == 0 {
		h.respondEphemeral(s, i.Interaction, "ℹ️ "+h.t(locale, keyRemoveNone, nil))
		return
	}
	p := &pendingRemoval{candidates: candidates}
	if i.Message != nil {
		p.channelID, p.messageID = i.Message.ChannelID, i.Message.ID
	}
	h.setPending(userID(i), p)

	h.respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:      discordgo.MessageFlagsEphemeral,
			Components: pkgdiscord.BuildRemovalSelect(candidates, 0, h.removalPager(locale)),
		},
	})
}

// HandleRemovePage moves the user's picker by delta pages.
func (h *Handler) HandleRemovePage(s Session, i *discordgo.InteractionCreate, delta int) {
	candidates, page, ok := h.turnPending(userID(i), delta)
	if !ok {
		return
	}
	h.respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Components: pkgdiscord.BuildRemovalSelect(candidates, page, h.removalPager(h.locale(i))),
		},
	})
}

func (h *Handler) removalPager(locale string) pkgdiscord.RemovalPager {
	return pkgdiscord.RemovalPager{
		Placeholder: h.t(locale, keyRemovePlaceholder, nil),
		Previous:    h.t(locale, keyRemovePrevious, nil),
		Next:        h.t(locale, keyRemoveNext, nil),
	}
}

// HandleRemoveSelect asks for confirmation of the picked participant.
func (h *Handler) HandleRemoveSelect(s Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return
	}
	idx, err := strconv.Atoi(data.Values[0])
	if err != nil {
		return
	}
	reg, ok := h.choosePending(userID(i), idx)
	if !ok {
		return
	}

	locale := h.locale(i)
	h.respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content: h.roster.ConfirmPrompt(locale, reg),
			Components: pkgdiscord.BuildConfirmButtons(
				h.t(locale, "confirm.yes", nil),
				h.t(locale, "confirm.no", nil),
			),
		},
	})
}

// HandleRemoveConfirm deletes the chosen participant.
func (h *Handler) HandleRemoveConfirm(s Session, i *discordgo.InteractionCreate) {
	p := h.takePending(userID(i))
	if p == nil || p.chosen == nil {
		return
	}

	locale := h.locale(i)
	out := h.roster.Remove(context.Background(), locale, *p.chosen)
	if out.Kind == input.OutcomeSkipped {
		return
	}
	h.showStatus(s, i, out.Status, true)
	if out.Reload {
		h.refreshRoster(s, locale, p.channelID, p.messageID)
	}
}

// HandleRemoveCancel drops the removal without any backend request.
func (h *Handler) HandleRemoveCancel(s Session, i *discordgo.InteractionCreate) {
	h.setPending(userID(i), nil)
	if !h.respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}) {
		return
	}
	if err := s.InteractionResponseDelete(i.Interaction); err != nil {
		h.logger.Debug("error deleting prompt", "interaction", i.ID, "error", err)
	}
}
