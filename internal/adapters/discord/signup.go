package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"activityroster/internal/application"
	"activityroster/internal/domain/entities"
	pkgdiscord "activityroster/pkg/discord"
)

// HandleSignupSelect ouvre le modal "Email" pour l'activité choisie.
func (h *Handler) HandleSignupSelect(s Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return
	}
	locale := h.locale(i)
	activity := data.Values[0]

	id, ok := pkgdiscord.SignupModalID(activity)
	if !ok {
		h.logger.Warn("activity name too long for a modal", "activity", activity)
		h.respondEphemeral(s, i.Interaction, "❌ "+h.t(locale, application.KeyErrorGeneric, nil))
		return
	}
	h.respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: pkgdiscord.BuildSignupModal(id,
			h.t(locale, keySignupModalTitle, map[string]any{"Activity": activity}),
			h.t(locale, keySignupEmailLabel, nil),
			h.t(locale, "form.email_placeholder", nil),
		),
	})
}

// HandleSignupModal traite la soumission du modal d'inscription et, si le
// backend l'accepte, rafraîchit le message du roster d'où il a été ouvert.
func (h *Handler) HandleSignupModal(s Session, i *discordgo.InteractionCreate, activity string) {
	locale := h.locale(i)
	reg := entities.Registration{
		Activity: activity,
		Email:    pkgdiscord.TextInputValue(i.ModalSubmitData(), pkgdiscord.CustomIDEmailInput),
	}

	out := h.roster.Signup(context.Background(), locale, reg)
	h.showStatus(s, i, out.Status, false)
	if out.Reload && i.Message != nil {
		h.refreshRoster(s, locale, i.Message.ChannelID, i.Message.ID)
	}
}
