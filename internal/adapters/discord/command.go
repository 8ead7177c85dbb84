package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"activityroster/internal/application"
	"activityroster/internal/domain/entities"
	pkgdiscord "activityroster/pkg/discord"
)

// CommandName is the slash command posting the roster.
const CommandName = "activities"

// Discord-only message IDs.
const (
	keyCommandDescription = "discord.command.description"
	keySignupPlaceholder  = "discord.signup.placeholder"
	keySignupModalTitle   = "discord.signup.modal_title"
	keySignupEmailLabel   = "discord.signup.email_label"
	keyRemoveButton       = "discord.remove.button"
	keyRemovePlaceholder  = "discord.remove.placeholder"
	keyRemoveNone         = "discord.remove.none"
	keyRemovePrevious     = "discord.remove.previous"
	keyRemoveNext         = "discord.remove.next"
	keyRosterTruncated    = "discord.roster.truncated"
)

// Command describes the slash command, localized for every supported locale.
func (h *Handler) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        CommandName,
		Description: h.t(h.translator.Negotiate(), keyCommandDescription, nil),
		DescriptionLocalizations: &map[discordgo.Locale]string{
			discordgo.French: h.t("fr", keyCommandDescription, nil),
		},
	}
}

// HandleCommand posts the roster in the channel.
func (h *Handler) HandleCommand(s Session, i *discordgo.InteractionCreate) {
	locale := h.locale(i)
	snap, err := h.roster.Load(context.Background())
	if err != nil {
		h.respondEphemeral(s, i.Interaction, "❌ "+h.t(locale, application.KeyLoadFailed, nil))
		return
	}
	content, embeds, components := h.rosterMessage(locale, snap)
	h.respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     embeds,
			Components: components,
		},
	})
}

func (h *Handler) rosterLabels(locale string) pkgdiscord.RosterLabels {
	return pkgdiscord.RosterLabels{
		Schedule:          h.t(locale, application.KeySchedule, nil),
		Availability:      h.t(locale, application.KeyAvailability, nil),
		Participants:      h.t(locale, application.KeyParticipants, nil),
		NoParticipants:    h.t(locale, application.KeyNoParticipants, nil),
		SignupPlaceholder: h.t(locale, keySignupPlaceholder, nil),
		RemoveButton:      h.t(locale, keyRemoveButton, nil),
		SpotsLeft: func(n int) string {
			return h.t(locale, application.KeySpotsLeft, map[string]any{"Count": n})
		},
		Truncated: func(n int) string {
			return h.t(locale, keyRosterTruncated, map[string]any{"Count": n})
		},
	}
}

// rosterMessage renders a snapshot. Embeds and the select both come from
// the same snapshot.
func (h *Handler) rosterMessage(locale string, snap entities.Snapshot) (string, []*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	labels := h.rosterLabels(locale)
	embeds, truncated := pkgdiscord.BuildRosterEmbeds(snap, labels)
	content := ""
	if truncated {
		content = labels.Truncated(len(embeds))
	}
	return content, embeds, pkgdiscord.BuildRosterComponents(snap, labels)
}

// refreshRoster reloads the posted roster after a successful action. On a
// failed load the embeds give way to the failure text and the components
// are left untouched.
func (h *Handler) refreshRoster(s Session, locale, channelID, messageID string) {
	if channelID == "" || messageID == "" {
		return
	}
	edit := &discordgo.MessageEdit{ID: messageID, Channel: channelID}

	snap, err := h.roster.Load(context.Background())
	if err != nil {
		content := "❌ " + h.t(locale, application.KeyLoadFailed, nil)
		embeds := []*discordgo.MessageEmbed{}
		edit.Content = &content
		edit.Embeds = &embeds
	} else {
		content, embeds, components := h.rosterMessage(locale, snap)
		edit.Content = &content
		edit.Embeds = &embeds
		edit.Components = &components
	}

	if _, err := s.ChannelMessageEditComplex(edit); err != nil {
		h.logger.Error("error refreshing roster", "channel", channelID, "message", messageID, "error", err)
	}
}
