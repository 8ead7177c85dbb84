package discord

import (
	"github.com/bwmarrin/discordgo"

	"activityroster/internal/domain/entities"
	pkgdiscord "activityroster/pkg/discord"
)

// userID is the member's ID in a guild, the user's in a DM.
func userID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (h *Handler) respond(s Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) bool {
	if err := s.InteractionRespond(i, resp); err != nil {
		h.logger.Error("error responding to interaction", "interaction", i.ID, "error", err)
		return false
	}
	return true
}

func (h *Handler) respondEphemeral(s Session, i *discordgo.Interaction, content string) bool {
	return h.respond(s, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// showStatus puts msg on the user's board. The response carrying it is
// deleted when it expires or when the user's next action supersedes it.
func (h *Handler) showStatus(s Session, i *discordgo.InteractionCreate, msg entities.StatusMessage, update bool) {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: pkgdiscord.StatusContent(msg),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
	if update {
		resp.Type = discordgo.InteractionResponseUpdateMessage
		resp.Data.Components = []discordgo.MessageComponent{}
	}
	if !h.respond(s, i.Interaction, resp) {
		return
	}
	interaction := i.Interaction
	uid := userID(i)
	b := h.board(uid)
	b.Show(msg, func() {
		if err := s.InteractionResponseDelete(interaction); err != nil {
			h.logger.Debug("error deleting status", "interaction", interaction.ID, "error", err)
		}
		h.dropIdleBoard(uid, b)
	})
}
