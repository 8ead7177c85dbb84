package discord

import "github.com/bwmarrin/discordgo"

const maxModalTitle = 45

// BuildSignupModal asks for the email of a signup to activity.
func BuildSignupModal(customID, title, emailLabel, emailPlaceholder string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: customID,
		Title:    truncate(title, maxModalTitle),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    CustomIDEmailInput,
					Label:       emailLabel,
					Style:       discordgo.TextInputShort,
					Required:    true,
					Placeholder: emailPlaceholder,
				},
			}},
		},
	}
}

// TextInputValue returns the value of the text input with the given custom
// ID, or "" when the modal has none.
func TextInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if input, ok := rc.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
