package discord

import "activityroster/internal/domain/entities"

// StatusContent prefixes a status message with its kind's emoji.
func StatusContent(msg entities.StatusMessage) string {
	if !msg.Visible {
		return ""
	}
	if msg.Kind == entities.StatusSuccess {
		return "✅ " + msg.Text
	}
	return "❌ " + msg.Text
}
