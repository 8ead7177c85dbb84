package discord

import (
	"fmt"
	"strconv"
	"strings"

	"activityroster/internal/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Discord message limits.
const (
	MaxEmbeds        = 10
	MaxSelectOptions = 25
	maxFieldValue    = 1024
	maxTitle         = 256
	maxDescription   = 4096
)

const embedColor = 0x5865F2

// RosterLabels are the translated texts of a roster message.
type RosterLabels struct {
	Schedule          string
	Availability      string
	Participants      string
	NoParticipants    string
	SignupPlaceholder string
	RemoveButton      string
	SpotsLeft         func(n int) string
	Truncated         func(shown int) string
}

// BuildRosterEmbeds renders one embed per activity in snapshot order, up to
// MaxEmbeds. truncated reports whether activities were left out.
func BuildRosterEmbeds(s entities.Snapshot, l RosterLabels) (embeds []*discordgo.MessageEmbed, truncated bool) {
	activities := s.Activities
	if len(activities) > MaxEmbeds {
		activities = activities[:MaxEmbeds]
		truncated = true
	}
	embeds = make([]*discordgo.MessageEmbed, 0, len(activities))
	for _, a := range activities {
		embeds = append(embeds, activityEmbed(a, l))
	}
	return embeds, truncated
}

func activityEmbed(a entities.Activity, l RosterLabels) *discordgo.MessageEmbed {
	participants := l.NoParticipants
	if a.HasParticipants() {
		participants = formatParticipants(a.Participants)
	}
	return &discordgo.MessageEmbed{
		Title:       truncate(a.Name, maxTitle),
		Description: truncate(a.Description, maxDescription),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: l.Schedule, Value: fieldValue(a.Schedule), Inline: true},
			{Name: l.Availability, Value: fieldValue(l.SpotsLeft(a.SpotsLeft())), Inline: true},
			{Name: l.Participants, Value: fieldValue(participants)},
		},
	}
}

// formatParticipants lists emails as a markdown bullet list. Emails are
// wrapped in code spans so Discord does not turn them into links.
func formatParticipants(emails []string) string {
	var b strings.Builder
	for i, e := range emails {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- `%s`", strings.ReplaceAll(e, "`", "'"))
	}
	return b.String()
}

// BuildRosterComponents renders the signup select and the removal button.
// The select lists activity names in snapshot order.
func BuildRosterComponents(s entities.Snapshot, l RosterLabels) []discordgo.MessageComponent {
	var components []discordgo.MessageComponent
	names := s.Names()
	if len(names) > 0 {
		if len(names) > MaxSelectOptions {
			names = names[:MaxSelectOptions]
		}
		options := make([]discordgo.SelectMenuOption, 0, len(names))
		for _, n := range names {
			options = append(options, discordgo.SelectMenuOption{Label: truncate(n, 100), Value: n})
		}
		components = append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{CustomID: CustomIDSignupSelect, Placeholder: l.SignupPlaceholder, Options: options},
		}})
	}
	components = append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: "🗑️ " + l.RemoveButton, Style: discordgo.DangerButton, CustomID: CustomIDRemoveButton},
	}})
	return components
}

// RemovalPager holds the paging labels of the participant picker.
type RemovalPager struct {
	Placeholder string
	Previous    string
	Next        string
}

// RemovalPages is how many pages of MaxSelectOptions the picker needs.
func RemovalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + MaxSelectOptions - 1) / MaxSelectOptions
}

// BuildRemovalSelect renders one page of the participant picker. Option
// values are indexes into the whole candidates slice, so a pick stays valid
// whatever the page. Previous/Next buttons appear when there is more than
// one page.
func BuildRemovalSelect(candidates []entities.Registration, page int, l RemovalPager) []discordgo.MessageComponent {
	pages := RemovalPages(len(candidates))
	page = max(0, min(page, pages-1))
	first := page * MaxSelectOptions
	last := min(first+MaxSelectOptions, len(candidates))

	options := make([]discordgo.SelectMenuOption, 0, last-first)
	for i := first; i < last; i++ {
		c := candidates[i]
		options = append(options, discordgo.SelectMenuOption{
			Label:       truncate(c.Email, 100),
			Value:       strconv.Itoa(i),
			Description: truncate(c.Activity, 100),
		})
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{CustomID: CustomIDRemoveSelect, Placeholder: l.Placeholder, Options: options},
		}},
	}
	if pages > 1 {
		components = append(components, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "◀ " + l.Previous, Style: discordgo.SecondaryButton, CustomID: CustomIDRemovePrevious, Disabled: page == 0},
			discordgo.Button{Label: fmt.Sprintf("%d/%d", page+1, pages), Style: discordgo.SecondaryButton, CustomID: customIDRemovePageLabel, Disabled: true},
			discordgo.Button{Label: l.Next + " ▶", Style: discordgo.SecondaryButton, CustomID: CustomIDRemoveNext, Disabled: page == pages-1},
		}})
	}
	return components
}

// BuildConfirmButtons renders the Confirm and Cancel pair of a removal.
func BuildConfirmButtons(confirm, cancel string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: confirm, Style: discordgo.DangerButton, CustomID: CustomIDRemoveConfirm},
			discordgo.Button{Label: cancel, Style: discordgo.SecondaryButton, CustomID: CustomIDRemoveCancel},
		}},
	}
}

func fieldValue(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return truncate(s, maxFieldValue)
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
