package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"

	"activityroster/internal/application"
	"activityroster/internal/domain/entities"
)

//go:embed templates/*.html
var templatesFS embed.FS

// templates holds the DOM the browser side binds to: the activities-list,
// activity, signup-form, message, remove-form and confirm-dialog ids.
var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// eventSignedUp resets the signup form once a signup succeeded.
const eventSignedUp = "roster-signed-up"

// rosterView is one render cycle: the snapshot or the load failure.
type rosterView struct {
	snapshot entities.Snapshot
	failed   bool
}

// formView holds the values echoed back in the signup form.
type formView struct {
	email    string
	activity string
}

type pageView struct {
	locale  string
	roster  rosterView
	form    formView
	status  entities.StatusMessage
	confirm *entities.Registration
}

// Template data. Every string is translated before execution and escaped
// by html/template; only Description and CSRF are trusted markup.
type (
	pageData struct {
		Locale            string
		Title             string
		Subtitle          string
		ActivitiesHeading string
		SignupHeading     string
		List              listData
		Form              signupData
		Message           messageData
		CSRF              template.HTML
		Dialog            confirmData
	}

	listData struct {
		OOB         bool
		Failed      bool
		FailureText string
		Cards       []cardData
	}

	cardData struct {
		Name              string
		Description       template.HTML
		ScheduleLabel     string
		Schedule          string
		AvailabilityLabel string
		Spots             string
		ParticipantsLabel string
		NoParticipants    string
		Participants      []participantData
	}

	participantData struct {
		Activity string
		Email    string
		Target   string
		Label    string
	}

	selectData struct {
		OOB         bool
		Placeholder string
		Options     []optionData
	}

	optionData struct {
		Name     string
		Selected bool
	}

	signupData struct {
		CSRF             template.HTML
		EmailLabel       string
		EmailPlaceholder string
		Email            string
		ActivityLabel    string
		Select           selectData
		Submit           string
	}

	messageData struct {
		Visible bool
		Kind    entities.StatusKind
		Text    string
		DelayMS int64
	}

	confirmData struct {
		OOB    bool
		Prompt *promptData
	}

	promptData struct {
		Text     string
		Activity string
		Email    string
		Yes      string
		No       string
		CSRF     template.HTML
	}
)

// views renders the page pieces for one locale.
type views struct {
	t         func(key string, data map[string]any) string
	statusTTL time.Duration
	markdown  func(string) string
	csrf      template.HTML
}

// component executes one named template as a templ.Component, so fragments
// compose with the htmx helpers.
func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, data)
	})
}

// removeTarget packs the item-local pair into the removal control's value.
func removeTarget(reg entities.Registration) string {
	v := url.Values{}
	v.Set("activity", reg.Activity)
	v.Set("email", reg.Email)
	return v.Encode()
}

func (v views) page(p pageView) templ.Component {
	return component("page", pageData{
		Locale:            p.locale,
		Title:             v.t("page.title", nil),
		Subtitle:          v.t("page.subtitle", nil),
		ActivitiesHeading: v.t("page.activities_heading", nil),
		SignupHeading:     v.t("page.signup_heading", nil),
		List:              v.listData(p.roster, false),
		Form:              v.signupData(p.roster, p.form),
		Message:           v.messageData(p.status),
		CSRF:              v.csrf,
		Dialog:            v.confirmData(p.confirm, false),
	})
}

// activitiesList renders the whole list region. A failed load replaces it
// with the static failure text.
func (v views) activitiesList(r rosterView, oob bool) templ.Component {
	return component("list", v.listData(r, oob))
}

func (v views) listData(r rosterView, oob bool) listData {
	d := listData{OOB: oob, Failed: r.failed}
	if r.failed {
		d.FailureText = v.t(application.KeyLoadFailed, nil)
		return d
	}
	for _, a := range r.snapshot.Activities {
		d.Cards = append(d.Cards, v.cardData(a))
	}
	return d
}

func (v views) cardData(a entities.Activity) cardData {
	c := cardData{
		Name:              a.Name,
		Description:       template.HTML(v.markdown(a.Description)),
		ScheduleLabel:     v.t(application.KeySchedule, nil),
		Schedule:          a.Schedule,
		AvailabilityLabel: v.t(application.KeyAvailability, nil),
		Spots:             v.t(application.KeySpotsLeft, map[string]any{"Count": a.SpotsLeft()}),
		ParticipantsLabel: v.t(application.KeyParticipants, nil),
		NoParticipants:    v.t(application.KeyNoParticipants, nil),
	}
	for _, p := range a.Participants {
		c.Participants = append(c.Participants, participantData{
			Activity: a.Name,
			Email:    p,
			Target:   removeTarget(entities.Registration{Activity: a.Name, Email: p}),
			Label:    v.t(application.KeyRemoveLabel, map[string]any{"Email": p}),
		})
	}
	return c
}

// activitySelect renders the selection control: one placeholder option
// followed by every activity name in snapshot order.
func (v views) activitySelect(s entities.Snapshot, selected string, oob bool) templ.Component {
	return component("select", v.selectData(s, selected, oob))
}

func (v views) selectData(s entities.Snapshot, selected string, oob bool) selectData {
	d := selectData{OOB: oob, Placeholder: v.t(application.KeySelectPlaceholder, nil)}
	for _, name := range s.Names() {
		d.Options = append(d.Options, optionData{Name: name, Selected: name == selected})
	}
	return d
}

func (v views) signupData(r rosterView, f formView) signupData {
	return signupData{
		CSRF:             v.csrf,
		EmailLabel:       v.t("form.email", nil),
		EmailPlaceholder: v.t("form.email_placeholder", nil),
		Email:            f.email,
		ActivityLabel:    v.t("form.activity", nil),
		Select:           v.selectData(r.snapshot, f.activity, false),
		Submit:           v.t("form.submit", nil),
	}
}

// message renders the status area. A visible message swaps itself for the
// hidden area after the TTL; a newer message replaces the element and with
// it the pending hide.
func (v views) message(s entities.StatusMessage) templ.Component {
	return component("message", v.messageData(s))
}

func (v views) messageData(s entities.StatusMessage) messageData {
	return messageData{
		Visible: s.Visible,
		Kind:    s.Kind,
		Text:    s.Text,
		DelayMS: v.statusTTL.Milliseconds(),
	}
}

// confirmDialog asks before a removal. Cancel closes the dialog natively
// without any request.
func (v views) confirmDialog(reg *entities.Registration, oob bool) templ.Component {
	return component("confirm", v.confirmData(reg, oob))
}

func (v views) confirmData(reg *entities.Registration, oob bool) confirmData {
	d := confirmData{OOB: oob}
	if reg == nil {
		return d
	}
	d.Prompt = &promptData{
		Text:     v.t(application.KeyConfirmRemove, map[string]any{"Email": reg.Email, "Activity": reg.Activity}),
		Activity: reg.Activity,
		Email:    reg.Email,
		Yes:      v.t("confirm.yes", nil),
		No:       v.t("confirm.no", nil),
		CSRF:     v.csrf,
	}
	return d
}

// markdownRenderer adapts goldmark to a string function; on failure the
// raw text is escaped instead.
func markdownRenderer(convert func([]byte, io.Writer) error) func(string) string {
	return func(src string) string {
		var buf bytes.Buffer
		if err := convert([]byte(src), &buf); err != nil {
			return "<p>" + template.HTMLEscapeString(src) + "</p>"
		}
		return strings.TrimSpace(buf.String())
	}
}
