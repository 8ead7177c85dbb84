package web

import (
	"context"
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"activityroster/internal/domain/entities"
	"activityroster/internal/ports/input"
	"activityroster/pkg/htmx"
)

// load runs the loader once. Both the list and the select rendered from the
// returned view come from this single fetch.
func (s *Server) load(ctx context.Context) rosterView {
	snap, err := s.roster.Load(ctx)
	if err != nil {
		return rosterView{failed: true}
	}
	return rosterView{snapshot: snap}
}

// reloaded renders the out-of-band swaps of a reload. A failed load only
// replaces the list; the select is left untouched.
func (s *Server) reloaded(ctx context.Context, v views) []templ.Component {
	rv := s.load(ctx)
	parts := []templ.Component{v.activitiesList(rv, true)}
	if !rv.failed {
		parts = append(parts, v.activitySelect(rv.snapshot, "", true))
	}
	return parts
}

// handleIndex handles GET /.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	v := s.views(r)
	page := pageView{
		locale: localeFrom(r.Context()),
		roster: s.load(r.Context()),
	}
	htmx.RenderPage(w, r, v.page(page))
}

// handleActivities handles GET /fragments/activities: the list and, when
// the load succeeded, the select out of band.
func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	v := s.views(r)
	rv := s.load(r.Context())
	parts := []templ.Component{v.activitiesList(rv, false)}
	if !rv.failed {
		parts = append(parts, v.activitySelect(rv.snapshot, "", true))
	}
	htmx.Render(w, r, parts...)
}

// handleHideMessage handles GET /message/hide, the end of the status TTL.
func (s *Server) handleHideMessage(w http.ResponseWriter, r *http.Request) {
	htmx.Render(w, r, s.views(r).message(entities.StatusMessage{}))
}

// handleSignup handles POST /signup.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	reg := entities.Registration{
		Activity: r.PostFormValue("activity"),
		Email:    r.PostFormValue("email"),
	}
	out := s.roster.Signup(r.Context(), localeFrom(r.Context()), reg)

	v := s.views(r)
	if !htmx.IsHTMXRequest(r) {
		form := formView{email: reg.Email, activity: reg.Activity}
		if out.Kind == input.OutcomeOK {
			form = formView{}
		}
		s.renderFullPage(w, r, v, out.Status, form, nil)
		return
	}

	parts := []templ.Component{v.message(out.Status)}
	if out.Reload {
		htmx.Trigger(w, eventSignedUp)
		parts = append(parts, s.reloaded(r.Context(), v)...)
	}
	htmx.Render(w, r, parts...)
}

// handleRemove handles POST /roster/remove for every removal control of the
// list. Without confirm=yes it only asks; with it, it deletes.
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	reg := registrationFromForm(r)
	if !reg.Complete() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	v := s.views(r)
	if r.PostFormValue("confirm") != "yes" {
		if htmx.IsHTMXRequest(r) {
			htmx.Render(w, r, v.confirmDialog(&reg, false))
			return
		}
		s.renderFullPage(w, r, v, entities.StatusMessage{}, formView{}, &reg)
		return
	}

	out := s.roster.Remove(r.Context(), localeFrom(r.Context()), reg)
	if out.Kind == input.OutcomeSkipped {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if !htmx.IsHTMXRequest(r) {
		s.renderFullPage(w, r, v, out.Status, formView{}, nil)
		return
	}

	parts := []templ.Component{v.message(out.Status), v.confirmDialog(nil, true)}
	if out.Reload {
		parts = append(parts, s.reloaded(r.Context(), v)...)
	}
	htmx.Render(w, r, parts...)
}

// renderFullPage serves browsers without htmx. A full page always needs the
// list, so it loads once regardless of the outcome.
func (s *Server) renderFullPage(w http.ResponseWriter, r *http.Request, v views, status entities.StatusMessage, form formView, confirm *entities.Registration) {
	page := pageView{
		locale:  localeFrom(r.Context()),
		roster:  s.load(r.Context()),
		form:    form,
		status:  status,
		confirm: confirm,
	}
	htmx.Render(w, r, v.page(page))
}

// registrationFromForm resolves the pair from the activated control: the
// packed "target" value of a list button, or the confirm dialog's fields.
// Values pass through as carried; activity names are opaque keys.
func registrationFromForm(r *http.Request) entities.Registration {
	if target := r.PostFormValue("target"); target != "" {
		values, err := url.ParseQuery(target)
		if err != nil {
			return entities.Registration{}
		}
		return entities.Registration{
			Activity: values.Get("activity"),
			Email:    values.Get("email"),
		}
	}
	return entities.Registration{
		Activity: r.PostFormValue("activity"),
		Email:    r.PostFormValue("email"),
	}
}
