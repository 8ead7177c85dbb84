// Package htmx holds the few server-side conventions of the htmx protocol
// the roster pages rely on.
package htmx

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

const (
	// RequestHeader is sent by htmx on every request it issues.
	RequestHeader = "HX-Request"
	// TriggerHeader asks htmx to dispatch events on the requesting element.
	TriggerHeader = "HX-Trigger"
)

// IsHTMXRequest reports whether the request was initiated by htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeader), "true")
}

// Trigger adds events to the HX-Trigger response header.
func Trigger(w http.ResponseWriter, events ...string) {
	if len(events) == 0 {
		return
	}
	current := w.Header().Get(TriggerHeader)
	if current != "" {
		events = append([]string{current}, events...)
	}
	w.Header().Set(TriggerHeader, strings.Join(events, ", "))
}

// RenderPage renders fragments for htmx requests and full otherwise. If no
// fragment is given, full is used for both paths.
func RenderPage(w http.ResponseWriter, r *http.Request, full templ.Component, fragments ...templ.Component) {
	if IsHTMXRequest(r) && len(fragments) > 0 {
		Render(w, r, fragments...)
		return
	}
	if full == nil {
		return
	}
	Render(w, r, full)
}

// Render writes components one after the other. Out-of-band fragments are
// expected to follow the primary one.
func Render(w http.ResponseWriter, r *http.Request, components ...templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, c := range components {
		if c == nil {
			continue
		}
		if err := c.Render(r.Context(), w); err != nil {
			// Headers are gone at this point; the caller cannot recover.
			return
		}
	}
}
