package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activityroster/internal/application"
	"activityroster/internal/domain/entities"
	"activityroster/internal/infrastructure/backend"
	"activityroster/internal/infrastructure/backend/backendtest"
	"activityroster/internal/infrastructure/i18n"
	"activityroster/internal/infrastructure/metrics"
)

func seed() []entities.Activity {
	return []entities.Activity{
		{Name: "Chess Club", Description: "Learn strategies", Schedule: "Fridays, 3:30 PM - 5:00 PM", MaxParticipants: 12,
			Participants: []string{"michael@mergington.edu", "daniel@mergington.edu"}},
		{Name: "Art Club", Description: "Explore drawing", Schedule: "Tuesdays, 4:00 PM - 6:00 PM", MaxParticipants: 15},
		{Name: "Gym Class", Description: "Sports", Schedule: "Mondays", MaxParticipants: 30,
			Participants: []string{"john@mergington.edu"}},
	}
}

type fixture struct {
	handler http.Handler
	backend *backendtest.Server
}

func newFixture(t *testing.T, opts Options, activities ...entities.Activity) fixture {
	t.Helper()
	srv := backendtest.New(activities...)
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(srv.URL, srv.Client())
	require.NoError(t, err)
	tr := i18n.NewTranslator("en")
	svc := application.NewRosterService(backend.NewActivityGateway(client), tr, metrics.New(), nil)
	return fixture{
		handler: NewServer(svc, tr, opts).Routes(),
		backend: srv,
	}
}

func (f fixture) do(t *testing.T, method, target string, form url.Values, hx bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if hx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

var optionRe = regexp.MustCompile(`<option value="([^"]*)"`)

func TestIndexRendersSnapshot(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)

	rec := f.do(t, http.MethodGet, "/", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `<div id="activities-list">`)
	assert.Contains(t, body, "10 spots left")
	assert.Contains(t, body, "15 spots left")
	assert.Contains(t, body, "29 spots left")
	assert.Equal(t, 1, strings.Count(body, `class="no-participants"`))
	assert.Equal(t, 2, strings.Count(body, `class="participants-list"`))
	assert.Contains(t, body, `data-activity="Chess Club" data-email="michael@mergington.edu"`)
	assert.Contains(t, body, `<form id="remove-form"`)

	var options []string
	for _, m := range optionRe.FindAllStringSubmatch(body, -1) {
		options = append(options, m[1])
	}
	assert.Equal(t, []string{"", "Chess Club", "Art Club", "Gym Class"}, options)
	assert.Equal(t, 1, f.backend.Count(http.MethodGet, "/activities"))
}

func TestIndexLoadFailureShowsStaticMessage(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)
	f.backend.Override(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"boom"}`))
	})

	body := f.do(t, http.MethodGet, "/", nil, false).Body.String()
	assert.Contains(t, body, "Failed to load activities. Please try again later.")
	assert.NotContains(t, body, "activity-card")
}

func TestActivitiesFragmentLeavesSelectOnFailure(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)

	ok := f.do(t, http.MethodGet, "/fragments/activities", nil, true).Body.String()
	assert.Contains(t, ok, `<select id="activity" name="activity" required hx-swap-oob="true">`)

	f.backend.Override(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	failed := f.do(t, http.MethodGet, "/fragments/activities", nil, true).Body.String()
	assert.Contains(t, failed, "Failed to load activities")
	assert.NotContains(t, failed, `<select`)
}

func TestSignupSuccessReloadsAndResetsForm(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)
	f.do(t, http.MethodGet, "/", nil, false)

	rec := f.do(t, http.MethodPost, "/signup", url.Values{"activity": {"Chess Club"}, "email": {"a@b.com"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.True(t, strings.HasPrefix(body, `<div id="message" class="success"`))
	assert.Contains(t, body, "Signed up a@b.com for Chess Club")
	assert.Equal(t, eventSignedUp, rec.Header().Get("HX-Trigger"))
	assert.Contains(t, body, `<div id="activities-list" hx-swap-oob="true">`)
	assert.Contains(t, body, "9 spots left")
	assert.Equal(t, 2, f.backend.Count(http.MethodGet, "/activities"))

	reqs := f.backend.Requests()
	assert.Equal(t, "/activities/Chess%20Club/signup", reqs[1].Path)
	assert.Equal(t, "email=a%40b.com", reqs[1].RawQuery)
}

func TestSignupRejectedKeepsFormAndSkipsReload(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)

	rec := f.do(t, http.MethodPost, "/signup", url.Values{"activity": {"Chess Club"}, "email": {"michael@mergington.edu"}}, true)
	body := rec.Body.String()

	assert.True(t, strings.HasPrefix(body, `<div id="message" class="error"`))
	assert.Contains(t, body, "Student michael@mergington.edu is already signed up for Chess Club")
	assert.Empty(t, rec.Header().Get("HX-Trigger"))
	assert.NotContains(t, body, "activities-list")
	assert.Equal(t, 0, f.backend.Count(http.MethodGet, "/activities"))
}

func TestSignupRejectedWithoutDetailUsesGenericText(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)
	f.backend.Override(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{}`))
	})

	body := f.do(t, http.MethodPost, "/signup", url.Values{"activity": {"Chess Club"}, "email": {"a@b.com"}}, true).Body.String()
	assert.Contains(t, body, ">An error occurred</div>")
}

func TestSignupTransportFailure(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)
	f.backend.Close()

	body := f.do(t, http.MethodPost, "/signup", url.Values{"activity": {"Chess Club"}, "email": {"a@b.com"}}, true).Body.String()
	assert.Contains(t, body, `class="error"`)
	assert.Contains(t, body, "Failed to sign up. Please try again.")
}

func TestSignupWithoutHTMXRendersFullPage(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)

	body := f.do(t, http.MethodPost, "/signup", url.Values{"activity": {"Chess Club"}, "email": {"michael@mergington.edu"}}, false).Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `value="michael@mergington.edu"`)
	assert.Contains(t, body, `<option value="Chess Club" selected>`)
}

func TestFullPageFallbackLoadsOnce(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)

	rejected := f.do(t, http.MethodPost, "/signup", url.Values{"activity": {"Chess Club"}, "email": {"michael@mergington.edu"}}, false).Body.String()
	assert.Contains(t, rejected, "is already signed up for Chess Club")
	assert.Equal(t, 1, f.backend.Count(http.MethodGet, "/activities"))

	ok := f.do(t, http.MethodPost, "/signup", url.Values{"activity": {"Art Club"}, "email": {"a@b.com"}}, false).Body.String()
	assert.Contains(t, ok, "Signed up a@b.com for Art Club")
	assert.Contains(t, ok, "14 spots left")
	assert.Equal(t, 2, f.backend.Count(http.MethodGet, "/activities"))
}

func TestRemoveAsksBeforeDeleting(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)
	target := removeTarget(entities.Registration{Activity: "Chess Club", Email: "michael@mergington.edu"})

	rec := f.do(t, http.MethodPost, "/roster/remove", url.Values{"target": {target}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "Remove michael@mergington.edu from Chess Club?")
	assert.Contains(t, body, `<form method="dialog">`)
	assert.Empty(t, f.backend.Requests())
}

func TestRemoveConfirmedDeletesAndReloads(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)

	rec := f.do(t, http.MethodPost, "/roster/remove", url.Values{
		"activity": {"Chess Club"},
		"email":    {"michael@mergington.edu"},
		"confirm":  {"yes"},
	}, true)
	body := rec.Body.String()

	assert.True(t, strings.HasPrefix(body, `<div id="message" class="success"`))
	assert.Contains(t, body, "Unregistered michael@mergington.edu from Chess Club")
	assert.Contains(t, body, `<div id="confirm-dialog" hx-swap-oob="true"></div>`)
	assert.Contains(t, body, "11 spots left")

	reqs := f.backend.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodDelete, reqs[0].Method)
	assert.Equal(t, "/activities/Chess%20Club/signup", reqs[0].Path)
	assert.Equal(t, "email=michael%40mergington.edu", reqs[0].RawQuery)
	assert.Equal(t, http.MethodGet, reqs[1].Method)
	assert.Equal(t, []string{"daniel@mergington.edu"}, f.backend.Participants("Chess Club"))
}

func TestRemoveRejectedDoesNotReload(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)

	body := f.do(t, http.MethodPost, "/roster/remove", url.Values{
		"activity": {"Art Club"},
		"email":    {"ghost@mergington.edu"},
		"confirm":  {"yes"},
	}, true).Body.String()

	assert.Contains(t, body, "Student ghost@mergington.edu is not signed up for Art Club")
	assert.Equal(t, 0, f.backend.Count(http.MethodGet, "/activities"))
}

func TestRemoveWithMissingDataIsSilent(t *testing.T) {
	f := newFixture(t, Options{}, seed()...)

	for _, form := range []url.Values{
		{"target": {"activity=Chess+Club"}},
		{"email": {"a@b.com"}, "confirm": {"yes"}},
		{},
	} {
		rec := f.do(t, http.MethodPost, "/roster/remove", form, true)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	}
	assert.Empty(t, f.backend.Requests())
}

func TestMessageAutoHides(t *testing.T) {
	f := newFixture(t, Options{StatusTTL: 5 * time.Second}, seed()...)

	body := f.do(t, http.MethodPost, "/signup", url.Values{"activity": {"Art Club"}, "email": {"a@b.com"}}, true).Body.String()
	assert.Contains(t, body, `hx-get="/message/hide" hx-trigger="load delay:5000ms" hx-swap="outerHTML"`)

	hidden := f.do(t, http.MethodGet, "/message/hide", nil, true).Body.String()
	assert.Equal(t, `<div id="message" class="hidden"></div>`, hidden)
}

func TestParticipantsAreEscaped(t *testing.T) {
	f := newFixture(t, Options{}, entities.Activity{
		Name:            "Chess <Club>",
		MaxParticipants: 2,
		Participants:    []string{`"><script>alert(1)</script>`},
	})

	body := f.do(t, http.MethodGet, "/", nil, false).Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "<h4>Chess &lt;Club&gt;</h4>")
}

func TestLocaleFromAcceptLanguage(t *testing.T) {
	f := newFixture(t, Options{}, entities.Activity{Name: "Club", MaxParticipants: 3})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "Aucun participant pour l&#39;instant")
	assert.Contains(t, rec.Body.String(), `<html lang="fr">`)
}

func TestCSRFProtectsMutations(t *testing.T) {
	f := newFixture(t, Options{CSRFKey: strings.Repeat("k", 32)}, seed()...)

	rec := f.do(t, http.MethodPost, "/signup", url.Values{"activity": {"Chess Club"}, "email": {"a@b.com"}}, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.backend.Requests())

	page := f.do(t, http.MethodGet, "/", nil, false).Body.String()
	assert.Contains(t, page, `name="gorilla.csrf.Token"`)
}

func TestHealthAndMetrics(t *testing.T) {
	m := metrics.New()
	f := newFixture(t, Options{Metrics: m.Handler()})

	assert.Equal(t, "ok", f.do(t, http.MethodGet, "/health", nil, false).Body.String())
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/metrics", nil, false).Code)
}

func TestStaticStyles(t *testing.T) {
	f := newFixture(t, Options{})

	rec := f.do(t, http.MethodGet, "/static/styles.css", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".hidden")
}

func TestRemoveKeepsActivityNameVerbatim(t *testing.T) {
	f := newFixture(t, Options{}, entities.Activity{
		Name:            "Chess Club ",
		MaxParticipants: 5,
		Participants:    []string{"a@b.com"},
	})
	target := removeTarget(entities.Registration{Activity: "Chess Club ", Email: "a@b.com"})

	prompt := f.do(t, http.MethodPost, "/roster/remove", url.Values{"target": {target}}, true).Body.String()
	assert.Contains(t, prompt, `<input type="hidden" name="activity" value="Chess Club ">`)

	body := f.do(t, http.MethodPost, "/roster/remove", url.Values{
		"activity": {"Chess Club "},
		"email":    {"a@b.com"},
		"confirm":  {"yes"},
	}, true).Body.String()

	assert.Contains(t, body, "Unregistered a@b.com from Chess Club ")
	reqs := f.backend.Requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, "/activities/Chess%20Club%20/signup", reqs[0].Path)
	assert.Empty(t, f.backend.Participants("Chess Club "))
}
