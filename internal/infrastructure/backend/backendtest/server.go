// Package backendtest provides an in-memory activity backend for tests. It
// answers the three endpoints the roster client consumes with the same
// status codes and texts as the production service.
package backendtest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"

	"activityroster/internal/domain/entities"
)

// Request is one call received by the Server, with its escaped target.
type Request struct {
	Method   string
	Path     string
	RawQuery string
}

// Server is an httptest server backed by an ordered activity list.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	activities []entities.Activity
	requests   []Request
	override   http.HandlerFunc
}

// New starts a Server seeded with activities (copied).
func New(activities ...entities.Activity) *Server {
	s := &Server{}
	for _, a := range activities {
		a.Participants = slices.Clone(a.Participants)
		s.activities = append(s.activities, a)
	}

	r := chi.NewRouter()
	r.Use(s.recordRequest)
	r.Get("/activities", s.list)
	r.Post("/activities/{name}/signup", s.signup)
	r.Delete("/activities/{name}/signup", s.unregister)
	s.Server = httptest.NewServer(r)
	return s
}

// Override replaces every answer with h; nil restores the normal behaviour.
func (s *Server) Override(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = h
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Count returns how many calls matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Participants returns the roster of the named activity.
func (s *Server) Participants(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.activities {
		if a.Name == name {
			return slices.Clone(a.Participants)
		}
	}
	return nil
}

func (s *Server) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.EscapedPath(),
			RawQuery: r.URL.RawQuery,
		})
		override := s.override
		s.mu.Unlock()

		if override != nil {
			override(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range s.activities {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(a.Name)
		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		value, _ := json.Marshal(map[string]any{
			"description":      a.Description,
			"schedule":         a.Schedule,
			"max_participants": a.MaxParticipants,
			"participants":     participants,
		})
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	name := activityName(r)
	email := r.URL.Query().Get("email")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(name)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Activity not found"})
		return
	}
	if slices.Contains(s.activities[i].Participants, email) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"detail": fmt.Sprintf("Student %s is already signed up for %s", email, name),
		})
		return
	}
	s.activities[i].Participants = append(s.activities[i].Participants, email)
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Signed up %s for %s", email, name)})
}

func (s *Server) unregister(w http.ResponseWriter, r *http.Request) {
	name := activityName(r)
	email := r.URL.Query().Get("email")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(name)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Activity not found"})
		return
	}
	j := slices.Index(s.activities[i].Participants, email)
	if j < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"detail": fmt.Sprintf("Student %s is not signed up for %s", email, name),
		})
		return
	}
	s.activities[i].Participants = slices.Delete(s.activities[i].Participants, j, j+1)
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Unregistered %s from %s", email, name)})
}

// activityName undoes chi's raw-path routing for names holding escaped
// slashes.
func activityName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			return unescaped
		}
	}
	return name
}

func (s *Server) index(name string) int {
	for i, a := range s.activities {
		if a.Name == name {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
