package web

import (
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"

	"activityroster/internal/application"
	"activityroster/internal/ports/input"
	"activityroster/internal/ports/output"
)

//go:embed static
var staticFS embed.FS

// Translator is the i18n port plus locale negotiation.
type Translator interface {
	output.T
	Negotiate(preferences ...string) string
}

type Options struct {
	StatusTTL time.Duration
	// CSRFKey enables gorilla/csrf when it holds 32 bytes.
	CSRFKey    string
	CSRFSecure bool
	Metrics    http.Handler
	Logger     *slog.Logger
}

// Server is the browser-facing presenter of the roster.
type Server struct {
	roster     input.RosterUseCase
	translator Translator
	statusTTL  time.Duration
	markdown   func(string) string
	opts       Options
	logger     *slog.Logger
}

func NewServer(roster input.RosterUseCase, translator Translator, opts Options) *Server {
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = application.DefaultStatusTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	md := goldmark.New()
	return &Server{
		roster:     roster,
		translator: translator,
		statusTTL:  opts.StatusTTL,
		markdown: markdownRenderer(func(src []byte, w io.Writer) error {
			return md.Convert(src, w)
		}),
		opts:   opts,
		logger: logger,
	}
}

// Routes builds the chi router with its middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(s.logger))
	r.Use(s.withLocale)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	r.Group(func(r chi.Router) {
		if len(s.opts.CSRFKey) == 32 {
			r.Use(markPlaintext)
			r.Use(csrf.Protect([]byte(s.opts.CSRFKey),
				csrf.Secure(s.opts.CSRFSecure),
				csrf.Path("/"),
				csrf.RequestHeader("X-CSRF-Token"),
			))
		}
		r.Get("/", s.handleIndex)
		r.Get("/fragments/activities", s.handleActivities)
		r.Get("/message/hide", s.handleHideMessage)
		r.Post("/signup", s.handleSignup)
		r.Post("/roster/remove", s.handleRemove)
	})

	return r
}

// views binds the renderers to the request's locale and CSRF token.
func (s *Server) views(r *http.Request) views {
	locale := localeFrom(r.Context())
	var field template.HTML
	if len(s.opts.CSRFKey) == 32 {
		field = csrf.TemplateField(r)
	}
	return views{
		t: func(key string, data map[string]any) string {
			return s.translator.T(locale, key, data)
		},
		statusTTL: s.statusTTL,
		markdown:  s.markdown,
		csrf:      field,
	}
}

// markPlaintext tells gorilla/csrf to skip the TLS-only Referer check on
// plain HTTP listeners.
func markPlaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS == nil {
			r = csrf.PlaintextHTTPRequest(r)
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog is a structured access log in the spirit of chi's Logger.
func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
