package web

import (
	"context"
	"net/http"
)

type localeKey struct{}

// withLocale negotiates the request locale from Accept-Language once per
// request.
func (s *Server) withLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := s.translator.Negotiate(r.Header.Get("Accept-Language"))
		ctx := context.WithValue(r.Context(), localeKey{}, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func localeFrom(ctx context.Context) string {
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale
}
