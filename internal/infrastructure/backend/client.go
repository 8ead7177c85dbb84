package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"activityroster/internal/domain"
)

const (
	maxBodyBytes    = 1 << 20
	requestIDHeader = "X-Request-ID"
)

// Client performs raw calls against the activity backend.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient validates baseURL and returns a Client. A nil httpClient gets a
// default one with a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: invalid base url %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend: invalid base url %q: scheme or host missing", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: parsed, http: httpClient}, nil
}

type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// do sends one request. escapedPath and rawQuery must already be encoded.
func (c *Client) do(ctx context.Context, method, escapedPath, rawQuery string) (response, error) {
	target := c.base.String() + escapedPath
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	op := method + " " + escapedPath

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return response{}, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return response{}, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, &domain.TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	return response{status: resp.StatusCode, body: body}, nil
}

// requestID reuses the inbound request id when the call originates from an
// HTTP handler so backend logs can be correlated.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// encodeComponent percent-encodes s exactly like encodeURIComponent: every
// UTF-8 byte outside A-Z a-z 0-9 and -_.!~*'() becomes %XX.
func encodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if componentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func componentSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func signupPath(activity string) string {
	return "/activities/" + encodeComponent(activity) + "/signup"
}

func emailQuery(email string) string {
	return "email=" + encodeComponent(email)
}
