package conductor

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// URL returns the fully qualified URL of the request with spaces escaped
func (r Request) URL(cfg Config) string {
	return escapeSpaces(cfg.BaseURL() + r.Path)
}

// payload returns the body actually transmitted. POST and PUT always carry
// one, GET and DELETE never do.
func (r Request) payload() *string {
	switch r.Method {
	case http.MethodPost, http.MethodPut:
		if r.Body == nil {
			body := emptyBody
			return &body
		}
		return r.Body
	default:
		return nil
	}
}

// BuildRequest builds the HTTP request for a request shape. The path and
// query are written to the request line as typed, apart from spaces.
func BuildRequest(ctx context.Context, cfg Config, r Request) (*http.Request, error) {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported method: %s", r.Method)
	}

	var req *http.Request
	var err error

	if body := r.payload(); body != nil {
		req, err = http.NewRequestWithContext(ctx, r.Method, cfg.BaseURL(), strings.NewReader(*body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, r.Method, cfg.BaseURL(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
	}

	// Opaque bypasses URL parsing, so '#' and '%' reach the server unchanged
	req.URL.Opaque = escapeSpaces(r.Path)

	return req, nil
}

func escapeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}
