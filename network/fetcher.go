// Package network fetches upstream pages for sources and metadata lookups.
package network

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Fetcher retrieves the body of a URL as text.
// Implementations must be safe for concurrent use.
type Fetcher interface {
	Text(ctx context.Context, u *url.URL, opts ...Option) (string, error)
}

// Error reports a transport failure or a non-2xx response.
// Status is 0 when no response was received.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports whether the upstream answered 404.
func (e *Error) NotFound() bool {
	return e.Status == http.StatusNotFound
}

type request struct {
	headers http.Header
	noCache bool
}

// Option adjusts a single fetch.
type Option func(*request)

// WithHeader sets a request header.
func WithHeader(k, v string) Option {
	return func(r *request) {
		r.headers.Set(k, v)
	}
}

// WithBrowserHeaders sends the header set of a desktop browser navigating to the page.
func WithBrowserHeaders() Option {
	return func(r *request) {
		r.headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.headers.Set("Accept-Language", "en-US,en;q=0.5")
		r.headers.Set("Upgrade-Insecure-Requests", "1")
	}
}

// WithoutCache bypasses the page cache for this fetch.
func WithoutCache() Option {
	return func(r *request) {
		r.noCache = true
	}
}

func newRequest(opts []Option) *request {
	r := &request{headers: make(http.Header)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
