// Package fetchtest provides an in-memory network.Fetcher for tests.
package fetchtest

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/fluxstream/fluxstream/network"
)

// Fetcher serves canned pages keyed by full URL. Unknown URLs answer 404.
type Fetcher struct {
	mu     sync.Mutex
	pages  map[string]string
	errs   map[string]error
	calls  []string
	// Hang makes every fetch block until the context is done.
	Hang bool
}

var _ network.Fetcher = (*Fetcher)(nil)

func New() *Fetcher {
	return &Fetcher{pages: map[string]string{}, errs: map[string]error{}}
}

// Page registers body for rawURL.
func (f *Fetcher) Page(rawURL, body string) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[rawURL] = body
	return f
}

// Fail makes rawURL answer with err.
func (f *Fetcher) Fail(rawURL string, err error) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[rawURL] = err
	return f
}

// Calls returns the fetched URLs in order.
func (f *Fetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fetcher) Text(ctx context.Context, u *url.URL, _ ...network.Option) (string, error) {
	raw := u.String()

	f.mu.Lock()
	f.calls = append(f.calls, raw)
	body, ok := f.pages[raw]
	err := f.errs[raw]
	hang := f.Hang
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
		return "", &network.Error{URL: raw, Err: ctx.Err()}
	}

	switch {
	case err != nil:
		return "", err
	case !ok:
		return "", &network.Error{URL: raw, Status: http.StatusNotFound}
	default:
		return body, nil
	}
}
