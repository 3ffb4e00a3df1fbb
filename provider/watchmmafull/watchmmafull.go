// Package watchmmafull scrapes watchmmafull.com, a WordPress site listing
// combat sports events with one embedded player per mirror.
package watchmmafull

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/network"
	"github.com/fluxstream/fluxstream/slug"
	"github.com/fluxstream/fluxstream/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const (
	ID      = "watchmmafull"
	BaseURL = "https://watchmmafull.com"

	searchSelector = "article h2 a[href], .entry-title a[href], .post-title a[href]"
	serverSelector = ".video-server"
	pageSuffix     = ".html"
)

type Source struct {
	info    source.Info
	base    *url.URL
	fetcher network.Fetcher
	titles  source.Titles
	locale  string
	search  *slug.Resolver
}

var _ source.Source = (*Source)(nil)

type Option func(*Source)

// WithBaseURL points the source at a mirror.
func WithBaseURL(raw string) Option {
	return func(s *Source) {
		s.base = lo.Must(url.Parse(raw))
		s.info.BaseURL = raw
	}
}

// WithMaxDistance sets the similarity floor of search matches.
func WithMaxDistance(limit mo.Option[int]) Option {
	return func(s *Source) {
		s.search.MaxDistance = limit
	}
}

// WithLocale sets the language titles are looked up in.
func WithLocale(locale string) Option {
	return func(s *Source) {
		s.locale = locale
	}
}

func New(fetcher network.Fetcher, titles source.Titles, opts ...Option) *Source {
	s := &Source{
		info: source.Info{
			ID:           ID,
			Label:        "WatchMMAFull",
			ContentTypes: []id.ContentType{id.Series},
			Countries:    []source.CountryCode{source.Multi, source.EN},
			BaseURL:      BaseURL,
		},
		base:    lo.Must(url.Parse(BaseURL)),
		fetcher: fetcher,
		titles:  titles,
		locale:  "en",
		search: &slug.Resolver{
			Fetcher:  fetcher,
			Selector: searchSelector,
			Suffix:   pageSuffix,
		},
	}

	for _, opt := range opts {
		opt(s)
	}
	s.search.BaseURL = s.base

	return s
}

func (s *Source) Info() source.Info {
	return s.info
}

func (s *Source) Scrape(ctx context.Context, _ id.ContentType, identifier id.ID) ([]*source.Result, error) {
	found, err := slug.ForID(ctx, ID, identifier, s.titles, s.locale, s.search)
	if err != nil {
		return nil, err
	}

	eventSlug, ok := found.Get()
	if !ok {
		return []*source.Result{}, nil
	}

	page, err := s.base.Parse("/" + eventSlug + pageSuffix)
	if err != nil {
		return nil, fmt.Errorf("event page of %q: %w", eventSlug, err)
	}

	body, err := s.fetcher.Text(ctx, page, network.WithBrowserHeaders())
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	return servers(doc, s.info), nil
}

// servers lists one result per mirror button. The server number counts every
// button, so numbering stays stable when a button carries an unusable URL.
func servers(doc *goquery.Document, info source.Info) []*source.Result {
	results := []*source.Result{}

	doc.Find(serverSelector).Each(func(i int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.AttrOr("data-url", ""))
		if raw == "" {
			return
		}

		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return
		}

		serverID := strings.TrimSpace(sel.AttrOr("data-id", ""))
		if serverID == "" {
			serverID = "unknown"
		}

		results = append(results, source.NewResult(info, u.String(), fmt.Sprintf("Server %d (%s)", i+1, serverID)))
	})

	return results
}
