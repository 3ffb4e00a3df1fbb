// Package fullfightreplays scrapes fullfightreplays.com.
//
// Only players present in the served HTML are found; pages that inject their
// player from scripts yield no results.
package fullfightreplays

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
	ID      = "fullfightreplays"
	BaseURL = "https://fullfightreplays.com"

	searchSelector = ".short_cont h3 a[href], .inf_raited_title a[href]"
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

func WithBaseURL(raw string) Option {
	return func(s *Source) {
		s.base = lo.Must(url.Parse(raw))
		s.info.BaseURL = raw
	}
}

func WithMaxDistance(limit mo.Option[int]) Option {
	return func(s *Source) {
		s.search.MaxDistance = limit
	}
}

func WithLocale(locale string) Option {
	return func(s *Source) {
		s.locale = locale
	}
}

func New(fetcher network.Fetcher, titles source.Titles, opts ...Option) *Source {
	s := &Source{
		info: source.Info{
			ID:           ID,
			Label:        "FullFightReplays",
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

	page, err := s.base.Parse("/" + eventSlug)
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

	results := collect(doc, "iframe", "Embed", s.base, s.info)
	return append(results, collect(doc, "video source", "Video", s.base, s.info)...), nil
}

// collect resolves the src of every element matching selector against the
// site root. Elements without src or with a non-http URL are skipped.
func collect(doc *goquery.Document, selector, label string, base *url.URL, info source.Info) []*source.Result {
	results := []*source.Result{}

	doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
		src := strings.TrimSpace(sel.AttrOr("src", ""))
		if src == "" {
			return
		}

		u, err := base.Parse(src)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return
		}

		results = append(results, source.NewResult(info, u.String(), fmt.Sprintf("%s %d", label, i+1)))
	})

	return results
}
