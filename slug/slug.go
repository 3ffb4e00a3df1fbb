// Package slug finds the site-specific path of an event by searching the site
// for a title and picking the closest match.
package slug

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fluxstream/fluxstream/network"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Candidate is one search hit.
type Candidate struct {
	Href     string
	Title    string
	Distance int
}

// SearchURL builds the search page URL of a site.
type SearchURL func(base *url.URL, keyword string) *url.URL

// QuerySearch searches with "/?<param>=keyword", the WordPress convention.
func QuerySearch(param string) SearchURL {
	return func(base *url.URL, keyword string) *url.URL {
		return base.ResolveReference(&url.URL{
			Path:     "/",
			RawQuery: url.Values{param: {keyword}}.Encode(),
		})
	}
}

// Resolver searches one site.
type Resolver struct {
	Fetcher network.Fetcher
	BaseURL *url.URL
	// Search defaults to QuerySearch("s").
	Search SearchURL
	// Selector matches the result anchors of the search page.
	Selector string
	// Suffix is stripped from the path of the chosen result, e.g. ".html".
	Suffix string
	// MaxDistance rejects the best candidate when it is further away. None accepts any candidate.
	MaxDistance mo.Option[int]
}

// Resolve returns the slug of the search result closest to keyword.
// None with a nil error means the site had no acceptable result.
func (r *Resolver) Resolve(ctx context.Context, keyword string) (mo.Option[string], error) {
	search := r.Search
	if search == nil {
		search = QuerySearch("s")
	}

	body, err := r.Fetcher.Text(ctx, search(r.BaseURL, keyword), network.WithBrowserHeaders())
	if err != nil {
		return mo.None[string](), err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return mo.None[string](), err
	}

	best, ok := Best(Candidates(doc, r.Selector), keyword, r.MaxDistance).Get()
	if !ok {
		return mo.None[string](), nil
	}

	return FromHref(r.BaseURL, best.Href, r.Suffix), nil
}

// Candidates extracts href and trimmed text of every element matching selector, in document order.
func Candidates(doc *goquery.Document, selector string) []Candidate {
	var candidates []Candidate
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		candidates = append(candidates, Candidate{
			Href:  strings.TrimSpace(href),
			Title: strings.TrimSpace(s.Text()),
		})
	})
	return candidates
}

// Best scores candidates against keyword and returns the closest one.
// Ties go to the candidate listed first.
func Best(candidates []Candidate, keyword string, maxDistance mo.Option[int]) mo.Option[Candidate] {
	if len(candidates) == 0 {
		return mo.None[Candidate]()
	}

	scored := lo.Map(candidates, func(c Candidate, _ int) Candidate {
		c.Distance = Distance(c.Title, keyword)
		return c
	})

	best := lo.MinBy(scored, func(a, b Candidate) bool {
		return a.Distance < b.Distance
	})

	if limit, ok := maxDistance.Get(); ok && best.Distance > limit {
		return mo.None[Candidate]()
	}

	return mo.Some(best)
}

// FromHref resolves href against base and returns its path without the
// leading slash and without suffix.
func FromHref(base *url.URL, href, suffix string) mo.Option[string] {
	u, err := base.Parse(href)
	if err != nil {
		return mo.None[string]()
	}

	path := strings.TrimPrefix(u.EscapedPath(), "/")
	if suffix != "" {
		path = strings.TrimSuffix(path, suffix)
	}

	if path == "" {
		return mo.None[string]()
	}

	return mo.Some(path)
}
