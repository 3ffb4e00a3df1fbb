package metadata

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/network"
)

// IMDbPage reads titles from public IMDb title pages. It only knows imdb ids
// and always answers in English.
type IMDbPage struct {
	fetcher network.Fetcher
	baseURL *url.URL
}

func NewIMDbPage(fetcher network.Fetcher) *IMDbPage {
	return &IMDbPage{
		fetcher: fetcher,
		baseURL: &url.URL{Scheme: "https", Host: "www.imdb.com"},
	}
}

// "The Matrix (1999) ⭐ 8.7 | Action" or "Game of Thrones (TV Series 2011–2019) - IMDb"
var ogTitle = regexp.MustCompile(`^(.+?)\s*\(([^)]*?)(\d{4})[^)]*\)`)

func (p *IMDbPage) Lookup(ctx context.Context, foreign id.ForeignID, _ string) (Title, error) {
	if foreign.Provider != id.IMDb {
		return Title{}, &NotFoundError{Provider: id.IMDb, ID: foreign.String()}
	}

	page := p.baseURL.JoinPath("title", foreign.Value, "/")
	body, err := p.fetcher.Text(ctx, page, network.WithBrowserHeaders())
	if err != nil {
		var netErr *network.Error
		if errors.As(err, &netErr) && netErr.NotFound() {
			return Title{}, &NotFoundError{Provider: id.IMDb, ID: foreign.Value}
		}
		return Title{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Title{}, err
	}

	raw := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if raw == "" {
		raw = strings.TrimSpace(doc.Find("title").First().Text())
	}

	title := parseOGTitle(raw)
	if title.Name == "" {
		return Title{}, &NotFoundError{Provider: id.IMDb, ID: foreign.Value}
	}

	return title, nil
}

func parseOGTitle(raw string) Title {
	raw = strings.TrimSuffix(raw, " - IMDb")
	if i := strings.Index(raw, " ⭐"); i >= 0 {
		raw = raw[:i]
	}

	if m := ogTitle.FindStringSubmatch(raw); m != nil {
		y, _ := strconv.Atoi(m[3])
		return Title{Name: strings.TrimSpace(m[1]), Year: y}
	}

	return Title{Name: strings.TrimSpace(raw)}
}
