package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/network"
)

// DefaultTMDBBaseURL is the public TMDB v3 API.
const DefaultTMDBBaseURL = "https://api.themoviedb.org/3"

// TMDB resolves identifiers through The Movie Database API.
type TMDB struct {
	fetcher network.Fetcher
	apiKey  string
	baseURL *url.URL

	ids    *cacher[string, ProviderID]
	titles *cacher[string, Title]
}

var _ Resolver = (*TMDB)(nil)

// TMDBOption configures a TMDB resolver.
type TMDBOption func(*TMDB)

// WithBaseURL points the resolver at another API root.
func WithBaseURL(raw string) TMDBOption {
	return func(t *TMDB) {
		if u, err := url.Parse(strings.TrimRight(strings.TrimSpace(raw), "/")); err == nil && u.Host != "" {
			t.baseURL = u
		}
	}
}

// WithCache keeps lookups in dir for lifetime.
func WithCache(dir string, lifetime time.Duration) TMDBOption {
	return func(t *TMDB) {
		t.ids = newCacher[string, ProviderID](dir, "tmdb_ids.json", lifetime)
		t.titles = newCacher[string, Title](dir, "tmdb_titles.json", lifetime)
	}
}

// NewTMDB returns a resolver using apiKey. The key is required.
func NewTMDB(fetcher network.Fetcher, apiKey string, opts ...TMDBOption) (*TMDB, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}

	t := &TMDB{fetcher: fetcher, apiKey: apiKey}
	WithBaseURL(DefaultTMDBBaseURL)(t)
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

type findResponse struct {
	MovieResults []struct {
		ID int64 `json:"id"`
	} `json:"movie_results"`
	TVResults []struct {
		ID int64 `json:"id"`
	} `json:"tv_results"`
	TVEpisodeResults []struct {
		ShowID int64 `json:"show_id"`
	} `json:"tv_episode_results"`
}

// ProviderID returns the TMDB id of foreign. tmdb ids are returned as is,
// imdb ids go through the /find endpoint.
func (t *TMDB) ProviderID(ctx context.Context, foreign id.ForeignID) (ProviderID, error) {
	switch foreign.Provider {
	case id.TMDB:
		return ProviderID{Value: foreign.Value, Type: foreign.Type}, nil
	case id.IMDb:
	default:
		return ProviderID{}, &NotFoundError{Provider: id.TMDB, ID: foreign.String()}
	}

	cacheKey := string(foreign.Type) + "/" + foreign.Value
	if cached, ok := t.ids.Get(cacheKey).Get(); ok {
		return cached, nil
	}

	var found findResponse
	if err := t.getJSON(ctx, "/find/"+url.PathEscape(foreign.Value), url.Values{"external_source": {"imdb_id"}}, &found); err != nil {
		return ProviderID{}, t.classify(err, foreign.Value)
	}

	var tmdbID int64
	switch {
	case foreign.Type == id.Movie && len(found.MovieResults) > 0:
		tmdbID = found.MovieResults[0].ID
	case foreign.Type == id.Series && len(found.TVResults) > 0:
		tmdbID = found.TVResults[0].ID
	case foreign.Type == id.Series && len(found.TVEpisodeResults) > 0:
		tmdbID = found.TVEpisodeResults[0].ShowID
	default:
		return ProviderID{}, &NotFoundError{Provider: id.TMDB, ID: foreign.Value}
	}

	pid := ProviderID{Value: strconv.FormatInt(tmdbID, 10), Type: foreign.Type}
	_ = t.ids.Set(cacheKey, pid)
	return pid, nil
}

type detailsResponse struct {
	Title        string `json:"title"`
	Name         string `json:"name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
}

// TitleAndYear returns the localized title of pid.
func (t *TMDB) TitleAndYear(ctx context.Context, pid ProviderID, locale string) (Title, error) {
	kind := "movie"
	if pid.Type == id.Series {
		kind = "tv"
	}

	cacheKey := kind + "/" + pid.Value + "/" + locale
	if cached, ok := t.titles.Get(cacheKey).Get(); ok {
		return cached, nil
	}

	query := url.Values{}
	if locale != "" {
		query.Set("language", locale)
	}

	var details detailsResponse
	if err := t.getJSON(ctx, "/"+kind+"/"+url.PathEscape(pid.Value), query, &details); err != nil {
		return Title{}, t.classify(err, pid.Value)
	}

	title := Title{Name: details.Title, Year: year(details.ReleaseDate)}
	if kind == "tv" {
		title = Title{Name: details.Name, Year: year(details.FirstAirDate)}
	}

	if title.Name == "" {
		return Title{}, &NotFoundError{Provider: id.TMDB, ID: pid.Value}
	}

	_ = t.titles.Set(cacheKey, title)
	return title, nil
}

// Lookup chains ProviderID and TitleAndYear.
func (t *TMDB) Lookup(ctx context.Context, foreign id.ForeignID, locale string) (Title, error) {
	return ViaResolver(t).Lookup(ctx, foreign, locale)
}

func (t *TMDB) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	u := t.baseURL.JoinPath(path)
	query.Set("api_key", t.apiKey)
	u.RawQuery = query.Encode()

	body, err := t.fetcher.Text(ctx, u, network.WithHeader("Accept", "application/json"), network.WithoutCache())
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(body), target); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}

	return nil
}

func (t *TMDB) classify(err error, value string) error {
	var netErr *network.Error
	if errors.As(err, &netErr) && netErr.NotFound() {
		return &NotFoundError{Provider: id.TMDB, ID: value}
	}
	return err
}

func year(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}
