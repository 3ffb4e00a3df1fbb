// Package id models the identifiers a resolution request can carry.
//
// An ID is either a ForeignID, pointing at an entry of an external metadata
// provider, or an EventID, pointing directly into one source's address space.
// The set of variants is closed: only this package can implement ID, and Match
// is the single place that dispatches on it.
package id

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ContentType is the kind of content being requested.
type ContentType string

const (
	Movie  ContentType = "movie"
	Series ContentType = "tv"
)

// ParseContentType accepts the wire names "movie", "tv" and the alias "series".
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Movie):
		return Movie, nil
	case string(Series), "series":
		return Series, nil
	default:
		return "", &ValidationError{Cause: "unknown content type", Input: s}
	}
}

// Well-known metadata providers.
const (
	IMDb = "imdb"
	TMDB = "tmdb"
)

// ID is a resolution target.
type ID interface {
	fmt.Stringer
	sealed()
}

// ForeignID references an entry of an external metadata provider.
type ForeignID struct {
	Provider string
	Value    string
	Type     ContentType
	// Season and Episode are zero when the request is not for a single episode.
	Season  int
	Episode int
}

func (ForeignID) sealed() {}

func (f ForeignID) String() string {
	var b strings.Builder
	if f.Provider != IMDb {
		b.WriteString(f.Provider)
		b.WriteByte(':')
	}
	b.WriteString(f.Value)
	if f.Season > 0 {
		fmt.Fprintf(&b, ":%d:%d", f.Season, f.Episode)
	}
	return b.String()
}

// EventID points at one event page of one source.
type EventID struct {
	Source string
	Slug   string
}

func (EventID) sealed() {}

// String renders the stable "source:slug" wire form.
func (e EventID) String() string {
	return e.Source + ":" + e.Slug
}

// ParseEventID is the inverse of EventID.String. The input must contain
// exactly one colon with non-empty text on both sides.
func ParseEventID(s string) (EventID, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return EventID{}, &ValidationError{Cause: "malformed event id", Input: s}
	}

	return EventID{Source: parts[0], Slug: parts[1]}, nil
}

// Match calls exactly one of the handlers depending on the variant of identifier.
// A nil identifier panics.
func Match[T any](identifier ID, foreign func(ForeignID) T, event func(EventID) T) T {
	switch v := identifier.(type) {
	case ForeignID:
		return foreign(v)
	case EventID:
		return event(v)
	default:
		panic(fmt.Sprintf("id: unexpected variant %T", identifier))
	}
}

// Parse turns the raw identifier of an incoming request into an ID.
//
//	tt1234567           imdb title
//	tt1234567:1:2       imdb title, season 1 episode 2
//	tmdb:603            tmdb title
//	tmdb:1399:1:2       tmdb title, season 1 episode 2
//	watchmmafull:slug   event id
func Parse(ct ContentType, raw string) (ID, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case imdbPattern.MatchString(raw):
		return parseForeign(IMDb, ct, raw, raw)
	case strings.HasPrefix(raw, TMDB+":"):
		return parseForeign(TMDB, ct, strings.TrimPrefix(raw, TMDB+":"), raw)
	default:
		return ParseEventID(raw)
	}
}

var imdbPattern = regexp.MustCompile(`^tt\d+(:|$)`)

func parseForeign(provider string, ct ContentType, rest, raw string) (ForeignID, error) {
	parts := strings.Split(rest, ":")
	foreign := ForeignID{Provider: provider, Value: parts[0], Type: ct}

	if foreign.Value == "" {
		return ForeignID{}, &ValidationError{Cause: "empty " + provider + " id", Input: raw}
	}

	switch len(parts) {
	case 1:
		return foreign, nil
	case 3:
		season, err1 := strconv.Atoi(parts[1])
		episode, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || season < 1 || episode < 1 {
			return ForeignID{}, &ValidationError{Cause: "malformed season or episode", Input: raw}
		}
		foreign.Season, foreign.Episode = season, episode
		return foreign, nil
	default:
		return ForeignID{}, &ValidationError{Cause: "malformed " + provider + " id", Input: raw}
	}
}
