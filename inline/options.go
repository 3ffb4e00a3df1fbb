package inline

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fluxstream/fluxstream/aggregate"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Resolver is what Run asks for streams. *aggregate.Aggregator satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, ct id.ContentType, identifier id.ID) aggregate.Outcome
}

type StreamsFilter func([]*source.Result) []*source.Result

// Opener hands a stream URL to a player or browser.
type Opener func(url string) error

type Options struct {
	Out           io.Writer
	Resolver      Resolver
	Type          id.ContentType
	RawID         string
	Json          bool
	StreamsFilter mo.Option[StreamsFilter]
	// Open, when present, is called with the first stream after printing.
	Open mo.Option[Opener]
}

// ParseStreamsFilter parses a stream selector.
// Format: "first", "last", "all", "3", "1-4", "@substring@"
func ParseStreamsFilter(description string) (StreamsFilter, error) {
	switch description {
	case "first":
		return func(results []*source.Result) []*source.Result {
			return lo.Slice(results, 0, 1)
		}, nil
	case "last":
		return func(results []*source.Result) []*source.Result {
			return lo.Slice(results, len(results)-1, len(results))
		}, nil
	case "all":
		return func(results []*source.Result) []*source.Result {
			return results
		}, nil
	}

	// Range: "1-5", inclusive
	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.ParseUint(from, 10, 16)
		end, err2 := strconv.ParseUint(to, 10, 16)
		if err1 == nil && err2 == nil {
			return func(results []*source.Result) []*source.Result {
				return lo.Slice(results, int(start), int(end)+1)
			}, nil
		}
	}

	// Substring of the title or source: "@text@"
	if len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(results []*source.Result) []*source.Result {
			return lo.Filter(results, func(r *source.Result, _ int) bool {
				return strings.Contains(strings.ToLower(r.Meta.Title), sub) ||
					strings.Contains(strings.ToLower(r.Meta.SourceLabel), sub)
			})
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(results []*source.Result) []*source.Result {
			return lo.Slice(results, int(idx), int(idx)+1)
		}, nil
	}

	return nil, fmt.Errorf("invalid streams filter: %s", description)
}
