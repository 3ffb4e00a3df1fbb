package source

import (
	"context"
	"runtime/debug"

	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/log"
)

// Handle runs s.Scrape and contains every failure it can produce.
// Errors and panics are logged and turned into an empty result.
func Handle(ctx context.Context, s Source, ct id.ContentType, identifier id.ID) (results []*Result) {
	logger := log.With("source", s.Info().ID).With("id", identifier.String())

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic: %v\n%s", r, debug.Stack())
			results = []*Result{}
		}
	}()

	results, err := s.Scrape(ctx, ct, identifier)
	if err != nil {
		logger.Warnf("scrape: %v", err)
		return []*Result{}
	}

	if results == nil {
		return []*Result{}
	}

	logger.Debugf("%d results", len(results))
	return results
}
