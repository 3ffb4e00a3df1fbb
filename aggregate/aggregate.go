// Package aggregate fans a request out to every eligible source and merges
// whatever arrives before the deadline.
package aggregate

import (
	"context"
	"time"

	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/log"
	"github.com/fluxstream/fluxstream/source"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Outcome is the merged answer of one request.
type Outcome struct {
	// Results in registry order.
	Results []*source.Result
	// Complete is false when at least one eligible source missed the deadline.
	Complete bool
	// Pending lists the ids of the sources that did not answer in time.
	Pending []string
	Elapsed time.Duration
}

type Aggregator struct {
	sources       []source.Source
	deadline      time.Duration
	sourceTimeout time.Duration
	concurrency   int
}

type Option func(*Aggregator)

// WithDeadline bounds a whole request. Zero leaves it to the caller's context.
func WithDeadline(d time.Duration) Option {
	return func(a *Aggregator) {
		a.deadline = d
	}
}

// WithSourceTimeout bounds each source separately.
func WithSourceTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		a.sourceTimeout = d
	}
}

// WithConcurrency caps the number of sources scraped at once. Zero means no cap.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		a.concurrency = n
	}
}

func New(sources []source.Source, opts ...Option) *Aggregator {
	a := &Aggregator{sources: sources}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Sources returns the registry in order.
func (a *Aggregator) Sources() []source.Source {
	return a.sources
}

type slot struct {
	index   int
	results []*source.Result
}

// Resolve asks every source supporting ct for identifier. It returns once all
// of them answered or the deadline passed, whichever comes first. Sources
// still running at that point are cancelled and their results dropped.
func (a *Aggregator) Resolve(ctx context.Context, ct id.ContentType, identifier id.ID) Outcome {
	start := time.Now()

	var cancel context.CancelFunc
	if a.deadline > 0 {
		ctx, cancel = context.WithTimeout(ctx, a.deadline)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	eligible := lo.Filter(a.sources, func(s source.Source, _ int) bool {
		return s.Info().Supports(ct)
	})

	arrived := make(chan slot, len(eligible))
	go func() {
		var g errgroup.Group
		if a.concurrency > 0 {
			g.SetLimit(a.concurrency)
		}

		for i, src := range eligible {
			g.Go(func() error {
				arrived <- slot{index: i, results: a.scrape(ctx, src, ct, identifier)}
				return nil
			})
		}

		_ = g.Wait()
	}()

	slots := make([][]*source.Result, len(eligible))
	answered := make([]bool, len(eligible))

collect:
	for remaining := len(eligible); remaining > 0; remaining-- {
		select {
		case s := <-arrived:
			slots[s.index] = s.results
			answered[s.index] = true
		case <-ctx.Done():
			break collect
		}
	}

	outcome := Outcome{
		Results:  lo.Flatten(slots),
		Complete: true,
		Pending:  []string{},
		Elapsed:  time.Since(start),
	}

	for i, src := range eligible {
		if !answered[i] {
			outcome.Complete = false
			outcome.Pending = append(outcome.Pending, src.Info().ID)
		}
	}

	if !outcome.Complete {
		log.With("id", identifier.String()).Warnf("deadline passed, still waiting for %v", outcome.Pending)
	}

	return outcome
}

func (a *Aggregator) scrape(ctx context.Context, src source.Source, ct id.ContentType, identifier id.ID) []*source.Result {
	if a.sourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.sourceTimeout)
		defer cancel()
	}

	start := time.Now()
	results := source.Handle(ctx, src, ct, identifier)
	log.With("source", src.Info().ID).Debugf("answered in %s", time.Since(start))

	return results
}
