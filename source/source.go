// Package source defines the contract every upstream site implements and the
// boundary that keeps one failing site from affecting the others.
package source

import (
	"context"

	"github.com/fluxstream/fluxstream/id"
)

// Source resolves an identifier into playable streams on one upstream site.
//
// Implementations hold configuration and shared collaborators only; a single
// instance serves concurrent Scrape calls.
type Source interface {
	// Info describes the site. It must be constant for the lifetime of the source.
	Info() Info

	// Scrape returns the streams the site offers for identifier.
	// Callers use Handle instead of calling Scrape directly.
	Scrape(ctx context.Context, ct id.ContentType, identifier id.ID) ([]*Result, error)
}
