// Package metadata turns foreign identifiers into human readable titles.
package metadata

import (
	"context"
	"fmt"

	"github.com/fluxstream/fluxstream/id"
)

// ProviderID is the identifier of a title in the resolver's own catalogue.
type ProviderID struct {
	Value string
	Type  id.ContentType
}

// Title is a localized title and its release year. Year is 0 when unknown.
type Title struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// Resolver maps foreign identifiers to titles in two steps, so the provider
// id can be cached independently of the localized title.
type Resolver interface {
	ProviderID(ctx context.Context, foreign id.ForeignID) (ProviderID, error)
	TitleAndYear(ctx context.Context, pid ProviderID, locale string) (Title, error)
}

// Lookup is one way of finding the title of a foreign identifier.
type Lookup interface {
	Lookup(ctx context.Context, foreign id.ForeignID, locale string) (Title, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, foreign id.ForeignID, locale string) (Title, error)

func (f LookupFunc) Lookup(ctx context.Context, foreign id.ForeignID, locale string) (Title, error) {
	return f(ctx, foreign, locale)
}

// ViaResolver chains both Resolver steps into a Lookup.
func ViaResolver(r Resolver) Lookup {
	return LookupFunc(func(ctx context.Context, foreign id.ForeignID, locale string) (Title, error) {
		pid, err := r.ProviderID(ctx, foreign)
		if err != nil {
			return Title{}, err
		}
		return r.TitleAndYear(ctx, pid, locale)
	})
}

// NotFoundError reports that a provider has no entry for an identifier.
type NotFoundError struct {
	Provider string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no entry for %s", e.Provider, e.ID)
}
