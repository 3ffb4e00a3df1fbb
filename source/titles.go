package source

import (
	"context"
	"errors"

	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/metadata"
	"github.com/samber/mo"
)

// Titles is an ordered list of title lookups. Earlier entries are preferred.
type Titles []metadata.Lookup

// Resolve asks each lookup in turn. A NotFoundError moves on to the next
// lookup; any other error stops the chain and is returned. None means no
// lookup knew the identifier.
func (t Titles) Resolve(ctx context.Context, foreign id.ForeignID, locale string) (mo.Option[metadata.Title], error) {
	for _, lookup := range t {
		title, err := lookup.Lookup(ctx, foreign, locale)

		var notFound *metadata.NotFoundError
		switch {
		case errors.As(err, &notFound):
			continue
		case err != nil:
			return mo.None[metadata.Title](), err
		case title.Name != "":
			return mo.Some(title), nil
		}
	}

	return mo.None[metadata.Title](), nil
}
