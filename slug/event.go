package slug

import (
	"context"

	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Searcher finds the slug of the event closest to keyword.
type Searcher interface {
	Resolve(ctx context.Context, keyword string) (mo.Option[string], error)
}

var _ Searcher = (*Resolver)(nil)

// ForID finds the event slug of identifier on the site with id sourceID.
//
// An EventID of this site is used as is and an EventID of another site yields
// None without touching the network. A ForeignID is turned into a title with
// titles and then searched with r.
func ForID(ctx context.Context, sourceID string, identifier id.ID, titles source.Titles, locale string, r Searcher) (mo.Option[string], error) {
	type outcome = lo.Tuple2[mo.Option[string], error]

	res := id.Match(identifier,
		func(foreign id.ForeignID) outcome {
			title, err := titles.Resolve(ctx, foreign, locale)
			if err != nil {
				return lo.T2(mo.None[string](), err)
			}

			name, ok := title.Get()
			if !ok {
				return lo.T2(mo.None[string](), error(nil))
			}

			found, err := r.Resolve(ctx, name.Name)
			return lo.T2(found, err)
		},
		func(event id.EventID) outcome {
			if event.Source != sourceID {
				return lo.T2(mo.None[string](), error(nil))
			}
			return lo.T2(mo.Some(event.Slug), error(nil))
		},
	)

	return res.Unpack()
}
