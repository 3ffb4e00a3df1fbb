package aggregate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/internal/fetchtest"
	"github.com/fluxstream/fluxstream/provider/watchmmafull"
	"github.com/fluxstream/fluxstream/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

type stubSource struct {
	info    source.Info
	results []string
	err     error
	block   chan struct{}
	calls   atomic.Int32
}

func stub(sourceID string, types []id.ContentType, results ...string) *stubSource {
	return &stubSource{
		info:    source.Info{ID: sourceID, Label: sourceID, ContentTypes: types},
		results: results,
	}
}

func (s *stubSource) Info() source.Info { return s.info }

func (s *stubSource) Scrape(context.Context, id.ContentType, id.ID) ([]*source.Result, error) {
	s.calls.Add(1)
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, s.err
	}
	return lo.Map(s.results, func(title string, _ int) *source.Result {
		return source.NewResult(s.info, "https://"+s.info.ID+".example/"+title, title)
	}), nil
}

func titles(results []*source.Result) []string {
	return lo.Map(results, func(r *source.Result, _ int) string {
		return r.Meta.Title
	})
}

var both = []id.ContentType{id.Movie, id.Series}

func TestResolve(t *testing.T) {
	event := id.EventID{Source: "a", Slug: "ufc-300"}

	Convey("Given three sources where the middle one fails", t, func() {
		a := stub("a", both, "A1", "A2")
		b := stub("b", both)
		b.err = errors.New("boom")
		c := stub("c", both, "C1")

		outcome := New([]source.Source{a, b, c}).Resolve(context.Background(), id.Movie, event)

		Convey("Results should be merged in registry order", func() {
			So(titles(outcome.Results), ShouldResemble, []string{"A1", "A2", "C1"})
			So(outcome.Complete, ShouldBeTrue)
			So(outcome.Pending, ShouldBeEmpty)
		})
	})

	Convey("Given a source that only serves series", t, func() {
		tv := stub("tv", []id.ContentType{id.Series}, "T1")
		movie := stub("movie", both, "M1")

		outcome := New([]source.Source{tv, movie}).Resolve(context.Background(), id.Movie, event)

		Convey("It should not be called for a movie", func() {
			So(tv.calls.Load(), ShouldEqual, 0)
			So(titles(outcome.Results), ShouldResemble, []string{"M1"})
		})
	})

	Convey("Given a source that never answers", t, func() {
		hang := stub("hang", both, "H1")
		hang.block = make(chan struct{})
		defer close(hang.block)

		fast := stub("fast", both, "F1")

		outcome := New([]source.Source{hang, fast}, WithDeadline(50*time.Millisecond)).
			Resolve(context.Background(), id.Movie, event)

		Convey("The deadline should drop it and keep its siblings", func() {
			So(titles(outcome.Results), ShouldResemble, []string{"F1"})
			So(outcome.Complete, ShouldBeFalse)
			So(outcome.Pending, ShouldResemble, []string{"hang"})
			So(outcome.Elapsed, ShouldBeLessThan, 5*time.Second)
		})
	})

	Convey("Given no eligible sources", t, func() {
		outcome := New([]source.Source{stub("tv", []id.ContentType{id.Series})}).
			Resolve(context.Background(), id.Movie, event)

		Convey("The outcome should be empty and complete", func() {
			So(outcome.Results, ShouldNotBeNil)
			So(outcome.Results, ShouldBeEmpty)
			So(outcome.Complete, ShouldBeTrue)
		})
	})

	Convey("Given a concurrency cap of one", t, func() {
		sources := []source.Source{stub("a", both, "A1"), stub("b", both, "B1"), stub("c", both, "C1")}
		outcome := New(sources, WithConcurrency(1)).Resolve(context.Background(), id.Movie, event)

		Convey("Every source should still answer", func() {
			So(titles(outcome.Results), ShouldResemble, []string{"A1", "B1", "C1"})
		})
	})
}

func TestResolveWatchMMAFull(t *testing.T) {
	Convey("Given a registry with only watchmmafull", t, func() {
		fetcher := fetchtest.New().Page("https://watchmmafull.com/ufc-323-event.html", `<html><body>
			<div class="video-server" data-url="https://streamtape.example/e/abc" data-id="streamtape"></div>
			<div class="video-server" data-url="https://dood.example/e/xyz" data-id="dood"></div>
		</body></html>`)

		agg := New([]source.Source{watchmmafull.New(fetcher, nil)})

		identifier, err := id.Parse(id.Series, "watchmmafull:ufc-323-event")
		So(err, ShouldBeNil)

		outcome := agg.Resolve(context.Background(), id.Series, identifier)

		Convey("Both servers should be listed", func() {
			So(outcome.Results, ShouldHaveLength, 2)
			So(titles(outcome.Results), ShouldResemble, []string{"Server 1 (streamtape)", "Server 2 (dood)"})
			for _, r := range outcome.Results {
				So(r.Meta.SourceID, ShouldEqual, "watchmmafull")
			}
		})
	})
}
