package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fluxstream/fluxstream/aggregate"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type resolverFunc func(ctx context.Context, ct id.ContentType, identifier id.ID) aggregate.Outcome

func (f resolverFunc) Resolve(ctx context.Context, ct id.ContentType, identifier id.ID) aggregate.Outcome {
	return f(ctx, ct, identifier)
}

var info = source.Info{ID: "watchmmafull", Label: "WatchMMAFull"}

func results(titles ...string) []*source.Result {
	return lo.Map(titles, func(title string, i int) *source.Result {
		return source.NewResult(info, "https://cdn.example/"+title, title)
	})
}

func TestRun(t *testing.T) {
	Convey("Given a resolver with two streams", t, func() {
		var asked id.ID
		resolver := resolverFunc(func(_ context.Context, _ id.ContentType, identifier id.ID) aggregate.Outcome {
			asked = identifier
			return aggregate.Outcome{
				Results:  results("Server 1 (a)", "Server 2 (b)"),
				Complete: false,
				Pending:  []string{"fullfightreplays"},
				Elapsed:  1500 * time.Millisecond,
			}
		})

		var buf bytes.Buffer
		opts := &Options{Out: &buf, Resolver: resolver, Type: id.Series, RawID: "watchmmafull:ufc-323-event"}

		Convey("Plain output should list one url per line", func() {
			So(Run(context.Background(), opts), ShouldBeNil)
			So(buf.String(), ShouldEqual, "https://cdn.example/Server 1 (a)\nhttps://cdn.example/Server 2 (b)\n")
			So(asked, ShouldResemble, id.EventID{Source: "watchmmafull", Slug: "ufc-323-event"})
		})

		Convey("JSON output should carry the outcome", func() {
			opts.Json = true
			So(Run(context.Background(), opts), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Type, ShouldEqual, id.Series)
			So(output.ID, ShouldEqual, "watchmmafull:ufc-323-event")
			So(output.Complete, ShouldBeFalse)
			So(output.Pending, ShouldResemble, []string{"fullfightreplays"})
			So(output.ElapsedMs, ShouldEqual, 1500)
			So(output.Streams, ShouldHaveLength, 2)
			So(output.Streams[1].Meta.Title, ShouldEqual, "Server 2 (b)")
		})

		Convey("A filter should narrow the streams", func() {
			filter, err := ParseStreamsFilter("last")
			So(err, ShouldBeNil)
			opts.StreamsFilter = mo.Some(filter)

			So(Run(context.Background(), opts), ShouldBeNil)
			So(buf.String(), ShouldEqual, "https://cdn.example/Server 2 (b)\n")
		})

		Convey("Open should receive the first selected stream", func() {
			var opened []string
			opts.Open = mo.Some[Opener](func(url string) error {
				opened = append(opened, url)
				return nil
			})

			So(Run(context.Background(), opts), ShouldBeNil)
			So(opened, ShouldResemble, []string{"https://cdn.example/Server 1 (a)"})
		})

		Convey("A malformed identifier should fail before resolving", func() {
			opts.RawID = "no-colon"
			err := Run(context.Background(), opts)

			var validation *id.ValidationError
			So(errors.As(err, &validation), ShouldBeTrue)
			So(asked, ShouldBeNil)
		})
	})

	Convey("An empty outcome should still produce valid JSON", t, func() {
		resolver := resolverFunc(func(context.Context, id.ContentType, id.ID) aggregate.Outcome {
			return aggregate.Outcome{Complete: true}
		})

		var buf bytes.Buffer
		opts := &Options{Out: &buf, Resolver: resolver, Type: id.Movie, RawID: "tt0133093", Json: true}
		So(Run(context.Background(), opts), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, `"streams":[]`)
		So(buf.String(), ShouldContainSubstring, `"pending":[]`)
	})
}

func TestParseStreamsFilter(t *testing.T) {
	Convey("ParseStreamsFilter", t, func() {
		all := results("a", "b", "c", "d")
		titles := func(rs []*source.Result) []string {
			return lo.Map(rs, func(r *source.Result, _ int) string { return r.Meta.Title })
		}

		apply := func(description string) []string {
			filter, err := ParseStreamsFilter(description)
			So(err, ShouldBeNil)
			return titles(filter(all))
		}

		So(apply("first"), ShouldResemble, []string{"a"})
		So(apply("last"), ShouldResemble, []string{"d"})
		So(apply("all"), ShouldHaveLength, 4)
		So(apply("1-2"), ShouldResemble, []string{"b", "c"})
		So(apply("2-9"), ShouldResemble, []string{"c", "d"})
		So(apply("3"), ShouldResemble, []string{"d"})
		So(apply("7"), ShouldBeEmpty)
		So(apply("@B@"), ShouldResemble, []string{"b"})

		_, err := ParseStreamsFilter("nonsense")
		So(err, ShouldNotBeNil)

		filter, _ := ParseStreamsFilter("last")
		So(filter(nil), ShouldBeEmpty)
	})
}
