package slug

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fluxstream/fluxstream/internal/fetchtest"
	"github.com/fluxstream/fluxstream/network"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

var base = lo.Must(url.Parse("https://watchmmafull.com"))

func TestDistance(t *testing.T) {
	Convey("Distance", t, func() {
		Convey("Should ignore case", func() {
			So(Distance("UFC 323", "ufc 323"), ShouldEqual, 0)
		})

		Convey("Should ignore diacritics", func() {
			So(Distance("José Aldo", "jose aldo"), ShouldEqual, 0)
			So(Distance("Pokémon", "POKEMON"), ShouldEqual, 0)
		})

		Convey("Should treat composed and decomposed forms alike", func() {
			So(Distance("\u00e9t\u00e9", "e\u0301te\u0301"), ShouldEqual, 0)
		})

		Convey("Should count edits", func() {
			So(Distance("ufc 323", "ufc 324"), ShouldEqual, 1)
			So(Distance("", "abc"), ShouldEqual, 3)
		})
	})
}

func TestBest(t *testing.T) {
	Convey("Best", t, func() {
		Convey("Should pick the minimum distance", func() {
			best := Best([]Candidate{
				{Href: "/a.html", Title: "UFC 300"},
				{Href: "/b.html", Title: "UFC 323: Dvalishvili vs Yan 2"},
				{Href: "/c.html", Title: "UFC 323"},
			}, "UFC 323", mo.None[int]())

			So(best.MustGet().Href, ShouldEqual, "/c.html")
			So(best.MustGet().Distance, ShouldEqual, 0)
		})

		Convey("Should prefer the first listed candidate on ties", func() {
			best := Best([]Candidate{
				{Href: "/first.html", Title: "UFC 321"},
				{Href: "/second.html", Title: "UFC 322"},
			}, "UFC 320", mo.None[int]())

			So(best.MustGet().Href, ShouldEqual, "/first.html")
		})

		Convey("Should accept any distance without a threshold", func() {
			best := Best([]Candidate{{Href: "/x.html", Title: "Completely unrelated"}}, "UFC 323", mo.None[int]())
			So(best.IsPresent(), ShouldBeTrue)
		})

		Convey("Should reject candidates past the threshold", func() {
			best := Best([]Candidate{{Href: "/x.html", Title: "Completely unrelated"}}, "UFC 323", mo.Some(3))
			So(best.IsAbsent(), ShouldBeTrue)
		})

		Convey("Should be absent for no candidates", func() {
			So(Best(nil, "UFC 323", mo.None[int]()).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestFromHref(t *testing.T) {
	Convey("FromHref", t, func() {
		So(FromHref(base, "https://watchmmafull.com/ufc-323-event.html", ".html").MustGet(), ShouldEqual, "ufc-323-event")
		So(FromHref(base, "/ufc-323-event.html", ".html").MustGet(), ShouldEqual, "ufc-323-event")
		So(FromHref(base, "/events/ufc-323/", "").MustGet(), ShouldEqual, "events/ufc-323/")
		So(FromHref(base, "/", ".html").IsAbsent(), ShouldBeTrue)
	})
}

func TestCandidates(t *testing.T) {
	Convey("Candidates should follow document order and skip anchors without href", t, func() {
		doc := lo.Must(goquery.NewDocumentFromReader(strings.NewReader(`
			<article><h2><a href="/one.html"> UFC 322 </a></h2></article>
			<div class="entry-title"><a>no link</a></div>
			<div class="entry-title"><a href="/two.html">UFC 323</a></div>`)))

		candidates := Candidates(doc, "article h2 a[href], .entry-title a[href]")
		So(candidates, ShouldResemble, []Candidate{
			{Href: "/one.html", Title: "UFC 322"},
			{Href: "/two.html", Title: "UFC 323"},
		})
	})
}

func TestResolve(t *testing.T) {
	Convey("Given a site search page", t, func() {
		fetcher := fetchtest.New().Page("https://watchmmafull.com/?s=UFC+323", `
			<article><h2><a href="https://watchmmafull.com/ufc-322-event.html">UFC 322</a></h2></article>
			<article><h2><a href="https://watchmmafull.com/ufc-323-event.html">UFC 323</a></h2></article>`).
			Page("https://watchmmafull.com/?s=Nothing", `<p>No results</p>`)

		resolver := &Resolver{
			Fetcher:  fetcher,
			BaseURL:  base,
			Selector: "article h2 a[href], .entry-title a[href], .post-title a[href]",
			Suffix:   ".html",
		}

		Convey("Resolve should return the slug of the closest result", func() {
			slug, err := resolver.Resolve(context.Background(), "UFC 323")
			So(err, ShouldBeNil)
			So(slug.MustGet(), ShouldEqual, "ufc-323-event")
		})

		Convey("Resolve should be absent without results", func() {
			slug, err := resolver.Resolve(context.Background(), "Nothing")
			So(err, ShouldBeNil)
			So(slug.IsAbsent(), ShouldBeTrue)
		})

		Convey("Resolve should surface fetch failures", func() {
			_, err := resolver.Resolve(context.Background(), "Unknown")

			var netErr *network.Error
			So(errors.As(err, &netErr), ShouldBeTrue)
		})
	})
}
