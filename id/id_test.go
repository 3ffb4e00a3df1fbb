package id

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseEventID(t *testing.T) {
	Convey("Given a well-formed event id", t, func() {
		raw := "watchmmafull:ufc-323-event"

		Convey("It should split into source and slug", func() {
			e, err := ParseEventID(raw)
			So(err, ShouldBeNil)
			So(e.Source, ShouldEqual, "watchmmafull")
			So(e.Slug, ShouldEqual, "ufc-323-event")
		})

		Convey("It should render back to the same text", func() {
			e, _ := ParseEventID(raw)
			So(e.String(), ShouldEqual, raw)
		})

		Convey("Equal ids should compare equal", func() {
			a, _ := ParseEventID(raw)
			b := EventID{Source: "watchmmafull", Slug: "ufc-323-event"}
			So(a == b, ShouldBeTrue)
		})
	})

	Convey("Given malformed event ids", t, func() {
		for _, raw := range []string{"invalid", "only-one-part", "too:many:parts", ":slug", "source:", ":", ""} {
			Convey("Parsing "+`"`+raw+`"`+" should fail with a validation error", func() {
				_, err := ParseEventID(raw)
				So(err, ShouldNotBeNil)

				var validation *ValidationError
				So(errors.As(err, &validation), ShouldBeTrue)
				So(validation.Cause, ShouldEqual, "malformed event id")
				So(validation.Input, ShouldEqual, raw)
			})
		}
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should read an imdb id", func() {
			parsed, err := Parse(Movie, "tt0133093")
			So(err, ShouldBeNil)
			So(parsed, ShouldResemble, ForeignID{Provider: IMDb, Value: "tt0133093", Type: Movie})
		})

		Convey("Should read an imdb episode id", func() {
			parsed, err := Parse(Series, "tt0944947:1:2")
			So(err, ShouldBeNil)
			So(parsed, ShouldResemble, ForeignID{Provider: IMDb, Value: "tt0944947", Type: Series, Season: 1, Episode: 2})
			So(parsed.String(), ShouldEqual, "tt0944947:1:2")
		})

		Convey("Should read a tmdb id", func() {
			parsed, err := Parse(Movie, "tmdb:603")
			So(err, ShouldBeNil)
			So(parsed, ShouldResemble, ForeignID{Provider: TMDB, Value: "603", Type: Movie})
			So(parsed.String(), ShouldEqual, "tmdb:603")
		})

		Convey("Should fall back to event ids", func() {
			parsed, err := Parse(Series, "fullfightreplays:ufc-323")
			So(err, ShouldBeNil)
			So(parsed, ShouldResemble, EventID{Source: "fullfightreplays", Slug: "ufc-323"})
		})

		Convey("Should not mistake sources starting with tt for imdb ids", func() {
			parsed, err := Parse(Series, "ttsite:event")
			So(err, ShouldBeNil)
			So(parsed, ShouldHaveSameTypeAs, EventID{})
		})

		Convey("Should reject malformed episode suffixes", func() {
			_, err := Parse(Series, "tt0944947:1")
			So(err, ShouldNotBeNil)

			_, err = Parse(Series, "tt0944947:x:2")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMatch(t *testing.T) {
	Convey("Match should call the handler of the variant", t, func() {
		describe := func(identifier ID) string {
			return Match(identifier,
				func(f ForeignID) string { return "foreign " + f.Provider },
				func(e EventID) string { return "event " + e.Source },
			)
		}

		So(describe(ForeignID{Provider: IMDb, Value: "tt1"}), ShouldEqual, "foreign imdb")
		So(describe(EventID{Source: "watchmmafull", Slug: "x"}), ShouldEqual, "event watchmmafull")
	})
}

func TestParseContentType(t *testing.T) {
	Convey("ParseContentType", t, func() {
		ct, err := ParseContentType("series")
		So(err, ShouldBeNil)
		So(ct, ShouldEqual, Series)

		ct, err = ParseContentType("Movie")
		So(err, ShouldBeNil)
		So(ct, ShouldEqual, Movie)

		_, err = ParseContentType("channel")
		So(err, ShouldNotBeNil)
	})
}
