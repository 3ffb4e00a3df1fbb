package custom

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fluxstream/fluxstream/filesystem"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/internal/fetchtest"
	"github.com/fluxstream/fluxstream/metadata"
	"github.com/fluxstream/fluxstream/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const script = `
BaseURL = "https://events.example"
Label = "Example Events"
ContentTypes = "movie"
Countries = { "en", "de" }
SlugSuffix = ".html"

function SearchEvents(keyword)
	local body = http_tls.get(BaseURL .. "/events")
	local events = {}
	for line in body:gmatch("[^\n]+") do
		local title, href = line:match("^(.-)|(.+)$")
		table.insert(events, { title = title, href = href })
	end
	return events
end

function EventStreams(slug)
	return {
		{ url = "/play/" .. slug .. "/1", title = "HD" },
		{ url = "https://cdn.example/live.m3u8" },
		{ url = "javascript:void(0)" },
		"ignored",
	}
end
`

func writeScript(name, body string) string {
	path := filepath.Join("/sources", name+Extension)
	lo.Must0(filesystem.API().WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a custom source script", t, func() {
		filesystem.SetMemMapFs()

		fetcher := fetchtest.New().
			Page("https://events.example/events", "Bellator 300|/bellator-300.html\nUFC 300|/ufc-300.html\n")

		titles := source.Titles{
			metadata.LookupFunc(func(context.Context, id.ForeignID, string) (metadata.Title, error) {
				return metadata.Title{Name: "UFC 300", Year: 2024}, nil
			}),
		}

		path := writeScript("My Events", script)
		src, err := Load(path, Options{Fetcher: fetcher, Titles: titles})
		So(err, ShouldBeNil)
		defer src.Close()

		Convey("Info should come from the script globals", func() {
			info := src.Info()
			So(info.ID, ShouldEqual, IDFromName("My Events"))
			So(info.Label, ShouldEqual, "Example Events")
			So(info.BaseURL, ShouldEqual, "https://events.example")
			So(info.ContentTypes, ShouldResemble, []id.ContentType{id.Movie})
			So(info.Countries, ShouldResemble, []source.CountryCode{"en", "de"})
		})

		Convey("Scraping an event id of this source should skip the search", func() {
			results, err := src.Scrape(context.Background(), id.Movie, id.EventID{Source: src.Info().ID, Slug: "ufc-300"})
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)
			So(results[0].URL, ShouldEqual, "https://events.example/play/ufc-300/1")
			So(results[0].Meta.Title, ShouldEqual, "HD")
			So(results[0].Meta.SourceID, ShouldEqual, src.Info().ID)
			So(results[1].URL, ShouldEqual, "https://cdn.example/live.m3u8")
			So(results[1].Meta.Title, ShouldEqual, "Stream 2")
			So(fetcher.Calls(), ShouldBeEmpty)
		})

		Convey("Scraping a foreign id should search by title", func() {
			results, err := src.Scrape(context.Background(), id.Movie, id.ForeignID{Provider: id.IMDb, Value: "tt1", Type: id.Movie})
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)
			So(results[0].URL, ShouldEqual, "https://events.example/play/ufc-300/1")
			So(fetcher.Calls(), ShouldResemble, []string{"https://events.example/events"})
		})

		Convey("An event id of another source should yield nothing", func() {
			results, err := src.Scrape(context.Background(), id.Movie, id.EventID{Source: "other", Slug: "ufc-300"})
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})

		Convey("A cancelled context should abort the script", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := src.Scrape(ctx, id.Movie, id.ForeignID{Provider: id.IMDb, Value: "tt1", Type: id.Movie})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given invalid scripts", t, func() {
		filesystem.SetMemMapFs()
		opts := Options{Fetcher: fetchtest.New()}

		Convey("A missing entry point should be rejected", func() {
			path := writeScript("no-streams", `BaseURL = "https://x.example"
function SearchEvents(k) return {} end`)
			_, err := Load(path, opts)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "EventStreams")
		})

		Convey("A relative base url should be rejected", func() {
			path := writeScript("relative", `BaseURL = "/events"
function SearchEvents(k) return {} end
function EventStreams(s) return {} end`)
			_, err := Load(path, opts)
			So(err, ShouldNotBeNil)
		})

		Convey("An unknown content type should be rejected", func() {
			path := writeScript("bad-type", `BaseURL = "https://x.example"
ContentTypes = { "anime" }
function SearchEvents(k) return {} end
function EventStreams(s) return {} end`)
			_, err := Load(path, opts)
			So(err, ShouldNotBeNil)
		})

		Convey("A syntax error should be reported", func() {
			path := writeScript("broken", `function (`)
			_, err := Load(path, opts)
			So(err, ShouldNotBeNil)
		})
	})
}
