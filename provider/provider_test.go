package provider

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/fluxstream/fluxstream/filesystem"
	"github.com/fluxstream/fluxstream/internal/fetchtest"
	"github.com/fluxstream/fluxstream/source"
	"github.com/fluxstream/fluxstream/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const script = `BaseURL = "https://events.example"
function SearchEvents(k) return {} end
function EventStreams(s) return {} end`

func ids(sources []source.Source) []string {
	return lo.Map(sources, func(s source.Source, _ int) string {
		return s.Info().ID
	})
}

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		filesystem.SetMemMapFs()
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("When getting a builtin by name", t, func() {
		filesystem.SetMemMapFs()
		p, ok := Get("WatchMMAFull")
		So(ok, ShouldBeTrue)
		So(p.ID, ShouldEqual, "watchmmafull")
		So(p.IsCustom, ShouldBeFalse)
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given builtin and custom providers", t, func() {
		filesystem.SetMemMapFs()
		for _, name := range []string{"zeta", "alpha", "watchmmafull"} {
			path := filepath.Join(where.Sources(), name+".lua")
			lo.Must0(filesystem.API().WriteFile(path, []byte(script), 0o644))
		}
		lo.Must0(filesystem.API().WriteFile(filepath.Join(where.Sources(), "notes.txt"), []byte("x"), 0o644))

		deps := Deps{Fetcher: fetchtest.New()}

		Convey("The registry should list builtins first and scripts by file name", func() {
			So(ids(Registry(deps, nil)), ShouldResemble, []string{"fullfightreplays", "watchmmafull", "alpha", "zeta"})
		})

		Convey("Excluded ids should be left out", func() {
			So(ids(Registry(deps, []string{"watchmmafull", "alpha"})), ShouldResemble, []string{"fullfightreplays", "zeta"})
		})

		Convey("Unknown excluded ids should be ignored", func() {
			So(ids(Registry(deps, []string{"nope"})), ShouldHaveLength, 4)
		})

		Convey("Exclusion should be an exact match", func() {
			So(ids(Registry(deps, []string{"WatchMMAFull"})), ShouldContain, "watchmmafull")
		})

		Convey("Providers that fail to build should be skipped", func() {
			failing := &Provider{ID: "broken", CreateSource: func(Deps) (source.Source, error) {
				return nil, errors.New("boom")
			}}
			So(ids(build(append(Builtins(), failing), deps, nil)), ShouldResemble, []string{"fullfightreplays", "watchmmafull"})
		})
	})
}

func TestFind(t *testing.T) {
	Convey("Find should match fuzzily", t, func() {
		found := Find(Builtins(), "wmf")
		So(found, ShouldHaveLength, 1)
		So(found[0].ID, ShouldEqual, "watchmmafull")

		So(Find(Builtins(), ""), ShouldHaveLength, 2)
		So(Find(Builtins(), "xyz"), ShouldBeEmpty)
	})
}

func TestParseExcluded(t *testing.T) {
	Convey("ParseExcluded", t, func() {
		So(ParseExcluded("a, b,,a , c"), ShouldResemble, []string{"a", "b", "c"})
		So(ParseExcluded(""), ShouldBeEmpty)
	})
}
