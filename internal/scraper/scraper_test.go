package scraper

import (
	"context"
	"net/url"
	"testing"

	"github.com/fluxstream/fluxstream/filesystem"
	"github.com/fluxstream/fluxstream/internal/fetchtest"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestLoad(t *testing.T) {
	Convey("Given a script on disk", t, func() {
		So(filesystem.API().MkdirAll("/sources", 0o755), ShouldBeNil)
		So(filesystem.API().WriteFile("/sources/a.lua", []byte(`Answer = 42`), 0o644), ShouldBeNil)

		Convey("Load should run it", func() {
			L := lua.NewState()
			defer L.Close()

			So(Load(L, "/sources/a.lua"), ShouldBeNil)
			So(L.GetGlobal("Answer").String(), ShouldEqual, "42")
		})

		Convey("Compile should reuse the prototype of an unchanged file", func() {
			first := lo.Must(Compile("/sources/a.lua"))
			second := lo.Must(Compile("/sources/a.lua"))
			So(first, ShouldEqual, second)
		})

		Convey("A syntax error should be reported", func() {
			So(filesystem.API().WriteFile("/sources/broken.lua", []byte(`function (`), 0o644), ShouldBeNil)
			_, err := Compile("/sources/broken.lua")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestInstall(t *testing.T) {
	Convey("Given a remote script", t, func() {
		remote := lo.Must(url.Parse("https://scripts.example/site.lua"))
		fetcher := fetchtest.New().Page(remote.String(), `BaseURL = "https://site.example"`)
		So(filesystem.API().MkdirAll("/sources", 0o755), ShouldBeNil)

		Convey("The first install should write the file", func() {
			changed, err := Install(context.Background(), fetcher, remote, "/sources/site.lua")
			So(err, ShouldBeNil)
			So(changed, ShouldBeTrue)

			Convey("Installing the same content again should be a no-op", func() {
				changed, err := Install(context.Background(), fetcher, remote, "/sources/site.lua")
				So(err, ShouldBeNil)
				So(changed, ShouldBeFalse)
			})
		})

		Convey("An invalid script should be rejected", func() {
			bad := lo.Must(url.Parse("https://scripts.example/bad.lua"))
			fetcher.Page(bad.String(), `this is not lua (`)

			_, err := Install(context.Background(), fetcher, bad, "/sources/bad.lua")
			So(err, ShouldNotBeNil)

			exists, _ := filesystem.API().Exists("/sources/bad.lua")
			So(exists, ShouldBeFalse)
		})
	})
}
