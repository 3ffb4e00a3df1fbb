package version

import (
	"context"
	"testing"

	"github.com/fluxstream/fluxstream/filesystem"
	"github.com/fluxstream/fluxstream/internal/fetchtest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		cmp, err := Compare("1.2.3", "v1.2.3")
		So(err, ShouldBeNil)
		So(cmp, ShouldEqual, 0)

		cmp, _ = Compare("0.2.0", "0.1.9")
		So(cmp, ShouldEqual, 1)

		cmp, _ = Compare("0.1.0", "1.0.0")
		So(cmp, ShouldEqual, -1)

		_, err = Compare("latest", "1.0.0")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	Convey("Given the releases API", t, func() {
		filesystem.SetMemMapFs()
		fetcher := fetchtest.New().Page(releasesAPI, `{"tag_name": "v0.4.2"}`)

		Convey("Latest should strip the v prefix", func() {
			latest, err := Latest(context.Background(), fetcher)
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "0.4.2")

			Convey("And answer the second call from the cache", func() {
				latest, err := Latest(context.Background(), fetcher)
				So(err, ShouldBeNil)
				So(latest, ShouldEqual, "0.4.2")
				So(fetcher.Calls(), ShouldHaveLength, 1)
			})
		})
	})

	Convey("An empty tag should be an error", t, func() {
		filesystem.SetMemMapFs()
		fetcher := fetchtest.New().Page(releasesAPI, `{}`)

		_, err := Latest(context.Background(), fetcher)
		So(err, ShouldNotBeNil)
	})
}
