package cache

import (
	"testing"
	"time"

	"github.com/fluxstream/fluxstream/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestStore(t *testing.T) {
	Convey("Given a store with a ten minute TTL", t, func() {
		now := time.Now()
		store := New("/cache/pages", 10*time.Minute)
		store.now = func() time.Time { return now }

		key := Key("https://watchmmafull.com/?s=ufc", "")

		Convey("A written entry should be read back", func() {
			So(store.Write(key, "<html></html>"), ShouldBeNil)

			var body string
			So(store.Read(key, &body), ShouldBeTrue)
			So(body, ShouldEqual, "<html></html>")
		})

		Convey("An expired entry should be ignored and collected", func() {
			So(store.Write(key, "stale"), ShouldBeNil)
			store.now = func() time.Time { return now.Add(time.Hour) }

			var body string
			So(store.Read(key, &body), ShouldBeFalse)

			store.CollectGarbage()
			exists, _ := filesystem.API().Exists("/cache/pages/" + key)
			So(exists, ShouldBeFalse)
		})

		Convey("A missing entry should miss", func() {
			var body string
			So(store.Read(Key("nothing"), &body), ShouldBeFalse)
		})
	})

	Convey("Given a store with no TTL", t, func() {
		store := New("/cache/off", 0)

		Convey("Writes should be dropped", func() {
			So(store.Write("k", "v"), ShouldBeNil)

			var v string
			So(store.Read("k", &v), ShouldBeFalse)
			So(store.Enabled(), ShouldBeFalse)
		})
	})

	Convey("Key should separate its parts", t, func() {
		So(Key("ab", "c"), ShouldNotEqual, Key("a", "bc"))
		So(Key("a", "b"), ShouldEqual, Key("a", "b"))
	})
}
