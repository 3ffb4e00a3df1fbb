package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestWriteAtomic(t *testing.T) {
	Convey("Given an in-memory backend", t, func() {
		SetMemMapFs()
		So(API().MkdirAll("/cache", 0o755), ShouldBeNil)

		Convey("WriteAtomic should leave only the final file", func() {
			So(WriteAtomic("/cache/entry", []byte("body")), ShouldBeNil)

			data, err := API().ReadFile("/cache/entry")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "body")

			exists, _ := API().Exists("/cache/entry.tmp")
			So(exists, ShouldBeFalse)
		})

		Convey("ModTime should report missing files", func() {
			_, ok := ModTime("/cache/missing")
			So(ok, ShouldBeFalse)
		})
	})
}
