package util

import (
	"testing"

	"github.com/fluxstream/fluxstream/filesystem"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("path/to/file.txt"), ShouldEqual, "file")
		So(FileStem("file"), ShouldEqual, "file")
	})
}

func TestMax(t *testing.T) {
	Convey("Max", t, func() {
		So(Max(3, 9, 1), ShouldEqual, 9)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a directory tree", t, func() {
		filesystem.SetMemMapFs()
		So(filesystem.API().WriteFile("/tmp/fluxstream/a/b.txt", []byte("x"), 0o644), ShouldBeNil)

		Convey("Delete should remove it recursively", func() {
			So(Delete("/tmp/fluxstream"), ShouldBeNil)
			exists, _ := filesystem.API().Exists("/tmp/fluxstream/a/b.txt")
			So(exists, ShouldBeFalse)
		})

		Convey("Deleting a missing path should fail", func() {
			So(Delete("/nope"), ShouldNotBeNil)
		})
	})
}
