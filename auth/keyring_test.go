package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestAPIKey(t *testing.T) {
	Convey("Given an empty keyring", t, func() {
		keyring.MockInit()

		Convey("GetAPIKey should return an empty key", func() {
			key, err := GetAPIKey()
			So(err, ShouldBeNil)
			So(key, ShouldBeEmpty)
		})

		Convey("A stored key should be returned until deleted", func() {
			So(SetAPIKey("secret"), ShouldBeNil)

			key, err := GetAPIKey()
			So(err, ShouldBeNil)
			So(key, ShouldEqual, "secret")

			So(DeleteAPIKey(), ShouldBeNil)
			key, err = GetAPIKey()
			So(err, ShouldBeNil)
			So(key, ShouldBeEmpty)
		})

		Convey("Deleting a missing key should succeed", func() {
			So(DeleteAPIKey(), ShouldBeNil)
		})
	})
}
