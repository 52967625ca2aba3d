package stream

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSelectBest(t *testing.T) {
	Convey("SelectBest", t, func() {
		Convey("空候选返回ErrNoStreams", func() {
			_, err := SelectBest(nil)
			So(err, ShouldEqual, ErrNoStreams)
		})

		Convey("选出码率最高的候选", func() {
			best, err := SelectBest([]Rendition{
				{URL: "a", Bitrate: 128},
				{URL: "b", Bitrate: 320},
				{URL: "c", Bitrate: 192},
			})
			So(err, ShouldBeNil)
			So(best.URL, ShouldEqual, "b")
		})

		Convey("码率相同时取先出现的那个", func() {
			best, err := SelectBest([]Rendition{
				{URL: "first", Bitrate: 128},
				{URL: "second", Bitrate: 320},
				{URL: "third", Bitrate: 320},
			})
			So(err, ShouldBeNil)
			So(best.URL, ShouldEqual, "second")
		})

		Convey("单个候选直接返回", func() {
			best, err := SelectBest([]Rendition{{URL: "only", Bitrate: 0}})
			So(err, ShouldBeNil)
			So(best.URL, ShouldEqual, "only")
		})
	})
}
