package utils

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDuration(t *testing.T) {
	Convey("ParseDuration", t, func() {
		Convey("冒号分组按60进制折叠", func() {
			d, ok := ParseDuration("1:02:03")
			So(ok, ShouldBeTrue)
			So(d, ShouldEqual, 3723)

			d, ok = ParseDuration("03:25")
			So(ok, ShouldBeTrue)
			So(d, ShouldEqual, 205)
		})

		Convey("纯秒数字符串原样解析", func() {
			d, ok := ParseDuration("90")
			So(ok, ShouldBeTrue)
			So(d, ShouldEqual, 90)
		})

		Convey("JSON数字直接透传", func() {
			d, ok := ParseDuration(float64(245))
			So(ok, ShouldBeTrue)
			So(d, ShouldEqual, 245)
		})

		Convey("非法分组返回无值而不是零", func() {
			_, ok := ParseDuration("a:b")
			So(ok, ShouldBeFalse)

			_, ok = ParseDuration("1:2x:3")
			So(ok, ShouldBeFalse)
		})

		Convey("非字符串非数字输入返回无值", func() {
			_, ok := ParseDuration(nil)
			So(ok, ShouldBeFalse)

			_, ok = ParseDuration([]any{"1:00"})
			So(ok, ShouldBeFalse)
		})

		Convey("负值不作为有效时长", func() {
			_, ok := ParseDuration(float64(-3))
			So(ok, ShouldBeFalse)

			_, ok = ParseDuration("-10")
			So(ok, ShouldBeFalse)
		})
	})
}
