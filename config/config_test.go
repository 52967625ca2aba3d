package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadMirrorsFile(t *testing.T) {
	Convey("LoadMirrorsFile", t, func() {
		Convey("跳过空行和注释，去掉末尾斜杠", func() {
			path := filepath.Join(t.TempDir(), "mirrors.txt")
			content := "# 主力镜像\nhttps://pipedapi.kavin.rocks/\n\nhttps://pipedapi.adminforge.de\n"
			So(os.WriteFile(path, []byte(content), 0644), ShouldBeNil)

			hosts, err := LoadMirrorsFile(path)
			So(err, ShouldBeNil)
			So(hosts, ShouldResemble, []string{
				"https://pipedapi.kavin.rocks",
				"https://pipedapi.adminforge.de",
			})
		})

		Convey("文件不存在时返回错误", func() {
			_, err := LoadMirrorsFile(filepath.Join(t.TempDir(), "missing.txt"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSplitHosts(t *testing.T) {
	Convey("splitHosts", t, func() {
		hosts := splitHosts(" https://a.example/, ,https://b.example ")
		So(hosts, ShouldResemble, []string{"https://a.example", "https://b.example"})
	})
}
