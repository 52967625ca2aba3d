package bilibili

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	return NewClient(ts.URL, time.Second), ts
}

func TestSearch(t *testing.T) {
	Convey("哔哩哔哩搜索归一化", t, func() {
		Convey("标题去除高亮标签，封面补全scheme", func() {
			var gotReferer string
			c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotReferer = r.Header.Get("Referer")
				w.Write([]byte(`{"code":0,"data":{"result":[
					{"bvid":"BV1xx411c7md","title":"<em class=\"keyword\">晴天</em> 翻唱","author":"某UP主","pic":"//i0.hdslb.com/cover.jpg","duration":"4:29"}
				]}}`))
			}))
			defer ts.Close()

			songs, err := c.Search(context.Background(), "晴天")
			So(err, ShouldBeNil)
			So(gotReferer, ShouldEqual, "https://www.bilibili.com/")
			So(len(songs), ShouldEqual, 1)
			So(songs[0].ID, ShouldEqual, "BV1xx411c7md")
			So(songs[0].Name, ShouldEqual, "晴天 翻唱")
			So(songs[0].Artist, ShouldEqual, "某UP主")
			So(songs[0].Cover, ShouldEqual, "https://i0.hdslb.com/cover.jpg")
			So(songs[0].Duration, ShouldEqual, 269)
		})

		Convey("作者缺失时使用平台标签", func() {
			c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"code":0,"data":{"result":[{"bvid":"BV1","title":"t","pic":"https://img/a.jpg"}]}}`))
			}))
			defer ts.Close()

			songs, err := c.Search(context.Background(), "t")
			So(err, ShouldBeNil)
			So(songs[0].Artist, ShouldEqual, defaultArtist)
			So(songs[0].Cover, ShouldEqual, "https://img/a.jpg")
			So(songs[0].Duration, ShouldEqual, 0)
		})

		Convey("结果路径缺失时静默返回空列表", func() {
			c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"code":0,"data":{}}`))
			}))
			defer ts.Close()

			songs, err := c.Search(context.Background(), "t")
			So(err, ShouldBeNil)
			So(len(songs), ShouldEqual, 0)
		})
	})
}

func TestPlayURL(t *testing.T) {
	Convey("哔哩哔哩播放地址解析", t, func() {
		Convey("先查cid再取DASH音频轨", func() {
			c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/x/web-interface/view":
					w.Write([]byte(`{"code":0,"data":{"cid":12345}}`))
				case "/x/player/playurl":
					w.Write([]byte(`{"code":0,"data":{"dash":{"audio":[
						{"baseUrl":"https://upos/audio.m4s","bandwidth":132680,"mimeType":"audio/mp4"},
						{"baseUrl":"https://upos/low.m4s","bandwidth":67230,"mimeType":"audio/mp4"}
					]}}}`))
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer ts.Close()

			info, err := c.PlayURL(context.Background(), "BV1xx411c7md")
			So(err, ShouldBeNil)
			So(info.URL, ShouldEqual, "https://upos/audio.m4s")
			So(info.Br, ShouldEqual, 132680)
			So(info.Mime, ShouldEqual, "audio/mp4")
		})

		Convey("data.cid缺失时退回分P列表第一项", func() {
			var gotCid string
			c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/x/web-interface/view":
					w.Write([]byte(`{"code":0,"data":{"pages":[{"cid":678},{"cid":679}]}}`))
				case "/x/player/playurl":
					gotCid = r.URL.Query().Get("cid")
					w.Write([]byte(`{"code":0,"data":{"dash":{"audio":[{"base_url":"https://upos/a.m4s","bandwidth":100,"mime_type":"audio/mp4"}]}}}`))
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer ts.Close()

			info, err := c.PlayURL(context.Background(), "BV1")
			So(err, ShouldBeNil)
			So(gotCid, ShouldEqual, "678")
			So(info.URL, ShouldEqual, "https://upos/a.m4s")
			So(info.Mime, ShouldEqual, "audio/mp4")
		})

		Convey("cid与分P列表都缺失时返回ErrMissingCid且不请求播放清单", func() {
			var playurlCalls atomic.Int32
			c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/x/web-interface/view":
					w.Write([]byte(`{"code":0,"data":{"title":"t"}}`))
				case "/x/player/playurl":
					playurlCalls.Add(1)
					w.Write([]byte(`{}`))
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer ts.Close()

			_, err := c.PlayURL(context.Background(), "BV1")
			So(errors.Is(err, ErrMissingCid), ShouldBeTrue)
			So(playurlCalls.Load(), ShouldEqual, 0)
		})

		Convey("DASH缺失时退回旧版durl直链", func() {
			c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/x/web-interface/view":
					w.Write([]byte(`{"code":0,"data":{"cid":1}}`))
				case "/x/player/playurl":
					w.Write([]byte(`{"code":0,"data":{"durl":[{"url":"https://upos/legacy.flv"}]}}`))
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer ts.Close()

			info, err := c.PlayURL(context.Background(), "BV1")
			So(err, ShouldBeNil)
			So(info.URL, ShouldEqual, "https://upos/legacy.flv")
			So(info.Br, ShouldEqual, 0)
			So(info.Mime, ShouldEqual, "")
		})

		Convey("两种来源都没有地址时返回ErrNoPlayableURL", func() {
			c, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/x/web-interface/view":
					w.Write([]byte(`{"code":0,"data":{"cid":1}}`))
				case "/x/player/playurl":
					w.Write([]byte(`{"code":0,"data":{}}`))
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer ts.Close()

			_, err := c.PlayURL(context.Background(), "BV1")
			So(errors.Is(err, ErrNoPlayableURL), ShouldBeTrue)
		})
	})
}
