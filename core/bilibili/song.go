package bilibili

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/hhh7-yy/qingmusic-plugin/core/utils"
	"github.com/hhh7-yy/qingmusic-plugin/logger"
	"github.com/hhh7-yy/qingmusic-plugin/model"
)

// defaultArtist 上游未提供UP主名称时使用的平台标签
const defaultArtist = "哔哩哔哩"

var (
	// ErrMissingCid 视频元数据中找不到分P标识，无法继续请求播放清单
	ErrMissingCid = errors.New("视频元数据缺少cid")

	// ErrNoPlayableURL 播放清单中没有任何可用的音频地址
	ErrNoPlayableURL = errors.New("未找到可播放的音频地址")
)

// 搜索结果标题中夹带的关键词高亮标签
var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// Search 按关键词搜索视频
// 结果路径缺失时静默返回空列表，不视为错误
func (c *Client) Search(ctx context.Context, keyword string) ([]model.Song, error) {
	target := fmt.Sprintf("%s/x/web-interface/search/type?search_type=video&keyword=%s",
		c.baseURL, url.QueryEscape(keyword))
	logger.Info("[Bilibili] 开始搜索", logger.String("keyword", keyword))

	var result struct {
		Data struct {
			Result []struct {
				BVID     string `json:"bvid"`
				Title    string `json:"title"`
				Author   string `json:"author"`
				Pic      string `json:"pic"`
				Duration string `json:"duration"`
			} `json:"result"`
		} `json:"data"`
	}
	if err := c.get(ctx, target, &result); err != nil {
		return nil, fmt.Errorf("搜索失败: %w", err)
	}

	songs := make([]model.Song, 0, len(result.Data.Result))
	for _, item := range result.Data.Result {
		artist := item.Author
		if artist == "" {
			artist = defaultArtist
		}

		song := model.Song{
			ID:     item.BVID,
			Name:   htmlTagRe.ReplaceAllString(item.Title, ""),
			Artist: artist,
			Cover:  normalizeCover(item.Pic),
		}
		if d, ok := utils.ParseDuration(item.Duration); ok {
			song.Duration = d
		}
		songs = append(songs, song)
	}

	logger.Info("[Bilibili] 搜索完成",
		logger.String("keyword", keyword),
		logger.Int("count", len(songs)))
	return songs, nil
}

// PlayURL 获取指定BV号的播放地址
// 分两步：先查视频元数据拿cid，再用cid请求播放清单
func (c *Client) PlayURL(ctx context.Context, id string) (*model.PlayInfo, error) {
	logger.Info("[Bilibili] 获取播放地址", logger.String("id", id))

	cid, err := c.fetchCid(ctx, id)
	if err != nil {
		return nil, err
	}

	return c.fetchPlayURL(ctx, id, cid)
}

// fetchCid 查询视频元数据，取出分P标识
// 优先用 data.cid，缺失时退回分P列表的第一项
func (c *Client) fetchCid(ctx context.Context, id string) (int64, error) {
	target := fmt.Sprintf("%s/x/web-interface/view?bvid=%s", c.baseURL, url.QueryEscape(id))

	var view struct {
		Data struct {
			Cid   int64 `json:"cid"`
			Pages []struct {
				Cid int64 `json:"cid"`
			} `json:"pages"`
		} `json:"data"`
	}
	if err := c.get(ctx, target, &view); err != nil {
		return 0, fmt.Errorf("获取视频信息失败: %w", err)
	}

	cid := view.Data.Cid
	if cid == 0 && len(view.Data.Pages) > 0 {
		cid = view.Data.Pages[0].Cid
	}
	if cid == 0 {
		return 0, ErrMissingCid
	}
	return cid, nil
}

// fetchPlayURL 请求播放清单并取出音频地址
// fnval=16 请求DASH格式，fourk=1 放开最高画质档位
func (c *Client) fetchPlayURL(ctx context.Context, id string, cid int64) (*model.PlayInfo, error) {
	target := fmt.Sprintf("%s/x/player/playurl?bvid=%s&cid=%d&fnval=16&fourk=1",
		c.baseURL, url.QueryEscape(id), cid)

	var manifest struct {
		Data struct {
			Dash struct {
				Audio []struct {
					BaseURL   string `json:"baseUrl"`
					BaseURL2  string `json:"base_url"` // 两种拼写都出现过
					Bandwidth int    `json:"bandwidth"`
					MimeType  string `json:"mimeType"`
					MimeType2 string `json:"mime_type"`
				} `json:"audio"`
			} `json:"dash"`
			Durl []struct {
				URL string `json:"url"`
			} `json:"durl"`
		} `json:"data"`
	}
	if err := c.get(ctx, target, &manifest); err != nil {
		return nil, fmt.Errorf("获取播放清单失败: %w", err)
	}

	// 优先DASH音频轨，其次是旧版直链列表
	if audios := manifest.Data.Dash.Audio; len(audios) > 0 {
		a := audios[0]
		playURL := a.BaseURL
		if playURL == "" {
			playURL = a.BaseURL2
		}
		if playURL != "" {
			mime := a.MimeType
			if mime == "" {
				mime = a.MimeType2
			}
			return &model.PlayInfo{URL: playURL, Br: a.Bandwidth, Mime: mime}, nil
		}
	}

	if durl := manifest.Data.Durl; len(durl) > 0 && durl[0].URL != "" {
		return &model.PlayInfo{URL: durl[0].URL}, nil
	}

	return nil, ErrNoPlayableURL
}

// normalizeCover 补全协议相对地址的scheme
func normalizeCover(pic string) string {
	if strings.HasPrefix(pic, "//") {
		return "https:" + pic
	}
	return pic
}
