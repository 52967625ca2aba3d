package piped

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/samber/lo"

	"github.com/hhh7-yy/qingmusic-plugin/core/stream"
	"github.com/hhh7-yy/qingmusic-plugin/core/utils"
	"github.com/hhh7-yy/qingmusic-plugin/logger"
	"github.com/hhh7-yy/qingmusic-plugin/model"
)

// defaultArtist 上游未提供上传者时使用的平台标签
const defaultArtist = "Piped"

// searchItem 搜索结果条目
// duration 可能是数字也可能是 "MM:SS" 格式字符串，thumbnails 的元素
// 可能是字符串或带 url 字段的对象，均按宽松类型接收
type searchItem struct {
	Type         string `json:"type"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	ID           string `json:"id"`
	UploaderName string `json:"uploaderName"`
	Uploader     string `json:"uploader"`
	Thumbnail    string `json:"thumbnail"`
	Thumbnails   []any  `json:"thumbnails"`
	Duration     any    `json:"duration"`
}

// audioStream 流清单中的单个音频变体
type audioStream struct {
	URL      string `json:"url"`
	Bitrate  int    `json:"bitrate"`
	MimeType string `json:"mimeType"`
	Codec    string `json:"codec"`
}

// Search 按关键词搜索歌曲
func (c *Client) Search(ctx context.Context, keyword string) ([]model.Song, error) {
	target := fmt.Sprintf("%s/search?q=%s&filter=music_songs", c.hosts[0], url.QueryEscape(keyword))
	logger.Info("[Piped] 开始搜索", logger.String("keyword", keyword))

	var raw json.RawMessage
	if err := c.fetcher.FetchJSON(ctx, target, nil, c.hosts, &raw); err != nil {
		return nil, fmt.Errorf("搜索失败: %w", err)
	}

	var songs []model.Song
	for _, itemRaw := range normalizeItems(raw) {
		var item searchItem
		if err := json.Unmarshal(itemRaw, &item); err != nil {
			continue
		}

		if item.Type != "stream" && item.Type != "video" {
			continue
		}
		if item.URL == "" || item.Title == "" {
			continue
		}

		song := model.Song{
			ID:     extractID(item),
			Name:   item.Title,
			Artist: artistOf(item),
			Cover:  coverOf(item),
		}
		if d, ok := utils.ParseDuration(item.Duration); ok {
			song.Duration = d
		}
		songs = append(songs, song)
	}

	logger.Info("[Piped] 搜索完成",
		logger.String("keyword", keyword),
		logger.Int("count", len(songs)))
	return songs, nil
}

// PlayURL 获取指定ID的播放地址
func (c *Client) PlayURL(ctx context.Context, id string) (*model.PlayInfo, error) {
	target := fmt.Sprintf("%s/streams/%s", c.hosts[0], url.PathEscape(id))
	logger.Info("[Piped] 获取播放地址", logger.String("id", id))

	var manifest struct {
		AudioStreams []audioStream `json:"audioStreams"`
	}
	if err := c.fetcher.FetchJSON(ctx, target, nil, c.hosts, &manifest); err != nil {
		return nil, fmt.Errorf("获取流清单失败: %w", err)
	}

	if len(manifest.AudioStreams) == 0 {
		return nil, stream.ErrNoStreams
	}

	candidates := lo.Map(manifest.AudioStreams, func(a audioStream, _ int) stream.Rendition {
		mime := a.MimeType
		if mime == "" {
			mime = a.Codec
		}
		return stream.Rendition{URL: a.URL, Bitrate: a.Bitrate, Mime: mime}
	})

	best, err := stream.SelectBest(candidates)
	if err != nil {
		return nil, err
	}

	return &model.PlayInfo{
		URL:  best.URL,
		Br:   best.Bitrate,
		Mime: best.Mime,
	}, nil
}

// normalizeItems 把响应统一成条目列表
// 依次尝试：原始数组、带 items 字段的对象、整个对象本身作为容器
func normalizeItems(raw json.RawMessage) []json.RawMessage {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr
	}

	var page struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &page); err == nil && page.Items != nil {
		return page.Items
	}

	return []json.RawMessage{raw}
}

// extractID 提取歌曲的规范标识
// 优先取引用URL查询串中的 v 参数，其次是条目自带的 id 字段，
// 最后退回原始URL（沿用上游脚本的回退顺序，见DESIGN.md）
func extractID(item searchItem) string {
	if u, err := url.Parse(item.URL); err == nil {
		if v := u.Query().Get("v"); v != "" {
			return v
		}
	}
	if item.ID != "" {
		return item.ID
	}
	return item.URL
}

func artistOf(item searchItem) string {
	if item.UploaderName != "" {
		return item.UploaderName
	}
	if item.Uploader != "" {
		return item.Uploader
	}
	return defaultArtist
}

// coverOf 取封面地址，缺失时返回空字符串
func coverOf(item searchItem) string {
	if item.Thumbnail != "" {
		return item.Thumbnail
	}
	if len(item.Thumbnails) > 0 {
		switch t := item.Thumbnails[0].(type) {
		case string:
			return t
		case map[string]any:
			if u, ok := t["url"].(string); ok {
				return u
			}
		}
	}
	return ""
}
