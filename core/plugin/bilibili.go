package plugin

import (
	"context"
	"time"

	"github.com/hhh7-yy/qingmusic-plugin/core/bilibili"
	"github.com/hhh7-yy/qingmusic-plugin/logger"
	"github.com/hhh7-yy/qingmusic-plugin/model"
)

// BilibiliSource 哔哩哔哩来源实现
type BilibiliSource struct {
	client *bilibili.Client
}

// NewBilibiliSource 创建哔哩哔哩来源
func NewBilibiliSource(baseURL string, timeout time.Duration) *BilibiliSource {
	return &BilibiliSource{
		client: bilibili.NewClient(baseURL, timeout),
	}
}

// GetSource 返回来源标识
func (s *BilibiliSource) GetSource() string {
	return SourceBilibili
}

// Search 搜索歌曲
func (s *BilibiliSource) Search(ctx context.Context, keyword string) ([]model.Song, error) {
	songs, err := s.client.Search(ctx, keyword)
	if err != nil {
		logger.Error("[BilibiliSource] 搜索失败",
			logger.String("keyword", keyword),
			logger.ErrorField(err))
		return nil, err
	}
	return songs, nil
}

// PlayURL 获取播放地址
func (s *BilibiliSource) PlayURL(ctx context.Context, id string) (*model.PlayInfo, error) {
	info, err := s.client.PlayURL(ctx, id)
	if err != nil {
		logger.Error("[BilibiliSource] 获取播放地址失败",
			logger.String("id", id),
			logger.ErrorField(err))
		return nil, err
	}
	return info, nil
}
