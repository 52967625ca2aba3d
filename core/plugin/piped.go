package plugin

import (
	"context"
	"time"

	"github.com/hhh7-yy/qingmusic-plugin/core/piped"
	"github.com/hhh7-yy/qingmusic-plugin/logger"
	"github.com/hhh7-yy/qingmusic-plugin/model"
)

// PipedSource Piped来源实现
type PipedSource struct {
	client *piped.Client
}

// NewPipedSource 创建Piped来源
// hosts 为镜像列表，顺序即故障转移优先级
func NewPipedSource(hosts []string, timeout time.Duration) *PipedSource {
	return &PipedSource{
		client: piped.NewClient(hosts, timeout),
	}
}

// GetSource 返回来源标识
func (s *PipedSource) GetSource() string {
	return SourcePiped
}

// Search 搜索歌曲
func (s *PipedSource) Search(ctx context.Context, keyword string) ([]model.Song, error) {
	songs, err := s.client.Search(ctx, keyword)
	if err != nil {
		logger.Error("[PipedSource] 搜索失败",
			logger.String("keyword", keyword),
			logger.ErrorField(err))
		return nil, err
	}
	return songs, nil
}

// PlayURL 获取播放地址
func (s *PipedSource) PlayURL(ctx context.Context, id string) (*model.PlayInfo, error) {
	info, err := s.client.PlayURL(ctx, id)
	if err != nil {
		logger.Error("[PipedSource] 获取播放地址失败",
			logger.String("id", id),
			logger.ErrorField(err))
		return nil, err
	}
	return info, nil
}
