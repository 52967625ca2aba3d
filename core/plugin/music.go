package plugin

import (
	"context"
	"fmt"

	"github.com/hhh7-yy/qingmusic-plugin/model"
)

// 内置来源标识
const (
	SourcePiped    = "piped"
	SourceBilibili = "bilibili"
)

// MusicSource 音乐来源统一接口
// 定义搜索、取播放地址两类操作
type MusicSource interface {
	// Search 搜索歌曲
	Search(ctx context.Context, keyword string) ([]model.Song, error)

	// PlayURL 获取播放地址
	PlayURL(ctx context.Context, id string) (*model.PlayInfo, error)

	// GetSource 获取来源标识
	GetSource() string
}

// Manager 音乐来源管理器，对宿主应用暴露四个解析操作
type Manager struct {
	sources map[string]MusicSource
}

// NewManager 创建来源管理器
func NewManager() *Manager {
	return &Manager{
		sources: make(map[string]MusicSource),
	}
}

// Register 注册来源
func (m *Manager) Register(source MusicSource) {
	m.sources[source.GetSource()] = source
}

// Get 获取指定来源
func (m *Manager) Get(name string) MusicSource {
	return m.sources[name]
}

// SearchPiped Piped来源搜索
func (m *Manager) SearchPiped(ctx context.Context, keyword string) ([]model.Song, error) {
	return m.search(ctx, SourcePiped, keyword)
}

// PipedPlayURL Piped来源取播放地址
func (m *Manager) PipedPlayURL(ctx context.Context, id string) (*model.PlayInfo, error) {
	return m.playURL(ctx, SourcePiped, id)
}

// SearchBilibili 哔哩哔哩来源搜索
func (m *Manager) SearchBilibili(ctx context.Context, keyword string) ([]model.Song, error) {
	return m.search(ctx, SourceBilibili, keyword)
}

// BilibiliPlayURL 哔哩哔哩来源取播放地址
func (m *Manager) BilibiliPlayURL(ctx context.Context, id string) (*model.PlayInfo, error) {
	return m.playURL(ctx, SourceBilibili, id)
}

func (m *Manager) search(ctx context.Context, name, keyword string) ([]model.Song, error) {
	source := m.Get(name)
	if source == nil {
		return nil, fmt.Errorf("未注册来源: %s", name)
	}
	return source.Search(ctx, keyword)
}

func (m *Manager) playURL(ctx context.Context, name, id string) (*model.PlayInfo, error) {
	source := m.Get(name)
	if source == nil {
		return nil, fmt.Errorf("未注册来源: %s", name)
	}
	return source.PlayURL(ctx, id)
}
