// Package stream 提供音频流候选的选择逻辑
package stream

import "errors"

// ErrNoStreams 清单中没有任何可用的音频流
var ErrNoStreams = errors.New("没有可用的音频流")

// Rendition 单个音频流变体
type Rendition struct {
	URL     string
	Bitrate int
	Mime    string
}

// SelectBest 在候选中选出码率最高的一个
// 码率相同时取从左到右扫描先遇到的那个，结果稳定可预测
func SelectBest(candidates []Rendition) (Rendition, error) {
	if len(candidates) == 0 {
		return Rendition{}, ErrNoStreams
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Bitrate > best.Bitrate {
			best = c
		}
	}
	return best, nil
}
