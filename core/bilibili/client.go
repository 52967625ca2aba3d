// Package bilibili 对接哔哩哔哩开放接口
package bilibili

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/hhh7-yy/qingmusic-plugin/core/fetch"
)

const (
	// DefaultBaseURL 平台唯一的规范主机，不做镜像故障转移
	DefaultBaseURL = "https://api.bilibili.com"

	// siteOrigin 平台要求的Referer，缺失时上游会拒绝跨源请求
	siteOrigin = "https://www.bilibili.com/"
)

// Client 哔哩哔哩API客户端
type Client struct {
	baseURL string
	fetcher *fetch.Client
	limiter *rate.Limiter
}

// NewClient 创建客户端，baseURL 为空时使用官方接口地址
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		fetcher: fetch.NewClient(timeout),
		// 控制请求节奏，避免触发上游风控
		limiter: rate.NewLimiter(rate.Every(300*time.Millisecond), 2),
	}
}

// get 发起单次请求并解析JSON，统一附带平台要求的Referer
func (c *Client) get(ctx context.Context, target string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("等待请求配额失败: %w", err)
	}

	opt := &fetch.Options{
		Headers: map[string]string{"Referer": siteOrigin},
	}
	return c.fetcher.FetchJSON(ctx, target, opt, nil, out)
}
