// Package fetch 提供带镜像故障转移的HTTP+JSON请求执行器
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hhh7-yy/qingmusic-plugin/logger"
)

// Options 单次请求的可选项
type Options struct {
	Headers map[string]string
}

// Client HTTP+JSON请求客户端
// 镜像列表在每次调用时显式传入，客户端本身不持有任何主机状态
type Client struct {
	httpClient *http.Client
}

// NewClient 创建请求客户端
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchJSON 请求 target 并将JSON响应解析到 out
//
// hosts 为空时只向 target 发起一次请求。hosts 非空时按顺序逐个镜像重写
// target 的 scheme+authority（路径与查询参数原样保留）并重试，返回第一个
// 状态码成功且响应体为合法JSON的结果；全部失败时返回 *AllMirrorsError，
// 其中包装最后一次的失败原因。镜像之间立即切换，不做退避等待。
func (c *Client) FetchJSON(ctx context.Context, target string, opt *Options, hosts []string, out any) error {
	if len(hosts) == 0 {
		body, err := c.fetchOnce(ctx, target, opt)
		if err != nil {
			return err
		}
		return decodeInto(body, out)
	}

	var lastErr error
	for _, host := range hosts {
		rewritten, err := rewriteHost(target, host)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := c.fetchOnce(ctx, rewritten, opt)
		if err != nil {
			logger.Warn("镜像请求失败，切换下一个实例",
				logger.String("host", host),
				logger.ErrorField(err))
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		return decodeInto(body, out)
	}

	return &AllMirrorsError{Err: lastErr}
}

// fetchOnce 发起单次请求，校验状态码并确认响应体为合法JSON
func (c *Client) fetchOnce(ctx context.Context, target string, opt *Options) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	if opt != nil {
		for k, v := range opt.Headers {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, URL: target}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("响应不是合法的JSON: %s", target)
	}

	return body, nil
}

// decodeInto 只在请求成功后解析一次，避免失败尝试污染 out
func decodeInto(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}

// rewriteHost 用镜像的 scheme+authority 替换 target 的对应部分
func rewriteHost(target, host string) (string, error) {
	t, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("解析请求地址失败: %w", err)
	}
	h, err := url.Parse(host)
	if err != nil || h.Host == "" {
		return "", fmt.Errorf("无效的镜像地址: %s", host)
	}
	t.Scheme = h.Scheme
	t.Host = h.Host
	return t.String(), nil
}
