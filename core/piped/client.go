// Package piped 对接Piped联邦视频平台的镜像API
package piped

import (
	"time"

	"github.com/hhh7-yy/qingmusic-plugin/core/fetch"
)

// DefaultHosts 默认的公共镜像列表，顺序即优先级
var DefaultHosts = []string{
	"https://pipedapi.kavin.rocks",
	"https://pipedapi.tokhmi.xyz",
	"https://api.piped.projectsegfau.lt",
	"https://pipedapi.adminforge.de",
}

// Client Piped API客户端
// 镜像列表在构造时注入，之后只读，可安全地被并发调用共享
type Client struct {
	hosts   []string
	fetcher *fetch.Client
}

// NewClient 创建Piped客户端
// hosts 为空时使用内置的默认镜像列表
func NewClient(hosts []string, timeout time.Duration) *Client {
	if len(hosts) == 0 {
		hosts = DefaultHosts
	}
	return &Client{
		hosts:   hosts,
		fetcher: fetch.NewClient(timeout),
	}
}

// Hosts 返回当前镜像列表
func (c *Client) Hosts() []string {
	return c.hosts
}
