package server

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hhh7-yy/qingmusic-plugin/logger"
)

// RelayHandler 跨域转发中继
// 浏览器环境直接请求上游会被CORS拦截时，可将请求经由本端点转发，
// 响应原样返回并附带宽松的跨域头。中继只是可替换的传输通道，不参与解析逻辑
type RelayHandler struct {
	client *http.Client
}

// NewRelayHandler 创建中继处理器
func NewRelayHandler(timeout time.Duration) *RelayHandler {
	return &RelayHandler{
		client: &http.Client{Timeout: timeout},
	}
}

// HandleRelay 转发 url 参数指向的请求，referer 参数可覆盖转发时的Referer头
func (r *RelayHandler) HandleRelay(w http.ResponseWriter, req *http.Request) {
	target := req.URL.Query().Get("url")
	if target == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return
	}

	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		http.Error(w, "invalid url parameter", http.StatusBadRequest)
		return
	}

	outReq, err := http.NewRequestWithContext(req.Context(), http.MethodGet, target, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if referer := req.URL.Query().Get("referer"); referer != "" {
		outReq.Header.Set("Referer", referer)
	}

	resp, err := r.client.Do(outReq)
	if err != nil {
		logger.Warn("中继请求失败", logger.String("url", target), logger.ErrorField(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Debug("中继响应写入中断", logger.ErrorField(err))
	}
}
