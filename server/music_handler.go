package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hhh7-yy/qingmusic-plugin/core/bilibili"
	"github.com/hhh7-yy/qingmusic-plugin/core/fetch"
	"github.com/hhh7-yy/qingmusic-plugin/core/stream"
)

// MusicHandler 处理四个解析操作的HTTP请求
type MusicHandler struct {
	holder *sourceHolder
}

// NewMusicHandler 创建音乐解析处理器
func NewMusicHandler(holder *sourceHolder) *MusicHandler {
	return &MusicHandler{holder: holder}
}

// apiResponse 统一响应结构
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HandlePipedSearch 处理Piped搜索请求
func (h *MusicHandler) HandlePipedSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "请提供搜索关键词"})
		return
	}

	songs, err := h.holder.Manager().SearchPiped(r.Context(), keyword)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: songs})
}

// HandlePipedURL 处理Piped播放地址请求
func (h *MusicHandler) HandlePipedURL(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	info, err := h.holder.Manager().PipedPlayURL(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: info})
}

// HandleBilibiliSearch 处理哔哩哔哩搜索请求
func (h *MusicHandler) HandleBilibiliSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "请提供搜索关键词"})
		return
	}

	songs, err := h.holder.Manager().SearchBilibili(r.Context(), keyword)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: songs})
}

// HandleBilibiliURL 处理哔哩哔哩播放地址请求
func (h *MusicHandler) HandleBilibiliURL(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	info, err := h.holder.Manager().BilibiliPlayURL(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: info})
}

// writeError 按错误种类映射HTTP状态码
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var mirrors *fetch.AllMirrorsError
	switch {
	case errors.Is(err, stream.ErrNoStreams),
		errors.Is(err, bilibili.ErrNoPlayableURL),
		errors.Is(err, bilibili.ErrMissingCid):
		status = http.StatusNotFound
	case errors.As(err, &mirrors):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, apiResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
