package model

// Song 跨平台统一的歌曲结构
// 搜索结果经各适配器归一化后均为此形状
type Song struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	Cover    string `json:"cover"`              // 封面URL，无封面时为空字符串
	Duration int    `json:"duration,omitempty"` // 时长（秒），0 表示未知
}

// PlayInfo 可播放音频地址信息
// URL 在成功时必定非空；没有可用地址属于硬失败，不会返回空串
type PlayInfo struct {
	URL  string `json:"url"`
	Br   int    `json:"br,omitempty"`   // 码率
	Mime string `json:"mime,omitempty"` // MIME类型或编码标识
}
