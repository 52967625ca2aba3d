package utils

import (
	"strconv"
	"strings"
)

// ParseDuration 解析上游返回的时长字段，统一为秒数
// 支持 "H:MM:SS"、"MM:SS"、纯秒数字符串，以及JSON数字（float64）
// 时长只是尽力而为的元数据：解析失败返回 (0, false)，不产生错误
func ParseDuration(v any) (int, bool) {
	switch d := v.(type) {
	case float64:
		if d < 0 {
			return 0, false
		}
		return int(d), true
	case int:
		if d < 0 {
			return 0, false
		}
		return d, true
	case string:
		total := 0
		for _, group := range strings.Split(d, ":") {
			n, err := strconv.Atoi(strings.TrimSpace(group))
			if err != nil {
				return 0, false
			}
			total = total*60 + n
		}
		if total < 0 {
			return 0, false
		}
		return total, true
	default:
		return 0, false
	}
}
