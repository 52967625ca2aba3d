package fetch

import "fmt"

// StatusError 上游返回非成功状态码
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("上游返回错误状态码: %d (%s)", e.Code, e.URL)
}

// AllMirrorsError 所有镜像实例均请求失败
// Err 保存最后一次遇到的失败原因
type AllMirrorsError struct {
	Err error
}

func (e *AllMirrorsError) Error() string {
	if e.Err == nil {
		return "所有镜像实例均不可用"
	}
	return fmt.Sprintf("所有镜像实例均不可用: %v", e.Err)
}

func (e *AllMirrorsError) Unwrap() error {
	return e.Err
}
