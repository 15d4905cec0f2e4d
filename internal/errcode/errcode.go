// Package errcode 定义推送给前端的导出结果码。
//
// 0 表示成功；4xxx 是可继续的告警（产物仍然生成）；5xxx 是中断导出的失败。
package errcode

import (
	"context"
	"errors"
)

const (
	OK = 0

	// ResourceMissing 头像等引用对象不存在，已按无图渲染。
	ResourceMissing = 4004

	SystemError = 5000
	// RasterizeFailed 浏览器加载或截图失败。
	RasterizeFailed = 5001
	// RenderTimeout 页面稳定或截图超过了配置的超时。
	RenderTimeout = 5004
)

var texts = map[int]string{
	OK:              "ok",
	ResourceMissing: "resource missing",
	SystemError:     "system error",
	RasterizeFailed: "rasterize failed",
	RenderTimeout:   "render timeout",
}

// Text returns a short machine-stable label for code.
func Text(code int) string {
	if s, ok := texts[code]; ok {
		return s
	}
	return texts[SystemError]
}

// IsWarning reports whether code still comes with an artifact.
func IsWarning(code int) bool {
	return code >= 4000 && code < 5000
}

// Classify maps an export failure onto a 5xxx code. rasterizeErr is the
// sentinel the export pipeline wraps capture failures with.
func Classify(err, rasterizeErr error) int {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, context.DeadlineExceeded):
		return RenderTimeout
	case rasterizeErr != nil && errors.Is(err, rasterizeErr):
		return RasterizeFailed
	default:
		return SystemError
	}
}
