package export

import (
	"path/filepath"
	"strings"
)

const defaultBaseName = "resume"

// EnsureExtension 补全缺失的扩展名（大小写不敏感），空文件名回落为 "resume"。
// 路径部分会被去掉，只保留文件名。
func EnsureExtension(name string, f Format) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		name = defaultBaseName
	}
	ext := "." + string(f)
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}
