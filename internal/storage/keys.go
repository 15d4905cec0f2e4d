package storage

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// 对象 key 布局：
//   user-assets/<user>/<uuid>.<ext>          用户上传的头像
//   exports/<user>/<resume>/<uuid>.<ext>     导出产物
//   thumbnails/template/<id>.png             模板缩略图
const (
	userAssetsPrefix = "user-assets"
	exportsPrefix    = "exports"
	thumbnailsPrefix = "thumbnails/template"
)

// UserAssetPrefix 返回用户资产目录前缀（以 / 结尾）。
func UserAssetPrefix(userID uint) string {
	return fmt.Sprintf("%s/%d/", userAssetsPrefix, userID)
}

// UserAssetKey 构造用户资产对象 key。
func UserAssetKey(userID uint, name, ext string) string {
	return UserAssetPrefix(userID) + name + "." + strings.TrimPrefix(ext, ".")
}

// ExportPrefix 返回某份简历全部导出产物的前缀。
func ExportPrefix(userID, resumeID uint) string {
	return fmt.Sprintf("%s/%d/%d/", exportsPrefix, userID, resumeID)
}

// ExportKey 构造导出产物 key。
func ExportKey(userID, resumeID uint, name, ext string) string {
	return ExportPrefix(userID, resumeID) + name + "." + strings.TrimPrefix(ext, ".")
}

// ThumbnailKey 返回模板缩略图 key。
func ThumbnailKey(templateID string) string {
	return fmt.Sprintf("%s/%s.png", thumbnailsPrefix, templateID)
}

// IsValidUserAssetKey 校验 key 属于该用户且是受支持的图片类型。
func IsValidUserAssetKey(userID uint, key string) bool {
	if key == "" || !utf8.ValidString(key) {
		return false
	}
	if !strings.HasPrefix(key, UserAssetPrefix(userID)) {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || strings.Contains(key, "//") {
		return false
	}
	if len(key) > 200 {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
