// Package assets resolves user-uploaded images referenced by résumé data.
package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"resumeStudio/internal/errcode"
	"resumeStudio/internal/resume"
	"resumeStudio/internal/storage"
)

// ObjectReader 是内联图片所需的最小存储能力。
type ObjectReader interface {
	ReadObject(ctx context.Context, objectKey string) ([]byte, string, error)
}

// Warning 描述可恢复的资源问题，会随导出通知一起下发。
type Warning struct {
	Code        int      `json:"code"`
	Message     string   `json:"message"`
	MissingKeys []string `json:"missing_keys,omitempty"`
}

const missingPhotoMessage = "头像资源缺失/无效，已自动跳过并继续生成"

// InlinePhoto 把 personalInfo.photo 中的对象 key 替换为 data URI，已是 data URI 的原样保留。
// 离屏页面由 worker 的浏览器加载，只允许内联数据，不放行任何远程地址。
// 约定：
// - 远程地址、key 非法或对象不存在 => 去掉头像，返回 4004 warning
// - Bucket 不存在 => 系统错误
func InlinePhoto(ctx context.Context, store ObjectReader, ownerID uint, d resume.Data) (resume.Data, *Warning, error) {
	photo := strings.TrimSpace(d.PersonalInfo.Photo)
	if photo == "" || isInlineImage(photo) {
		return d, nil, nil
	}

	missing := func() (resume.Data, *Warning, error) {
		d.PersonalInfo.Photo = ""
		return d, &Warning{
			Code:        errcode.ResourceMissing,
			Message:     missingPhotoMessage,
			MissingKeys: []string{photo},
		}, nil
	}

	if !storage.IsValidUserAssetKey(ownerID, photo) {
		return missing()
	}

	data, contentType, err := store.ReadObject(ctx, photo)
	if err != nil {
		switch {
		case storage.IsNoSuchBucket(err):
			return d, nil, fmt.Errorf("minio bucket does not exist: %w", err)
		case storage.IsNoSuchKey(err):
			return missing()
		}
		return d, nil, fmt.Errorf("read photo: %w", err)
	}
	if len(data) == 0 {
		return missing()
	}

	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/png"
	}
	d.PersonalInfo.Photo = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return d, nil, nil
}

// isInlineImage 判断 src 是否为内联图片数据。
func isInlineImage(src string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(src)), "data:image/")
}
