package storage

import (
	"errors"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ErrObjectTooLarge 读取对象时超过了允许的大小。
var ErrObjectTooLarge = errors.New("object too large")

// s3Code 取出 S3 错误码（小写）；非 S3 错误返回空串。
func s3Code(err error) string {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return strings.ToLower(resp.Code)
	}
	return ""
}

// matches 先比对 S3 错误码，再退回到错误文本：
// 部分网关会把 S3 错误改写成纯文本。
func matches(err error, codes []string, phrases []string) bool {
	if err == nil {
		return false
	}
	code := s3Code(err)
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// IsNoSuchKey reports whether the object does not exist.
func IsNoSuchKey(err error) bool {
	return matches(err,
		[]string{"nosuchkey", "notfound"},
		[]string{"nosuchkey", "specified key does not exist"},
	)
}

// IsNoSuchBucket reports whether the bucket itself is missing. 这是部署问题，不能当作资源缺失告警处理。
func IsNoSuchBucket(err error) bool {
	return matches(err,
		[]string{"nosuchbucket"},
		[]string{"nosuchbucket", "specified bucket does not exist"},
	)
}

func IsAccessDenied(err error) bool {
	return matches(err, []string{"accessdenied"}, []string{"access denied"})
}
