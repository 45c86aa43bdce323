// Package media resolves uploaded files to durable references and releases
// them when the owning entity goes away.
package media

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrUploadFailed 上传失败；调用方统一映射为 500 "upload failed"
var ErrUploadFailed = errors.New("upload failed")

// Kind 媒体类别，决定对象前缀
type Kind string

const (
	KindVideo     Kind = "videos"
	KindThumbnail Kind = "thumbnails"
)

// Upload 一次上传；Path 为本地临时文件（用于时长探测，可为空）
type Upload struct {
	Kind        Kind
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Path        string
}

// Ref 持久引用：Key 用于释放，URL 对外展示
type Ref struct {
	Key string
	URL string
}

// Store 媒体存储
type Store interface {
	Upload(ctx context.Context, u Upload) (Ref, error)
	Delete(ctx context.Context, key string) error
}

// objectKey kind/uuid.ext
func objectKey(u Upload) string {
	ext := strings.ToLower(path.Ext(u.Filename))
	return string(u.Kind) + "/" + uuid.New().String() + ext
}

func publicURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + key
}
