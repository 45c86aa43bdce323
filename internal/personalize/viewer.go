// Package personalize resolves viewer-relative fields (isLiked, isSubscribed)
// as columns of the composed statement. A guest viewer resolves every such
// field to a constant false without consulting any edge table.
package personalize

import "context"

// Viewer 请求方身份；零值即游客
type Viewer struct {
	id string
}

// Guest 未登录访客
func Guest() Viewer { return Viewer{} }

// As 已认证用户
func As(userID string) Viewer { return Viewer{id: userID} }

// ID 返回用户 ID；游客返回 false
func (v Viewer) ID() (string, bool) { return v.id, v.id != "" }

func (v Viewer) IsGuest() bool { return v.id == "" }

// Is 判断是否为指定用户
func (v Viewer) Is(userID string) bool { return v.id != "" && v.id == userID }

type viewerKey struct{}

// WithViewer 将身份写入 context
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// FromContext 读取身份；缺失时为游客
func FromContext(ctx context.Context) Viewer {
	if v, ok := ctx.Value(viewerKey{}).(Viewer); ok {
		return v
	}
	return Guest()
}
