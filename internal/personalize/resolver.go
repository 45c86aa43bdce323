package personalize

import (
	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/query"
)

// Resolver 生成个性化列。所有判断都作为相关子查询嵌入同一条语句，避免逐行回查。
type Resolver struct{}

func NewResolver() Resolver { return Resolver{} }

// guestFalse returns a literal false column; no edge table is referenced and
// no viewer id is bound.
func guestFalse(as string) query.Column {
	return query.Col("FALSE", as)
}

// IsLiked viewer 是否点赞了 targetColumn 指向的目标
func (Resolver) IsLiked(v Viewer, kind model.TargetKind, targetColumn, as string) query.Column {
	id, ok := v.ID()
	if !ok {
		return guestFalse(as)
	}
	return query.Col(
		"EXISTS (SELECT 1 FROM likes AS pl WHERE pl.target_kind = ? AND pl.target_id = "+targetColumn+" AND pl.liked_by = ?)",
		as, string(kind), id,
	)
}

// IsSubscribed viewer 是否订阅了 channelColumn 指向的频道
func (Resolver) IsSubscribed(v Viewer, channelColumn, as string) query.Column {
	id, ok := v.ID()
	if !ok {
		return guestFalse(as)
	}
	return query.Col(
		"EXISTS (SELECT 1 FROM subscriptions AS ps WHERE ps.channel_id = "+channelColumn+" AND ps.subscriber_id = ?)",
		as, id,
	)
}
