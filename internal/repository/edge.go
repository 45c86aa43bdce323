package repository

import "context"

// EdgeStore 关系边的最小读写集合，切换逻辑只依赖它
type EdgeStore interface {
	// FindEdge 查找 (actor, target) 边；不存在时 found=false
	FindEdge(ctx context.Context, targetID, actorID string) (id string, found bool, err error)
	// CreateEdge 幂等创建：唯一键冲突时静默忽略
	CreateEdge(ctx context.Context, targetID, actorID string) error
	DeleteEdge(ctx context.Context, id string) error
}
