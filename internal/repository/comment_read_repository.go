package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
)

// CommentReadRepository 评论列表投影
type CommentReadRepository interface {
	ListByVideo(ctx context.Context, videoID string, viewer personalize.Viewer, p query.Page) (*query.Result[model.CommentView], error)
}

type commentReadRepository struct {
	db       *gorm.DB
	resolver personalize.Resolver
}

func NewCommentReadRepository(db *gorm.DB, resolver personalize.Resolver) CommentReadRepository {
	return &commentReadRepository{db: db, resolver: resolver}
}

type commentRow struct {
	ID            string
	OwnerID       string
	Content       string
	CreatedAt     time.Time
	LikesCount    int64
	IsLiked       bool
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
}

func (r commentRow) view() model.CommentView {
	return model.CommentView{
		ID:         r.ID,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
		LikesCount: r.LikesCount,
		IsLiked:    r.IsLiked,
		Owner:      model.OwnerSummary{ID: r.OwnerID, Username: r.OwnerUsername, FullName: r.OwnerFullName, Avatar: r.OwnerAvatar},
	}
}

func (r *commentReadRepository) ListByVideo(ctx context.Context, videoID string, viewer personalize.Viewer, p query.Page) (*query.Result[model.CommentView], error) {
	q := query.From(r.db, "comments", "c").
		Select("id", "owner_id", "content", "created_at").
		Count("likes_count", likesOf(model.TargetComment, "c.id")).
		Derive(r.resolver.IsLiked(viewer, model.TargetComment, "c.id", "is_liked")).
		LeftJoin(ownerCard("o", "o.id = c.owner_id", "owner")).
		Where("c.video_id = ?", videoID)

	rows, err := query.Paginate[commentRow](ctx, q, p)
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	return query.Map(rows, commentRow.view), nil
}
