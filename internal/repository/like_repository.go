package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/vidhub/internal/model"
)

type LikeRepository interface {
	Find(ctx context.Context, target model.Target, userID string) (*model.Like, error)
	Create(ctx context.Context, target model.Target, userID string) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByTarget(ctx context.Context, target model.Target) (int64, error)
	CountByTarget(ctx context.Context, target model.Target) (int64, error)
	// DeleteOnCommentsOfVideo 删除某视频下所有评论收到的点赞
	DeleteOnCommentsOfVideo(ctx context.Context, videoID string) (int64, error)
	// Edges 返回某一目标类型上的边视图
	Edges(kind model.TargetKind) EdgeStore
}

type likeRepository struct{ db *gorm.DB }

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Find(ctx context.Context, target model.Target, userID string) (*model.Like, error) {
	var likes []model.Like
	err := r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ? AND liked_by = ?", string(target.Kind), target.ID, userID).
		Limit(1).Find(&likes).Error
	if err != nil {
		return nil, errors.Wrap(err, "find like")
	}
	if len(likes) == 0 {
		return nil, nil
	}
	return &likes[0], nil
}

func (r *likeRepository) Create(ctx context.Context, target model.Target, userID string) error {
	l := &model.Like{ID: uuid.New().String(), TargetKind: target.Kind, TargetID: target.ID, LikedBy: userID}
	// 幂等：并发重复点赞命中 idx_like_edge 时不报错
	return errors.Wrap(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error, "create like")
}

func (r *likeRepository) DeleteByID(ctx context.Context, id string) error {
	return errors.Wrap(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Like{}).Error, "delete like")
}

func (r *likeRepository) DeleteByTarget(ctx context.Context, target model.Target) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", string(target.Kind), target.ID).
		Delete(&model.Like{})
	return res.RowsAffected, errors.Wrap(res.Error, "delete likes of target")
}

func (r *likeRepository) DeleteOnCommentsOfVideo(ctx context.Context, videoID string) (int64, error) {
	comments := r.db.Model(&model.Comment{}).Select("id").Where("video_id = ?", videoID)
	res := r.db.WithContext(ctx).
		Where("target_kind = ? AND target_id IN (?)", string(model.TargetComment), comments).
		Delete(&model.Like{})
	return res.RowsAffected, errors.Wrap(res.Error, "delete comment likes of video")
}

func (r *likeRepository) CountByTarget(ctx context.Context, target model.Target) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_kind = ? AND target_id = ?", string(target.Kind), target.ID).
		Count(&cnt).Error
	return cnt, errors.Wrap(err, "count likes")
}

func (r *likeRepository) Edges(kind model.TargetKind) EdgeStore {
	return likeEdges{repo: r, kind: kind}
}

type likeEdges struct {
	repo *likeRepository
	kind model.TargetKind
}

func (e likeEdges) FindEdge(ctx context.Context, targetID, actorID string) (string, bool, error) {
	l, err := e.repo.Find(ctx, model.Target{Kind: e.kind, ID: targetID}, actorID)
	if err != nil || l == nil {
		return "", false, err
	}
	return l.ID, true, nil
}

func (e likeEdges) CreateEdge(ctx context.Context, targetID, actorID string) error {
	return e.repo.Create(ctx, model.Target{Kind: e.kind, ID: targetID}, actorID)
}

func (e likeEdges) DeleteEdge(ctx context.Context, id string) error {
	return e.repo.DeleteByID(ctx, id)
}
