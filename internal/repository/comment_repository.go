package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidhub/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	DeleteByVideo(ctx context.Context, videoID string) (int64, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(c).Error, "create comment")
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, errors.Wrap(err, "get comment")
	}
	return &c, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) error {
	res := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update comment")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(ErrNotFound, "update comment")
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return errors.Wrap(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{}).Error, "delete comment")
}

func (r *commentRepository) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.Comment{})
	return res.RowsAffected, errors.Wrap(res.Error, "delete comments of video")
}

func (r *commentRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID).Count(&cnt).Error
	return cnt, errors.Wrap(err, "count comments")
}

func (r *commentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, errors.Wrap(err, "count comment")
	}
	return cnt > 0, nil
}
