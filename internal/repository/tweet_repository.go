package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidhub/internal/model"
)

type TweetRepository interface {
	Create(ctx context.Context, t *model.Tweet) error
	Exists(ctx context.Context, id string) (bool, error)
}

type tweetRepository struct{ db *gorm.DB }

func NewTweetRepository(db *gorm.DB) TweetRepository { return &tweetRepository{db: db} }

func (r *tweetRepository) Create(ctx context.Context, t *model.Tweet) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(t).Error, "create tweet")
}

func (r *tweetRepository) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, errors.Wrap(err, "count tweet")
	}
	return cnt > 0, nil
}
