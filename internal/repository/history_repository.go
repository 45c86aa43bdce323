package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/vidhub/internal/model"
)

// HistoryRepository 观看记录（集合语义）
type HistoryRepository interface {
	Add(ctx context.Context, userID, videoID string) error
	Clear(ctx context.Context, userID string) error
	DeleteByVideo(ctx context.Context, videoID string) (int64, error)
	Count(ctx context.Context, userID string) (int64, error)
}

type historyRepository struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) HistoryRepository { return &historyRepository{db: db} }

func (r *historyRepository) Add(ctx context.Context, userID, videoID string) error {
	h := &model.WatchHistory{ID: uuid.New().String(), UserID: userID, VideoID: videoID}
	// 已存在则忽略（去重）
	return errors.Wrap(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(h).Error, "add history")
}

func (r *historyRepository) Clear(ctx context.Context, userID string) error {
	return errors.Wrap(r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.WatchHistory{}).Error, "clear history")
}

func (r *historyRepository) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.WatchHistory{})
	return res.RowsAffected, errors.Wrap(res.Error, "delete history of video")
}

func (r *historyRepository) Count(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.WatchHistory{}).Where("user_id = ?", userID).Count(&cnt).Error
	return cnt, errors.Wrap(err, "count history")
}
