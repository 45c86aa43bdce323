package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/vidhub/internal/model"
)

// SubscriptionRepository 订阅边；自身即 EdgeStore（target = channel）
type SubscriptionRepository interface {
	EdgeStore
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
	CountByChannel(ctx context.Context, channelID string) (int64, error)
}

type subscriptionRepository struct{ db *gorm.DB }

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) FindEdge(ctx context.Context, channelID, subscriberID string) (string, bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Limit(1).Pluck("id", &ids).Error
	if err != nil {
		return "", false, errors.Wrap(err, "find subscription")
	}
	if len(ids) == 0 {
		return "", false, nil
	}
	return ids[0], true, nil
}

func (r *subscriptionRepository) CreateEdge(ctx context.Context, channelID, subscriberID string) error {
	s := &model.Subscription{ID: uuid.New().String(), SubscriberID: subscriberID, ChannelID: channelID}
	// 幂等：重复订阅不报错
	return errors.Wrap(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(s).Error, "create subscription")
}

func (r *subscriptionRepository) DeleteEdge(ctx context.Context, id string) error {
	return errors.Wrap(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Subscription{}).Error, "delete subscription")
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	_, found, err := r.FindEdge(ctx, channelID, subscriberID)
	return found, err
}

func (r *subscriptionRepository) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&cnt).Error
	return cnt, errors.Wrap(err, "count subscribers")
}
