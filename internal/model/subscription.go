package model

import (
	"time"
)

// Subscription 订阅关系（subscriber 订阅 channel）
type Subscription struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SubscriberID string `gorm:"type:varchar(36);index:idx_sub_subscriber;index:idx_sub_pair,unique;not null" json:"subscriber"`
	ChannelID    string `gorm:"type:varchar(36);not null;index:idx_sub_channel;index:idx_sub_pair,unique" json:"channel"`
	// 复合唯一键，避免重复订阅
	// idx_sub_pair = (subscriber_id, channel_id)
	CreatedAt time.Time `json:"createdAt"`
}

func (Subscription) TableName() string { return "subscriptions" }
