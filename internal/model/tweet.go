package model

import "time"

// Tweet 频道短动态（仅作为点赞目标与频道统计）
type Tweet struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerID   string    `gorm:"type:varchar(36);index:idx_tweet_owner;not null" json:"owner"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tweet) TableName() string { return "tweets" }
