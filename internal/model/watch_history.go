package model

import "time"

// WatchHistory 观看记录，集合语义：同一 (user, video) 只保留一条
type WatchHistory struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"type:varchar(36);index:idx_history_user;uniqueIndex:ux_history_user_video"`
	VideoID   string    `gorm:"type:varchar(36);index:idx_history_video;uniqueIndex:ux_history_user_video"`
	CreatedAt time.Time `gorm:"index"`
}

func (WatchHistory) TableName() string { return "watch_history" }
