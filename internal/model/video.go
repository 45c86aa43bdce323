package model

import "time"

// Video 视频；views 只增不减
type Video struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerID      string    `gorm:"type:varchar(36);index:idx_video_owner;not null" json:"owner"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	VideoURL     string    `gorm:"type:varchar(512)" json:"videoUrl"`
	VideoRef     string    `gorm:"type:varchar(512)" json:"-"`
	ThumbnailURL string    `gorm:"type:varchar(512)" json:"thumbnailUrl"`
	ThumbnailRef string    `gorm:"type:varchar(512)" json:"-"`
	Duration     float64   `json:"duration"`
	Views        int64     `gorm:"not null;default:0" json:"views"`
	IsPublished  bool      `gorm:"not null;default:true;index:idx_video_published_created" json:"isPublished"`
	CreatedAt    time.Time `gorm:"index:idx_video_published_created" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Video) TableName() string { return "videos" }
