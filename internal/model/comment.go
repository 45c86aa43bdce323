package model

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	VideoID   string    `gorm:"type:varchar(36);index:idx_comment_video;not null" json:"video"`
	OwnerID   string    `gorm:"type:varchar(36);index;not null" json:"owner"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string { return "comments" }
