package model

import (
	"fmt"
	"time"
)

// TargetKind 点赞目标类型
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet:
		return true
	}
	return false
}

// Target 点赞目标（带类型标签，避免三个可空外键）
type Target struct {
	Kind TargetKind
	ID   string
}

func (t Target) String() string { return fmt.Sprintf("%s:%s", t.Kind, t.ID) }

// Like 点赞边
type Like struct {
	ID         string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TargetKind TargetKind `gorm:"type:varchar(16);not null;index:idx_like_target;index:idx_like_edge,unique" json:"targetKind"`
	TargetID   string     `gorm:"type:varchar(36);not null;index:idx_like_target;index:idx_like_edge,unique" json:"targetId"`
	LikedBy    string     `gorm:"type:varchar(36);not null;index:idx_like_edge,unique;index:idx_like_user" json:"likedBy"`
	// idx_like_edge = (target_kind, target_id, liked_by)
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string { return "likes" }

func (l Like) Target() Target { return Target{Kind: l.TargetKind, ID: l.TargetID} }
