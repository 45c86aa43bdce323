package model

import "time"

// 以下为读取投影（响应形状），不参与迁移

// OwnerSummary 列表卡片中的作者信息
type OwnerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// ChannelOwner 视频详情中的作者信息，带订阅数与个性化订阅状态
type ChannelOwner struct {
	OwnerSummary
	SubscribersCount int64 `json:"subscribersCount"`
	IsSubscribed     bool  `json:"isSubscribed"`
}

// VideoSummary 视频基础字段
type VideoSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VideoCard 列表项
type VideoCard struct {
	VideoSummary
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      OwnerSummary `json:"owner"`
}

// VideoDetail 单个视频
type VideoDetail struct {
	VideoSummary
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      ChannelOwner `json:"owner"`
}

// ChannelVideo 频道后台视频列表项
type ChannelVideo struct {
	VideoSummary
	LikesCount int64 `json:"likesCount"`
}

// CommentView 评论列表项
type CommentView struct {
	ID         string       `json:"id"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      OwnerSummary `json:"owner"`
}

// ChannelProfile 频道主页
type ChannelProfile struct {
	ID                        string `json:"id"`
	Username                  string `json:"username"`
	FullName                  string `json:"fullName"`
	Email                     string `json:"email"`
	Avatar                    string `json:"avatar"`
	CoverPhoto                string `json:"coverPhoto"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

// SubscriberCard 频道订阅者
type SubscriberCard struct {
	OwnerSummary
	IsSubscribed bool `json:"isSubscribed"`
}

// SubscribedChannel 订阅的频道及其最新发布的视频
type SubscribedChannel struct {
	OwnerSummary
	LatestVideo *VideoSummary `json:"latestVideo"`
}

// LikedVideo 点赞过的视频
type LikedVideo struct {
	VideoSummary
	LikedAt time.Time    `json:"likedAt"`
	Owner   OwnerSummary `json:"owner"`
}

// HistoryEntry 观看记录项
type HistoryEntry struct {
	VideoSummary
	WatchedAt time.Time    `json:"watchedAt"`
	Owner     OwnerSummary `json:"owner"`
}

// ChannelStats 频道统计，四项缺省为 0
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalVideos      int64 `json:"totalVideos"`
}

// ChannelAbout 频道简介
type ChannelAbout struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	TotalVideos int64     `json:"totalVideos"`
	TotalTweets int64     `json:"totalTweets"`
	TotalLikes  int64     `json:"totalLikes"`
	TotalViews  int64     `json:"totalViews"`
}
