package repository

import (
	"time"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
)

// 共享的连接核心：各命名投影在此基础上裁剪字段

var videoBaseColumns = []string{
	"id", "owner_id", "title", "description", "video_url", "thumbnail_url",
	"duration", "views", "is_published", "created_at",
}

// likesOf 对 alias.id 的点赞计数子查询
func likesOf(kind model.TargetKind, idColumn string) query.Subquery {
	return query.Subquery{
		Table: "likes",
		Alias: "lc",
		Where: "lc.target_kind = ? AND lc.target_id = " + idColumn,
		Vars:  []any{string(kind)},
	}
}

// subscribersOf 频道订阅者计数子查询
func subscribersOf(channelColumn string) query.Subquery {
	return query.Subquery{Table: "subscriptions", Alias: "sc", Where: "sc.channel_id = " + channelColumn}
}

// ownerCard 以 prefix_ 前缀左连接用户卡片字段
func ownerCard(alias, on, prefix string) query.Relation {
	return query.Relation{
		Table: "users",
		Alias: alias,
		On:    on,
		Columns: []query.Column{
			query.Col("COALESCE("+alias+".username, '')", prefix+"_username"),
			query.Col("COALESCE("+alias+".full_name, '')", prefix+"_full_name"),
			query.Col("COALESCE("+alias+".avatar, '')", prefix+"_avatar"),
		},
	}
}

// videoColumns 以 alias 上的视频原始列作为输出列
func videoColumns(alias string) []query.Column {
	cols := make([]query.Column, len(videoBaseColumns))
	for i, c := range videoBaseColumns {
		cols[i] = query.Col(alias+"."+c, c)
	}
	return cols
}

// videoCore 视频 + 点赞数 + 作者卡片；a 为视频所在别名（不一定是基础关系）
func videoCore(q *query.Query, a string) *query.Query {
	return q.Derive(videoColumns(a)...).
		Count("likes_count", likesOf(model.TargetVideo, a+".id")).
		LeftJoin(ownerCard("o", "o.id = "+a+".owner_id", "owner"))
}

// personalizeVideo 为视频行注入 is_liked；owner 的 is_subscribed 独立计算
func personalizeVideo(q *query.Query, a string, r personalize.Resolver, v personalize.Viewer, withOwnerSubscription bool) *query.Query {
	q.Derive(r.IsLiked(v, model.TargetVideo, a+".id", "is_liked"))
	if withOwnerSubscription {
		q.Count("owner_subscribers_count", subscribersOf(a+".owner_id")).
			Derive(r.IsSubscribed(v, a+".owner_id", "owner_is_subscribed"))
	}
	return q
}

// videoRow 扫描目标
type videoRow struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
	LikesCount   int64
	IsLiked      bool

	OwnerUsername         string
	OwnerFullName         string
	OwnerAvatar           string
	OwnerSubscribersCount int64
	OwnerIsSubscribed     bool

	LikedAt   time.Time
	WatchedAt time.Time
}

func (r videoRow) summary() model.VideoSummary {
	return model.VideoSummary{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		VideoURL:     r.VideoURL,
		ThumbnailURL: r.ThumbnailURL,
		Duration:     r.Duration,
		Views:        r.Views,
		IsPublished:  r.IsPublished,
		CreatedAt:    r.CreatedAt,
	}
}

func (r videoRow) owner() model.OwnerSummary {
	return model.OwnerSummary{ID: r.OwnerID, Username: r.OwnerUsername, FullName: r.OwnerFullName, Avatar: r.OwnerAvatar}
}

func (r videoRow) card() model.VideoCard {
	return model.VideoCard{VideoSummary: r.summary(), LikesCount: r.LikesCount, IsLiked: r.IsLiked, Owner: r.owner()}
}

func (r videoRow) detail() model.VideoDetail {
	return model.VideoDetail{
		VideoSummary: r.summary(),
		LikesCount:   r.LikesCount,
		IsLiked:      r.IsLiked,
		Owner: model.ChannelOwner{
			OwnerSummary:     r.owner(),
			SubscribersCount: r.OwnerSubscribersCount,
			IsSubscribed:     r.OwnerIsSubscribed,
		},
	}
}
