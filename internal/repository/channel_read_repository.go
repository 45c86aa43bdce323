package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
)

// ChannelReadRepository 频道维度的投影（主页、订阅关系、统计）
type ChannelReadRepository interface {
	Profile(ctx context.Context, username string, viewer personalize.Viewer) (*model.ChannelProfile, error)
	Subscribers(ctx context.Context, channelID string, viewer personalize.Viewer, p query.Page) (*query.Result[model.SubscriberCard], error)
	SubscribedChannels(ctx context.Context, subscriberID string, p query.Page) (*query.Result[model.SubscribedChannel], error)
	// Stats 单条语句；用户不存在时返回全 0
	Stats(ctx context.Context, ownerID string) (model.ChannelStats, error)
	About(ctx context.Context, ownerID string) (*model.ChannelAbout, error)
}

type channelReadRepository struct {
	db       *gorm.DB
	resolver personalize.Resolver
}

func NewChannelReadRepository(db *gorm.DB, resolver personalize.Resolver) ChannelReadRepository {
	return &channelReadRepository{db: db, resolver: resolver}
}

// channelLikes 频道所有视频收到的点赞（两跳：users → videos → likes）
func channelLikes(userColumn string) query.Subquery {
	return query.Subquery{
		Table: "likes",
		Alias: "cl",
		Where: "cl.target_kind = ? AND cl.target_id IN (SELECT cv.id FROM videos AS cv WHERE cv.owner_id = " + userColumn + ")",
		Vars:  []any{string(model.TargetVideo)},
	}
}

func ownedVideos(userColumn string) query.Subquery {
	return query.Subquery{Table: "videos", Alias: "vv", Where: "vv.owner_id = " + userColumn}
}

func (r *channelReadRepository) Profile(ctx context.Context, username string, viewer personalize.Viewer) (*model.ChannelProfile, error) {
	q := query.From(r.db, "users", "u").
		Select("id", "username", "full_name", "email", "avatar", "cover_photo").
		Count("subscribers_count", subscribersOf("u.id")).
		Count("channels_subscribed_to_count", query.Subquery{Table: "subscriptions", Alias: "st", Where: "st.subscriber_id = u.id"}).
		Derive(r.resolver.IsSubscribed(viewer, "u.id", "is_subscribed")).
		Where("u.username = ?", username)

	var rows []model.ChannelProfile
	if err := q.Build(ctx).Limit(1).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "channel profile")
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrNotFound, "channel profile")
	}
	return &rows[0], nil
}

type userCardRow struct {
	ID           string
	Username     string
	FullName     string
	Avatar       string
	IsSubscribed bool
}

func (r userCardRow) summary() model.OwnerSummary {
	return model.OwnerSummary{ID: r.ID, Username: r.Username, FullName: r.FullName, Avatar: r.Avatar}
}

// Subscribers 以订阅边为基础关系；isSubscribed 表示 viewer 是否订阅了该订阅者
func (r *channelReadRepository) Subscribers(ctx context.Context, channelID string, viewer personalize.Viewer, p query.Page) (*query.Result[model.SubscriberCard], error) {
	q := query.From(r.db, "subscriptions", "s").
		Where("s.channel_id = ?", channelID).
		InnerJoin(query.Relation{Table: "users", Alias: "u", On: "u.id = s.subscriber_id"}).
		Derive(
			query.Col("u.id", "id"),
			query.Col("u.username", "username"),
			query.Col("u.full_name", "full_name"),
			query.Col("u.avatar", "avatar"),
			r.resolver.IsSubscribed(viewer, "u.id", "is_subscribed"),
		)

	rows, err := query.Paginate[userCardRow](ctx, q, p)
	if err != nil {
		return nil, errors.Wrap(err, "list subscribers")
	}
	return query.Map(rows, func(row userCardRow) model.SubscriberCard {
		return model.SubscriberCard{OwnerSummary: row.summary(), IsSubscribed: row.IsSubscribed}
	}), nil
}

// subscribedRow 最新视频列可能整体为 NULL
type subscribedRow struct {
	ID       string
	Username string
	FullName string
	Avatar   string

	LatestID           *string
	LatestTitle        *string
	LatestDescription  *string
	LatestVideoURL     *string
	LatestThumbnailURL *string
	LatestDuration     *float64
	LatestViews        *int64
	LatestCreatedAt    *time.Time
}

func (r subscribedRow) channel() model.SubscribedChannel {
	out := model.SubscribedChannel{
		OwnerSummary: model.OwnerSummary{ID: r.ID, Username: r.Username, FullName: r.FullName, Avatar: r.Avatar},
	}
	if r.LatestID == nil {
		return out
	}
	v := &model.VideoSummary{ID: *r.LatestID, IsPublished: true}
	if r.LatestTitle != nil {
		v.Title = *r.LatestTitle
	}
	if r.LatestDescription != nil {
		v.Description = *r.LatestDescription
	}
	if r.LatestVideoURL != nil {
		v.VideoURL = *r.LatestVideoURL
	}
	if r.LatestThumbnailURL != nil {
		v.ThumbnailURL = *r.LatestThumbnailURL
	}
	if r.LatestDuration != nil {
		v.Duration = *r.LatestDuration
	}
	if r.LatestViews != nil {
		v.Views = *r.LatestViews
	}
	if r.LatestCreatedAt != nil {
		v.CreatedAt = *r.LatestCreatedAt
	}
	out.LatestVideo = v
	return out
}

// SubscribedChannels 订阅的频道，各自带最新发布的一条视频（无则为 null）
func (r *channelReadRepository) SubscribedChannels(ctx context.Context, subscriberID string, p query.Page) (*query.Result[model.SubscribedChannel], error) {
	q := query.From(r.db, "subscriptions", "s").
		Where("s.subscriber_id = ?", subscriberID).
		InnerJoin(query.Relation{Table: "users", Alias: "u", On: "u.id = s.channel_id"}).
		Derive(
			query.Col("u.id", "id"),
			query.Col("u.username", "username"),
			query.Col("u.full_name", "full_name"),
			query.Col("u.avatar", "avatar"),
		).
		Latest(query.PickOne{
			Related: query.Subquery{Table: "videos", Alias: "pv", Where: "pv.owner_id = u.id AND pv.is_published = ?", Vars: []any{true}},
			OrderBy: "pv.created_at DESC, pv.id DESC",
			Alias:   "lv",
			Columns: []query.Column{
				query.Col("lv.id", "latest_id"),
				query.Col("lv.title", "latest_title"),
				query.Col("lv.description", "latest_description"),
				query.Col("lv.video_url", "latest_video_url"),
				query.Col("lv.thumbnail_url", "latest_thumbnail_url"),
				query.Col("lv.duration", "latest_duration"),
				query.Col("lv.views", "latest_views"),
				query.Col("lv.created_at", "latest_created_at"),
			},
		}).
		OrderBy("(lv.created_at IS NULL)", false).
		OrderBy("lv.created_at", true)

	rows, err := query.Paginate[subscribedRow](ctx, q, p)
	if err != nil {
		return nil, errors.Wrap(err, "subscribed channels")
	}
	return query.Map(rows, subscribedRow.channel), nil
}

func (r *channelReadRepository) Stats(ctx context.Context, ownerID string) (model.ChannelStats, error) {
	q := query.From(r.db, "users", "u").
		Count("total_subscribers", subscribersOf("u.id")).
		Sum("total_views", "vv.views", ownedVideos("u.id")).
		Count("total_likes", channelLikes("u.id")).
		Count("total_videos", ownedVideos("u.id")).
		Where("u.id = ?", ownerID)

	var rows []model.ChannelStats
	if err := q.Build(ctx).Limit(1).Scan(&rows).Error; err != nil {
		return model.ChannelStats{}, errors.Wrap(err, "channel stats")
	}
	if len(rows) == 0 {
		return model.ChannelStats{}, nil
	}
	return rows[0], nil
}

func (r *channelReadRepository) About(ctx context.Context, ownerID string) (*model.ChannelAbout, error) {
	q := query.From(r.db, "users", "u").
		Select("id", "username", "full_name", "email", "created_at").
		Count("total_videos", ownedVideos("u.id")).
		Count("total_tweets", query.Subquery{Table: "tweets", Alias: "tt", Where: "tt.owner_id = u.id"}).
		Count("total_likes", channelLikes("u.id")).
		Sum("total_views", "vv.views", ownedVideos("u.id")).
		Where("u.id = ?", ownerID)

	var rows []model.ChannelAbout
	if err := q.Build(ctx).Limit(1).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "channel about")
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrNotFound, "channel about")
	}
	return &rows[0], nil
}
