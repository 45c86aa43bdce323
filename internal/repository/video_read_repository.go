package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
)

// VideoSortKeys 请求中的排序键 → 可排序列（含派生列）
var VideoSortKeys = query.SortKeys{
	"createdAt":  "v.created_at",
	"views":      "v.views",
	"title":      "v.title",
	"duration":   "v.duration",
	"likesCount": "likes_count",
}

// VideoFilter 公开视频列表过滤条件
type VideoFilter struct {
	OwnerID string
	Search  string
	SortBy  string
	Desc    bool
}

// VideoReadRepository 视频读取投影
type VideoReadRepository interface {
	List(ctx context.Context, f VideoFilter, viewer personalize.Viewer, p query.Page) (*query.Result[model.VideoCard], error)
	// ForViewer 带个性化字段；unpublished 仅作者可见
	ForViewer(ctx context.Context, id string, viewer personalize.Viewer) (*model.VideoDetail, error)
	// ForGuest 游客投影，只返回已发布视频
	ForGuest(ctx context.Context, id string) (*model.VideoDetail, error)
	Next(ctx context.Context, excludeID string, n int) ([]model.VideoCard, error)
	ByOwner(ctx context.Context, ownerID string, p query.Page) (*query.Result[model.ChannelVideo], error)
	LikedBy(ctx context.Context, userID string, p query.Page) (*query.Result[model.LikedVideo], error)
	History(ctx context.Context, userID string, p query.Page) (*query.Result[model.HistoryEntry], error)
}

type videoReadRepository struct {
	db       *gorm.DB
	resolver personalize.Resolver
}

func NewVideoReadRepository(db *gorm.DB, resolver personalize.Resolver) VideoReadRepository {
	return &videoReadRepository{db: db, resolver: resolver}
}

func (r *videoReadRepository) listQuery(f VideoFilter, viewer personalize.Viewer) *query.Query {
	q := videoCore(query.From(r.db, "videos", "v"), "v").Where("v.is_published = ?", true)
	if f.OwnerID != "" {
		q.Where("v.owner_id = ?", f.OwnerID)
	}
	q.Search(f.Search, "v.title", "v.description")
	personalizeVideo(q, "v", r.resolver, viewer, false)
	return q.OrderBy(VideoSortKeys.ResolveOr(f.SortBy, "v.created_at"), f.Desc)
}

func (r *videoReadRepository) List(ctx context.Context, f VideoFilter, viewer personalize.Viewer, p query.Page) (*query.Result[model.VideoCard], error) {
	rows, err := query.Paginate[videoRow](ctx, r.listQuery(f, viewer), p)
	if err != nil {
		return nil, errors.Wrap(err, "list videos")
	}
	return query.Map(rows, videoRow.card), nil
}

// detailQuery 详情共享核心；guest 与 viewer 两个投影只在个性化与可见性上不同
func (r *videoReadRepository) detailQuery(id string, viewer personalize.Viewer, publishedOnly bool) *query.Query {
	q := videoCore(query.From(r.db, "videos", "v"), "v").Where("v.id = ?", id)
	if publishedOnly {
		q.Where("v.is_published = ?", true)
	} else if uid, ok := viewer.ID(); ok {
		q.Where("(v.is_published = ? OR v.owner_id = ?)", true, uid)
	}
	return personalizeVideo(q, "v", r.resolver, viewer, true)
}

func (r *videoReadRepository) detail(ctx context.Context, id string, viewer personalize.Viewer, publishedOnly bool) (*model.VideoDetail, error) {
	var rows []videoRow
	if err := r.detailQuery(id, viewer, publishedOnly).Build(ctx).Limit(1).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "video detail")
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrNotFound, "video detail")
	}
	d := rows[0].detail()
	return &d, nil
}

func (r *videoReadRepository) ForViewer(ctx context.Context, id string, viewer personalize.Viewer) (*model.VideoDetail, error) {
	return r.detail(ctx, id, viewer, viewer.IsGuest())
}

func (r *videoReadRepository) ForGuest(ctx context.Context, id string) (*model.VideoDetail, error) {
	return r.detail(ctx, id, personalize.Guest(), true)
}

func (r *videoReadRepository) Next(ctx context.Context, excludeID string, n int) ([]model.VideoCard, error) {
	q := videoCore(query.From(r.db, "videos", "v"), "v").
		Where("v.id <> ? AND v.is_published = ?", excludeID, true).
		OrderBy("RANDOM()", false)
	personalizeVideo(q, "v", r.resolver, personalize.Guest(), false)

	var rows []videoRow
	if err := q.Build(ctx).Limit(n).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "next videos")
	}
	out := make([]model.VideoCard, len(rows))
	for i, row := range rows {
		out[i] = row.card()
	}
	return out, nil
}

func (r *videoReadRepository) ByOwner(ctx context.Context, ownerID string, p query.Page) (*query.Result[model.ChannelVideo], error) {
	q := query.From(r.db, "videos", "v").
		Derive(videoColumns("v")...).
		Count("likes_count", likesOf(model.TargetVideo, "v.id")).
		Where("v.owner_id = ?", ownerID)

	rows, err := query.Paginate[videoRow](ctx, q, p)
	if err != nil {
		return nil, errors.Wrap(err, "channel videos")
	}
	return query.Map(rows, func(row videoRow) model.ChannelVideo {
		return model.ChannelVideo{VideoSummary: row.summary(), LikesCount: row.LikesCount}
	}), nil
}

// LikedBy 以点赞边为基础关系，内连接到已发布视频；排序按视频发布时间倒序
func (r *videoReadRepository) LikedBy(ctx context.Context, userID string, p query.Page) (*query.Result[model.LikedVideo], error) {
	q := query.From(r.db, "likes", "l").
		Where("l.target_kind = ? AND l.liked_by = ?", string(model.TargetVideo), userID).
		InnerJoin(query.Relation{Table: "videos", Alias: "v", On: "v.id = l.target_id AND v.is_published = ?", Vars: []any{true}}).
		Derive(query.Col("l.created_at", "liked_at"))
	videoCore(q, "v").OrderBy("v.created_at", true)

	rows, err := query.Paginate[videoRow](ctx, q, p)
	if err != nil {
		return nil, errors.Wrap(err, "liked videos")
	}
	return query.Map(rows, func(row videoRow) model.LikedVideo {
		return model.LikedVideo{VideoSummary: row.summary(), LikedAt: row.LikedAt, Owner: row.owner()}
	}), nil
}

// History 观看记录，最近观看在前；他人未发布的视频不出现
func (r *videoReadRepository) History(ctx context.Context, userID string, p query.Page) (*query.Result[model.HistoryEntry], error) {
	q := query.From(r.db, "watch_history", "h").
		Where("h.user_id = ?", userID).
		InnerJoin(query.Relation{Table: "videos", Alias: "v", On: "v.id = h.video_id AND (v.is_published = ? OR v.owner_id = h.user_id)", Vars: []any{true}}).
		Derive(query.Col("h.created_at", "watched_at"))
	videoCore(q, "v")

	rows, err := query.Paginate[videoRow](ctx, q, p)
	if err != nil {
		return nil, errors.Wrap(err, "watch history")
	}
	return query.Map(rows, func(row videoRow) model.HistoryEntry {
		return model.HistoryEntry{VideoSummary: row.summary(), WatchedAt: row.WatchedAt, Owner: row.owner()}
	}), nil
}
