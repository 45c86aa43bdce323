package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/vidhub/internal/media"
	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/pkg/apperr"
	"github.com/d60-Lab/vidhub/pkg/logger"
)

const nextVideosLimit = 10

// ListOptions 公开视频列表参数；SortBy 经白名单映射，未知键按创建时间
type ListOptions struct {
	Page     query.Page
	Search   string
	SortBy   string
	SortType string // asc | desc
	OwnerID  string
}

// PublishInput 发布参数
type PublishInput struct {
	Title       string
	Description string
	Video       *media.Upload
	Thumbnail   *media.Upload
}

// UpdateInput nil 字段保持不变
type UpdateInput struct {
	Title       *string
	Description *string
	Thumbnail   *media.Upload
}

// DeleteResult 主记录删除成功后的级联清理结果
type DeleteResult struct {
	Degraded bool     `json:"degraded"`
	Failures []string `json:"failures"`
}

// VideoService 视频服务
type VideoService interface {
	List(ctx context.Context, opts ListOptions, viewer personalize.Viewer) (*query.Result[model.VideoCard], error)
	GetForViewer(ctx context.Context, id string, viewer personalize.Viewer) (*model.VideoDetail, error)
	GetForGuest(ctx context.Context, id string) (*model.VideoDetail, error)
	Next(ctx context.Context, id string) ([]model.VideoCard, error)
	Publish(ctx context.Context, ownerID string, in PublishInput) (*model.Video, error)
	Update(ctx context.Context, id, actorID string, in UpdateInput) (*model.Video, error)
	TogglePublish(ctx context.Context, id, actorID string) (bool, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id, actorID string) (DeleteResult, error)
}

type videoService struct {
	videos   repository.VideoRepository
	reads    repository.VideoReadRepository
	likes    repository.LikeRepository
	comments repository.CommentRepository
	history  repository.HistoryRepository
	store    media.Store
	prober   media.Prober
	inv      Invalidator
}

func NewVideoService(
	videos repository.VideoRepository,
	reads repository.VideoReadRepository,
	likes repository.LikeRepository,
	comments repository.CommentRepository,
	history repository.HistoryRepository,
	store media.Store,
	prober media.Prober,
	inv Invalidator,
) VideoService {
	if prober == nil {
		prober = media.NoopProber{}
	}
	return &videoService{
		videos: videos, reads: reads, likes: likes, comments: comments, history: history,
		store: store, prober: prober, inv: orNoop(inv),
	}
}

func (s *videoService) List(ctx context.Context, opts ListOptions, viewer personalize.Viewer) (*query.Result[model.VideoCard], error) {
	f := repository.VideoFilter{
		Search: opts.Search,
		SortBy: opts.SortBy,
		Desc:   !strings.EqualFold(opts.SortType, "asc"),
	}
	// 非法 owner 过滤条件忽略
	if validID(opts.OwnerID) {
		f.OwnerID = opts.OwnerID
	}
	res, err := s.reads.List(ctx, f, viewer, opts.Page)
	if err != nil {
		return nil, apperr.Internal("failed to fetch videos", err)
	}
	return res, nil
}

func (s *videoService) GetForViewer(ctx context.Context, id string, viewer personalize.Viewer) (*model.VideoDetail, error) {
	if !validID(id) {
		return nil, ErrInvalidVideoID
	}
	d, err := s.reads.ForViewer(ctx, id, viewer)
	return d, storeErr(err, ErrVideoNotFound)
}

func (s *videoService) GetForGuest(ctx context.Context, id string) (*model.VideoDetail, error) {
	if !validID(id) {
		return nil, ErrInvalidVideoID
	}
	d, err := s.reads.ForGuest(ctx, id)
	return d, storeErr(err, ErrVideoNotFound)
}

func (s *videoService) Next(ctx context.Context, id string) ([]model.VideoCard, error) {
	if !validID(id) {
		return nil, ErrInvalidVideoID
	}
	if _, err := s.videos.OwnerOf(ctx, id); err != nil {
		return nil, storeErr(err, ErrVideoNotFound)
	}
	cards, err := s.reads.Next(ctx, id, nextVideosLimit)
	if err != nil {
		return nil, apperr.Internal("failed to fetch next videos", err)
	}
	return cards, nil
}

func (s *videoService) Publish(ctx context.Context, ownerID string, in PublishInput) (*model.Video, error) {
	if ownerID == "" {
		return nil, ErrLoginRequired
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if in.Video == nil {
		return nil, ErrVideoRequired
	}
	if in.Thumbnail == nil {
		return nil, ErrThumbRequired
	}

	var duration float64
	if in.Video.Path != "" {
		d, err := s.prober.Duration(ctx, in.Video.Path)
		if err != nil {
			logger.Warn("probe video duration failed", zap.String("file", in.Video.Filename), zap.Error(err))
		}
		duration = d
	}

	in.Video.Kind = media.KindVideo
	videoRef, err := s.store.Upload(ctx, *in.Video)
	if err != nil {
		logger.Error("upload video failed", zap.Error(err))
		return nil, ErrUploadFailed
	}
	in.Thumbnail.Kind = media.KindThumbnail
	thumbRef, err := s.store.Upload(ctx, *in.Thumbnail)
	if err != nil {
		logger.Error("upload thumbnail failed", zap.Error(err))
		s.release(ctx, videoRef.Key)
		return nil, ErrUploadFailed
	}

	v := &model.Video{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		VideoURL:     videoRef.URL,
		VideoRef:     videoRef.Key,
		ThumbnailURL: thumbRef.URL,
		ThumbnailRef: thumbRef.Key,
		Duration:     duration,
		IsPublished:  true,
	}
	if err := s.videos.Create(ctx, v); err != nil {
		s.release(ctx, videoRef.Key)
		s.release(ctx, thumbRef.Key)
		return nil, apperr.Internal("failed to publish video", err)
	}
	s.inv.Invalidate(ctx, ownerID)
	return v, nil
}

// owned 读取视频并校验作者
func (s *videoService) owned(ctx context.Context, id, actorID string) (*model.Video, error) {
	if !validID(id) {
		return nil, ErrInvalidVideoID
	}
	if actorID == "" {
		return nil, ErrLoginRequired
	}
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrVideoNotFound)
	}
	if v.OwnerID != actorID {
		return nil, ErrNotVideoOwner
	}
	return v, nil
}

func (s *videoService) Update(ctx context.Context, id, actorID string, in UpdateInput) (*model.Video, error) {
	if !validID(id) {
		return nil, ErrInvalidVideoID
	}
	fields := map[string]any{}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, ErrTitleRequired
		}
		fields["title"] = t
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if len(fields) == 0 && in.Thumbnail == nil {
		return nil, ErrNothingToUpdate
	}

	v, err := s.owned(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	oldThumb := ""
	if in.Thumbnail != nil {
		in.Thumbnail.Kind = media.KindThumbnail
		ref, err := s.store.Upload(ctx, *in.Thumbnail)
		if err != nil {
			logger.Error("upload thumbnail failed", zap.Error(err))
			return nil, ErrUploadFailed
		}
		fields["thumbnail_url"] = ref.URL
		fields["thumbnail_ref"] = ref.Key
		oldThumb = v.ThumbnailRef
	}

	if err := s.videos.Update(ctx, id, fields); err != nil {
		return nil, storeErr(err, ErrVideoNotFound)
	}
	if oldThumb != "" {
		s.release(ctx, oldThumb)
	}
	updated, err := s.videos.GetByID(ctx, id)
	return updated, storeErr(err, ErrVideoNotFound)
}

func (s *videoService) TogglePublish(ctx context.Context, id, actorID string) (bool, error) {
	v, err := s.owned(ctx, id, actorID)
	if err != nil {
		return false, err
	}
	next := !v.IsPublished
	if err := s.videos.Update(ctx, id, map[string]any{"is_published": next}); err != nil {
		return false, storeErr(err, ErrVideoNotFound)
	}
	s.inv.Invalidate(ctx, v.OwnerID)
	return next, nil
}

func (s *videoService) IncrementViews(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, ErrInvalidVideoID
	}
	views, err := s.videos.IncrementViews(ctx, id)
	if err != nil {
		return 0, storeErr(err, ErrVideoNotFound)
	}
	// totalViews 属于频道统计
	owner, err := s.videos.OwnerOf(ctx, id)
	if err != nil {
		logger.Warn("resolve video owner failed", zap.String("video", id), zap.Error(err))
		return views, nil
	}
	s.inv.Invalidate(ctx, owner)
	return views, nil
}

// Delete 先删主记录，再并发清理关联边与媒体。清理失败不回滚主记录，只体现在返回结果中。
func (s *videoService) Delete(ctx context.Context, id, actorID string) (DeleteResult, error) {
	v, err := s.owned(ctx, id, actorID)
	if err != nil {
		return DeleteResult{}, err
	}
	deleted, err := s.videos.Delete(ctx, id)
	if err != nil {
		return DeleteResult{}, apperr.Internal("failed to delete video", err)
	}
	if !deleted {
		return DeleteResult{}, ErrVideoNotFound
	}
	s.inv.Invalidate(ctx, v.OwnerID)

	tasks := []struct {
		name string
		run  func(context.Context) error
	}{
		{"likes", func(ctx context.Context) error {
			_, err := s.likes.DeleteByTarget(ctx, model.Target{Kind: model.TargetVideo, ID: id})
			return err
		}},
		{"comments", func(ctx context.Context) error {
			if _, err := s.likes.DeleteOnCommentsOfVideo(ctx, id); err != nil {
				return err
			}
			_, err := s.comments.DeleteByVideo(ctx, id)
			return err
		}},
		{"watch history", func(ctx context.Context) error {
			_, err := s.history.DeleteByVideo(ctx, id)
			return err
		}},
		{"video file", func(ctx context.Context) error { return s.releaseErr(ctx, v.VideoRef) }},
		{"thumbnail", func(ctx context.Context) error { return s.releaseErr(ctx, v.ThumbnailRef) }},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []string
	)
	for _, t := range tasks {
		t := t
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := t.run(ctx); err != nil {
				logger.Warn("video delete cascade failed",
					zap.String("video", id), zap.String("task", t.name), zap.Error(err))
				mu.Lock()
				failures = append(failures, t.name)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if failures == nil {
		failures = []string{}
	}
	return DeleteResult{Degraded: len(failures) > 0, Failures: failures}, nil
}

func (s *videoService) releaseErr(ctx context.Context, key string) error {
	if key == "" || s.store == nil {
		return nil
	}
	return s.store.Delete(ctx, key)
}

// release 尽力释放，失败只记录
func (s *videoService) release(ctx context.Context, key string) {
	if err := s.releaseErr(ctx, key); err != nil {
		logger.Warn("release media failed", zap.String("key", key), zap.Error(err))
	}
}
