package service

import (
	"context"

	"github.com/d60-Lab/vidhub/internal/cache"
	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/pkg/apperr"
)

// StatsService 频道后台统计
type StatsService interface {
	ChannelStats(ctx context.Context, ownerID string) (model.ChannelStats, error)
	ChannelAbout(ctx context.Context, ownerID string) (*model.ChannelAbout, error)
	ChannelVideos(ctx context.Context, ownerID string, p query.Page) (*query.Result[model.ChannelVideo], error)
}

type statsService struct {
	channels repository.ChannelReadRepository
	videos   repository.VideoReadRepository
	cache    *cache.StatsCache
}

// NewStatsService cache 可为 nil
func NewStatsService(channels repository.ChannelReadRepository, videos repository.VideoReadRepository, c *cache.StatsCache) StatsService {
	return &statsService{channels: channels, videos: videos, cache: c}
}

func (s *statsService) ChannelStats(ctx context.Context, ownerID string) (model.ChannelStats, error) {
	if !validID(ownerID) {
		return model.ChannelStats{}, ErrInvalidChannelID
	}
	stats, err := s.cache.Get(ctx, ownerID, s.channels.Stats)
	if err != nil {
		return model.ChannelStats{}, apperr.Internal("failed to fetch channel stats", err)
	}
	return stats, nil
}

func (s *statsService) ChannelAbout(ctx context.Context, ownerID string) (*model.ChannelAbout, error) {
	if !validID(ownerID) {
		return nil, ErrInvalidChannelID
	}
	about, err := s.channels.About(ctx, ownerID)
	return about, storeErr(err, ErrChannelNotFound)
}

func (s *statsService) ChannelVideos(ctx context.Context, ownerID string, p query.Page) (*query.Result[model.ChannelVideo], error) {
	if !validID(ownerID) {
		return nil, ErrInvalidChannelID
	}
	res, err := s.videos.ByOwner(ctx, ownerID, p)
	if err != nil {
		return nil, apperr.Internal("failed to fetch channel videos", err)
	}
	return res, nil
}
