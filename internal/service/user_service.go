package service

import (
	"context"
	"strings"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/pkg/apperr"
)

// UserService 频道主页与观看记录
type UserService interface {
	ChannelProfile(ctx context.Context, username string, viewer personalize.Viewer) (*model.ChannelProfile, error)
	WatchHistory(ctx context.Context, viewer personalize.Viewer, p query.Page) (*query.Result[model.HistoryEntry], error)
	AddToHistory(ctx context.Context, viewer personalize.Viewer, videoID string) error
	ClearHistory(ctx context.Context, viewer personalize.Viewer) error
}

type userService struct {
	channels repository.ChannelReadRepository
	reads    repository.VideoReadRepository
	history  repository.HistoryRepository
	videos   repository.VideoRepository
}

func NewUserService(channels repository.ChannelReadRepository, reads repository.VideoReadRepository, history repository.HistoryRepository, videos repository.VideoRepository) UserService {
	return &userService{channels: channels, reads: reads, history: history, videos: videos}
}

func (s *userService) ChannelProfile(ctx context.Context, username string, viewer personalize.Viewer) (*model.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperr.Validation("username is missing")
	}
	p, err := s.channels.Profile(ctx, username, viewer)
	return p, storeErr(err, ErrChannelNotFound)
}

func (s *userService) WatchHistory(ctx context.Context, viewer personalize.Viewer, p query.Page) (*query.Result[model.HistoryEntry], error) {
	id, ok := viewer.ID()
	if !ok {
		return nil, ErrLoginRequired
	}
	res, err := s.reads.History(ctx, id, p)
	if err != nil {
		return nil, apperr.Internal("failed to fetch watch history", err)
	}
	return res, nil
}

func (s *userService) AddToHistory(ctx context.Context, viewer personalize.Viewer, videoID string) error {
	id, ok := viewer.ID()
	if !ok {
		return ErrLoginRequired
	}
	if !validID(videoID) {
		return ErrInvalidVideoID
	}
	if _, err := s.videos.OwnerOf(ctx, videoID); err != nil {
		return storeErr(err, ErrVideoNotFound)
	}
	if err := s.history.Add(ctx, id, videoID); err != nil {
		return apperr.Internal("failed to update watch history", err)
	}
	return nil
}

func (s *userService) ClearHistory(ctx context.Context, viewer personalize.Viewer) error {
	id, ok := viewer.ID()
	if !ok {
		return ErrLoginRequired
	}
	if err := s.history.Clear(ctx, id); err != nil {
		return apperr.Internal("failed to clear watch history", err)
	}
	return nil
}
