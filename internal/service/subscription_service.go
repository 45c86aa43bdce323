package service

import (
	"context"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/pkg/apperr"
)

// SubscriptionService 订阅关系读取；切换走 ToggleService
type SubscriptionService interface {
	Toggle(ctx context.Context, channelID, actorID string) (ToggleResult, error)
	Subscribers(ctx context.Context, channelID string, viewer personalize.Viewer, p query.Page) (*query.Result[model.SubscriberCard], error)
	SubscribedChannels(ctx context.Context, subscriberID string, p query.Page) (*query.Result[model.SubscribedChannel], error)
}

type subscriptionService struct {
	toggles  ToggleService
	channels repository.ChannelReadRepository
	users    repository.UserRepository
}

func NewSubscriptionService(toggles ToggleService, channels repository.ChannelReadRepository, users repository.UserRepository) SubscriptionService {
	return &subscriptionService{toggles: toggles, channels: channels, users: users}
}

func (s *subscriptionService) Toggle(ctx context.Context, channelID, actorID string) (ToggleResult, error) {
	return s.toggles.Toggle(ctx, SubscriptionEdge(channelID), actorID)
}

func (s *subscriptionService) requireChannel(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrInvalidChannelID
	}
	return exists(ctx, s.users.Exists, id, ErrChannelNotFound)
}

func (s *subscriptionService) Subscribers(ctx context.Context, channelID string, viewer personalize.Viewer, p query.Page) (*query.Result[model.SubscriberCard], error) {
	if err := s.requireChannel(ctx, channelID); err != nil {
		return nil, err
	}
	res, err := s.channels.Subscribers(ctx, channelID, viewer, p)
	if err != nil {
		return nil, apperr.Internal("failed to fetch subscribers", err)
	}
	return res, nil
}

func (s *subscriptionService) SubscribedChannels(ctx context.Context, subscriberID string, p query.Page) (*query.Result[model.SubscribedChannel], error) {
	if err := s.requireChannel(ctx, subscriberID); err != nil {
		return nil, err
	}
	res, err := s.channels.SubscribedChannels(ctx, subscriberID, p)
	if err != nil {
		return nil, apperr.Internal("failed to fetch subscribed channels", err)
	}
	return res, nil
}
