package service

import (
	"context"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/pkg/apperr"
)

type edgeType int

const (
	edgeLike edgeType = iota + 1
	edgeSubscription
)

// Edge 切换目标：点赞（带目标类型）或订阅
type Edge struct {
	typ      edgeType
	kind     model.TargetKind
	TargetID string
}

func LikeEdge(kind model.TargetKind, targetID string) Edge {
	return Edge{typ: edgeLike, kind: kind, TargetID: targetID}
}

func SubscriptionEdge(channelID string) Edge {
	return Edge{typ: edgeSubscription, TargetID: channelID}
}

// ToggleResult active=true 表示切换后边存在
type ToggleResult struct {
	Active bool `json:"active"`
}

// ToggleService 关系切换服务
type ToggleService interface {
	Toggle(ctx context.Context, edge Edge, actorID string) (ToggleResult, error)
}

type toggleService struct {
	likes    repository.LikeRepository
	subs     repository.SubscriptionRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	tweets   repository.TweetRepository
	users    repository.UserRepository
	inv      Invalidator
}

func NewToggleService(
	likes repository.LikeRepository,
	subs repository.SubscriptionRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	tweets repository.TweetRepository,
	users repository.UserRepository,
	inv Invalidator,
) ToggleService {
	return &toggleService{likes: likes, subs: subs, videos: videos, comments: comments, tweets: tweets, users: users, inv: orNoop(inv)}
}

// Toggle 一次查找决定方向：存在则删除（active=false），否则创建（active=true）。
// 创建走唯一索引 + ON CONFLICT DO NOTHING，并发的重复创建不会产生第二条边。
func (s *toggleService) Toggle(ctx context.Context, edge Edge, actorID string) (ToggleResult, error) {
	if actorID == "" {
		return ToggleResult{}, ErrLoginRequired
	}
	store, statsOwner, err := s.resolve(ctx, edge, actorID)
	if err != nil {
		return ToggleResult{}, err
	}

	id, found, err := store.FindEdge(ctx, edge.TargetID, actorID)
	if err != nil {
		return ToggleResult{}, apperr.Internal("internal server error", err)
	}
	active := !found
	if found {
		err = store.DeleteEdge(ctx, id)
	} else {
		err = store.CreateEdge(ctx, edge.TargetID, actorID)
	}
	if err != nil {
		return ToggleResult{}, apperr.Internal("internal server error", err)
	}
	if statsOwner != "" {
		s.inv.Invalidate(ctx, statsOwner)
	}
	return ToggleResult{Active: active}, nil
}

// resolve 校验目标并返回边存储与受影响的统计频道
func (s *toggleService) resolve(ctx context.Context, edge Edge, actorID string) (repository.EdgeStore, string, error) {
	switch edge.typ {
	case edgeSubscription:
		if !validID(edge.TargetID) {
			return nil, "", ErrInvalidChannelID
		}
		if edge.TargetID == actorID {
			return nil, "", ErrSubscribeSelf
		}
		ok, err := s.users.Exists(ctx, edge.TargetID)
		if err != nil {
			return nil, "", storeErr(err, ErrChannelNotFound)
		}
		if !ok {
			return nil, "", ErrChannelNotFound
		}
		return s.subs, edge.TargetID, nil

	case edgeLike:
		switch edge.kind {
		case model.TargetVideo:
			if !validID(edge.TargetID) {
				return nil, "", ErrInvalidVideoID
			}
			owner, err := s.videos.OwnerOf(ctx, edge.TargetID)
			if err != nil {
				return nil, "", storeErr(err, ErrVideoNotFound)
			}
			return s.likes.Edges(model.TargetVideo), owner, nil
		case model.TargetComment:
			if !validID(edge.TargetID) {
				return nil, "", ErrInvalidCommentID
			}
			if err := exists(ctx, s.comments.Exists, edge.TargetID, ErrCommentNotFound); err != nil {
				return nil, "", err
			}
			return s.likes.Edges(model.TargetComment), "", nil
		case model.TargetTweet:
			if !validID(edge.TargetID) {
				return nil, "", ErrInvalidTweetID
			}
			if err := exists(ctx, s.tweets.Exists, edge.TargetID, ErrTweetNotFound); err != nil {
				return nil, "", err
			}
			return s.likes.Edges(model.TargetTweet), "", nil
		}
	}
	return nil, "", ErrInvalidTarget
}

func exists(ctx context.Context, check func(context.Context, string) (bool, error), id string, notFound *apperr.Error) error {
	ok, err := check(ctx, id)
	if err != nil {
		return storeErr(err, notFound)
	}
	if !ok {
		return notFound
	}
	return nil
}
