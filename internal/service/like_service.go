package service

import (
	"context"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/pkg/apperr"
)

// LikeService 点赞切换与点赞列表
type LikeService interface {
	Toggle(ctx context.Context, kind model.TargetKind, targetID, actorID string) (ToggleResult, error)
	LikedVideos(ctx context.Context, viewer personalize.Viewer, p query.Page) (*query.Result[model.LikedVideo], error)
}

type likeService struct {
	toggles ToggleService
	reads   repository.VideoReadRepository
}

func NewLikeService(toggles ToggleService, reads repository.VideoReadRepository) LikeService {
	return &likeService{toggles: toggles, reads: reads}
}

func (s *likeService) Toggle(ctx context.Context, kind model.TargetKind, targetID, actorID string) (ToggleResult, error) {
	if !kind.Valid() {
		return ToggleResult{}, ErrInvalidTarget
	}
	return s.toggles.Toggle(ctx, LikeEdge(kind, targetID), actorID)
}

// LikedVideos 空结果也是成功（空页）
func (s *likeService) LikedVideos(ctx context.Context, viewer personalize.Viewer, p query.Page) (*query.Result[model.LikedVideo], error) {
	id, ok := viewer.ID()
	if !ok {
		return nil, ErrLoginRequired
	}
	res, err := s.reads.LikedBy(ctx, id, p)
	if err != nil {
		return nil, apperr.Internal("failed to fetch liked videos", err)
	}
	return res, nil
}
