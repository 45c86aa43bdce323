package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/pkg/apperr"
)

// DefaultCommentLimit 评论分页默认条数
const DefaultCommentLimit = 10

// CommentService 评论服务
type CommentService interface {
	List(ctx context.Context, videoID string, viewer personalize.Viewer, p query.Page) (*query.Result[model.CommentView], error)
	Add(ctx context.Context, videoID, actorID, content string) (*model.Comment, error)
	Update(ctx context.Context, commentID, actorID, content string) (*model.Comment, error)
	Delete(ctx context.Context, commentID, actorID string) error
}

type commentService struct {
	comments repository.CommentRepository
	reads    repository.CommentReadRepository
	videos   repository.VideoRepository
	likes    repository.LikeRepository
}

func NewCommentService(comments repository.CommentRepository, reads repository.CommentReadRepository, videos repository.VideoRepository, likes repository.LikeRepository) CommentService {
	return &commentService{comments: comments, reads: reads, videos: videos, likes: likes}
}

func checkContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrContentRequired
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

func (s *commentService) List(ctx context.Context, videoID string, viewer personalize.Viewer, p query.Page) (*query.Result[model.CommentView], error) {
	if !validID(videoID) {
		return nil, ErrInvalidVideoID
	}
	if _, err := s.videos.OwnerOf(ctx, videoID); err != nil {
		return nil, storeErr(err, ErrVideoNotFound)
	}
	res, err := s.reads.ListByVideo(ctx, videoID, viewer, p)
	if err != nil {
		return nil, apperr.Internal("failed to fetch comments", err)
	}
	return res, nil
}

func (s *commentService) Add(ctx context.Context, videoID, actorID, content string) (*model.Comment, error) {
	if !validID(videoID) {
		return nil, ErrInvalidVideoID
	}
	if actorID == "" {
		return nil, ErrLoginRequired
	}
	content, err := checkContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := s.videos.OwnerOf(ctx, videoID); err != nil {
		return nil, storeErr(err, ErrVideoNotFound)
	}
	c := &model.Comment{ID: uuid.New().String(), VideoID: videoID, OwnerID: actorID, Content: content}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, apperr.Internal("failed to add comment", err)
	}
	return c, nil
}

func (s *commentService) owned(ctx context.Context, commentID, actorID string) (*model.Comment, error) {
	if !validID(commentID) {
		return nil, ErrInvalidCommentID
	}
	if actorID == "" {
		return nil, ErrLoginRequired
	}
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeErr(err, ErrCommentNotFound)
	}
	if c.OwnerID != actorID {
		return nil, ErrNotCommentOwner
	}
	return c, nil
}

func (s *commentService) Update(ctx context.Context, commentID, actorID, content string) (*model.Comment, error) {
	if !validID(commentID) {
		return nil, ErrInvalidCommentID
	}
	content, err := checkContent(content)
	if err != nil {
		return nil, err
	}
	c, err := s.owned(ctx, commentID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.comments.UpdateContent(ctx, commentID, content); err != nil {
		return nil, storeErr(err, ErrCommentNotFound)
	}
	c.Content = content
	return c, nil
}

// Delete 同时删除评论收到的点赞
func (s *commentService) Delete(ctx context.Context, commentID, actorID string) error {
	if _, err := s.owned(ctx, commentID, actorID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return apperr.Internal("failed to delete comment", err)
	}
	if _, err := s.likes.DeleteByTarget(ctx, model.Target{Kind: model.TargetComment, ID: commentID}); err != nil {
		return apperr.Internal("failed to delete comment likes", err)
	}
	return nil
}
