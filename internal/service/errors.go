package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/pkg/apperr"
)

var (
	ErrInvalidVideoID   = apperr.Validation("invalid video id")
	ErrInvalidCommentID = apperr.Validation("invalid comment id")
	ErrInvalidTweetID   = apperr.Validation("invalid tweet id")
	ErrInvalidChannelID = apperr.Validation("invalid channel id")
	ErrInvalidTarget    = apperr.Validation("invalid like target")
	ErrSubscribeSelf    = apperr.Validation("cannot subscribe to own channel")
	ErrContentRequired  = apperr.Validation("content is required")
	ErrContentTooLong   = apperr.Validation("content exceeds 1000 characters")
	ErrTitleRequired    = apperr.Validation("title is required")
	ErrVideoRequired    = apperr.Validation("video file is required")
	ErrThumbRequired    = apperr.Validation("thumbnail is required")
	ErrNothingToUpdate  = apperr.Validation("at least one field is required")
	ErrUsernameTaken    = apperr.Validation("username or email already exists")
	ErrMissingFields    = apperr.Validation("all fields are required")

	ErrVideoNotFound   = apperr.NotFound("video not found")
	ErrCommentNotFound = apperr.NotFound("comment not found")
	ErrTweetNotFound   = apperr.NotFound("tweet not found")
	ErrChannelNotFound = apperr.NotFound("channel not found")

	ErrNotVideoOwner   = apperr.Ownership("only the owner can modify this video")
	ErrNotCommentOwner = apperr.Ownership("only the owner can modify this comment")

	ErrLoginRequired      = apperr.Unauthorized("login required")
	ErrInvalidCredentials = apperr.Unauthorized("invalid credentials")

	ErrUploadFailed = apperr.Internal("upload failed", nil)
)

const maxCommentLength = 1000

// validID 只接受存储使用的规范形式：36 位小写带连字符
func validID(id string) bool {
	if len(id) != 36 {
		return false
	}
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.String() == id
}

// storeErr 把仓储错误映射到分类：记录不存在 → notFound，其余 → internal
func storeErr(err error, notFound *apperr.Error) error {
	if err == nil {
		return nil
	}
	if repository.IsNotFound(err) {
		return notFound
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Internal("internal server error", err)
}
