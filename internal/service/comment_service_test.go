package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/testutil"
)

func TestCommentLifecycle(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")
	u := testutil.User(t, f.db, "u")
	v := testutil.Video(t, f.db, owner, "v", true)

	_, err := f.commentSvc.Add(ctx, v.ID, u.ID, "   ")
	assert.ErrorIs(t, err, ErrContentRequired)
	_, err = f.commentSvc.Add(ctx, v.ID, u.ID, strings.Repeat("x", maxCommentLength+1))
	assert.ErrorIs(t, err, ErrContentTooLong)
	_, err = f.commentSvc.Add(ctx, uuid.New().String(), u.ID, "hi")
	assert.ErrorIs(t, err, ErrVideoNotFound)

	c, err := f.commentSvc.Add(ctx, v.ID, u.ID, " nice video ")
	require.NoError(t, err)
	assert.Equal(t, "nice video", c.Content)

	_, err = f.commentSvc.Update(ctx, c.ID, owner.ID, "hijack")
	assert.ErrorIs(t, err, ErrNotCommentOwner)

	c, err = f.commentSvc.Update(ctx, c.ID, u.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", c.Content)

	_, err = f.likeSvc.Toggle(ctx, model.TargetComment, c.ID, owner.ID)
	require.NoError(t, err)

	page, err := f.commentSvc.List(ctx, v.ID, personalize.As(owner.ID), query.NewPage(1, DefaultCommentLimit))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "edited", page.Items[0].Content)
	assert.Equal(t, int64(1), page.Items[0].LikesCount)
	assert.True(t, page.Items[0].IsLiked)
	assert.Equal(t, "u", page.Items[0].Owner.Username)

	assert.ErrorIs(t, f.commentSvc.Delete(ctx, c.ID, owner.ID), ErrNotCommentOwner)
	require.NoError(t, f.commentSvc.Delete(ctx, c.ID, u.ID))
	assert.ErrorIs(t, f.commentSvc.Delete(ctx, c.ID, u.ID), ErrCommentNotFound)

	cnt, err := f.likes.CountByTarget(ctx, model.Target{Kind: model.TargetComment, ID: c.ID})
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestCommentListMissingVideo(t *testing.T) {
	f := newFixture(t)
	_, err := f.commentSvc.List(ctx, uuid.New().String(), personalize.Guest(), query.NewPage(1, 10))
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = f.commentSvc.List(ctx, "bad", personalize.Guest(), query.NewPage(1, 10))
	assert.ErrorIs(t, err, ErrInvalidVideoID)
}
