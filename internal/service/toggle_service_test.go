package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/testutil"
	"github.com/d60-Lab/vidhub/pkg/apperr"
)

func TestToggleLikeTwice(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")
	u := testutil.User(t, f.db, "u")
	v := testutil.Video(t, f.db, owner, "v", true)

	res, err := f.toggles.Toggle(ctx, LikeEdge(model.TargetVideo, v.ID), u.ID)
	require.NoError(t, err)
	assert.True(t, res.Active)

	cnt, err := f.likes.CountByTarget(ctx, model.Target{Kind: model.TargetVideo, ID: v.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	res, err = f.toggles.Toggle(ctx, LikeEdge(model.TargetVideo, v.ID), u.ID)
	require.NoError(t, err)
	assert.False(t, res.Active)

	cnt, err = f.likes.CountByTarget(ctx, model.Target{Kind: model.TargetVideo, ID: v.ID})
	require.NoError(t, err)
	assert.Zero(t, cnt)

	// 视频点赞影响作者统计
	assert.Equal(t, []string{owner.ID, owner.ID}, f.inv.Owners())
}

func TestToggleCommentAndTweetLikes(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")
	v := testutil.Video(t, f.db, owner, "v", true)
	c := testutil.Comment(t, f.db, v, owner, "hello")
	tw := testutil.Tweet(t, f.db, owner, "tweet")

	res, err := f.likeSvc.Toggle(ctx, model.TargetComment, c.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, res.Active)

	res, err = f.likeSvc.Toggle(ctx, model.TargetTweet, tw.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, res.Active)

	assert.Empty(t, f.inv.Owners())
}

func TestToggleValidation(t *testing.T) {
	f := newFixture(t)
	u := testutil.User(t, f.db, "u")
	absent := uuid.New().String()

	cases := []struct {
		name string
		edge Edge
		want error
		kind apperr.Kind
	}{
		{"malformed video", LikeEdge(model.TargetVideo, "not-a-uuid"), ErrInvalidVideoID, apperr.KindValidation},
		{"absent video", LikeEdge(model.TargetVideo, absent), ErrVideoNotFound, apperr.KindNotFound},
		{"malformed comment", LikeEdge(model.TargetComment, "x"), ErrInvalidCommentID, apperr.KindValidation},
		{"absent comment", LikeEdge(model.TargetComment, absent), ErrCommentNotFound, apperr.KindNotFound},
		{"absent tweet", LikeEdge(model.TargetTweet, absent), ErrTweetNotFound, apperr.KindNotFound},
		{"unknown kind", LikeEdge(model.TargetKind("post"), absent), ErrInvalidTarget, apperr.KindValidation},
		{"malformed channel", SubscriptionEdge("x"), ErrInvalidChannelID, apperr.KindValidation},
		{"absent channel", SubscriptionEdge(absent), ErrChannelNotFound, apperr.KindNotFound},
		{"self subscribe", SubscriptionEdge(u.ID), ErrSubscribeSelf, apperr.KindValidation},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.toggles.Toggle(ctx, c.edge, u.ID)
			assert.ErrorIs(t, err, c.want)
			assert.Equal(t, c.kind, apperr.KindOf(err))
		})
	}

	_, err := f.toggles.Toggle(ctx, SubscriptionEdge(absent), "")
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestToggleSubscription(t *testing.T) {
	f := newFixture(t)
	ch := testutil.User(t, f.db, "chan")
	u := testutil.User(t, f.db, "u")

	res, err := f.subscriptions.Toggle(ctx, ch.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, res.Active)

	ok, err := f.subs.Exists(ctx, u.ID, ch.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	res, err = f.subscriptions.Toggle(ctx, ch.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, []string{ch.ID, ch.ID}, f.inv.Owners())
}
