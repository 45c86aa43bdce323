package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/vidhub/internal/media"
	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/testutil"
	"github.com/d60-Lab/vidhub/pkg/apperr"
)

func upload(name string) *media.Upload {
	return &media.Upload{Filename: name, ContentType: "application/octet-stream", Body: strings.NewReader("bytes")}
}

func TestPublishAndGet(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")

	_, err := f.videoSvc.Publish(ctx, owner.ID, PublishInput{Title: "  ", Video: upload("a.mp4"), Thumbnail: upload("a.jpg")})
	assert.ErrorIs(t, err, ErrTitleRequired)
	_, err = f.videoSvc.Publish(ctx, owner.ID, PublishInput{Title: "t", Thumbnail: upload("a.jpg")})
	assert.ErrorIs(t, err, ErrVideoRequired)
	_, err = f.videoSvc.Publish(ctx, owner.ID, PublishInput{Title: "t", Video: upload("a.mp4")})
	assert.ErrorIs(t, err, ErrThumbRequired)

	v, err := f.videoSvc.Publish(ctx, owner.ID, PublishInput{Title: "first", Description: "d", Video: upload("a.mp4"), Thumbnail: upload("a.jpg")})
	require.NoError(t, err)
	assert.True(t, v.IsPublished)
	assert.True(t, f.store.Has(v.VideoRef))
	assert.True(t, f.store.Has(v.ThumbnailRef))
	assert.Equal(t, []string{owner.ID}, f.inv.Owners())

	d, err := f.videoSvc.GetForGuest(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", d.Title)
	assert.Equal(t, "owner", d.Owner.Username)

	_, err = f.videoSvc.GetForGuest(ctx, "bad")
	assert.ErrorIs(t, err, ErrInvalidVideoID)
	_, err = f.videoSvc.GetForViewer(ctx, uuid.New().String(), personalize.As(owner.ID))
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestPublishUploadFailure(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")
	f.store.FailUpload = true

	_, err := f.videoSvc.Publish(ctx, owner.ID, PublishInput{Title: "t", Video: upload("a.mp4"), Thumbnail: upload("a.jpg")})
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, "upload failed", apperr.Message(err))
	assert.Equal(t, 500, apperr.Status(err))
}

func TestUpdateAndOwnership(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")
	other := testutil.User(t, f.db, "other")
	v := testutil.Video(t, f.db, owner, "v", true)
	f.store.Put(v.ThumbnailRef, []byte("old"))

	_, err := f.videoSvc.Update(ctx, v.ID, owner.ID, UpdateInput{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	title := "renamed"
	_, err = f.videoSvc.Update(ctx, v.ID, other.ID, UpdateInput{Title: &title})
	assert.ErrorIs(t, err, ErrNotVideoOwner)
	assert.Equal(t, apperr.KindOwnership, apperr.KindOf(err))

	updated, err := f.videoSvc.Update(ctx, v.ID, owner.ID, UpdateInput{Title: &title, Thumbnail: upload("new.png")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.NotEqual(t, v.ThumbnailRef, updated.ThumbnailRef)
	assert.True(t, f.store.Has(updated.ThumbnailRef))
	assert.False(t, f.store.Has(v.ThumbnailRef))
}

func TestTogglePublishAndViews(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")
	other := testutil.User(t, f.db, "other")
	v := testutil.Video(t, f.db, owner, "v", true)

	_, err := f.videoSvc.TogglePublish(ctx, v.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotVideoOwner)

	state, err := f.videoSvc.TogglePublish(ctx, v.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, state)

	_, err = f.videoSvc.GetForGuest(ctx, v.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	d, err := f.videoSvc.GetForViewer(ctx, v.ID, personalize.As(owner.ID))
	require.NoError(t, err)
	assert.False(t, d.IsPublished)

	state, err = f.videoSvc.TogglePublish(ctx, v.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, state)

	views, err := f.videoSvc.IncrementViews(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)
	_, err = f.videoSvc.IncrementViews(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestListIgnoresMalformedOwner(t *testing.T) {
	f := newFixture(t)
	a := testutil.User(t, f.db, "a")
	b := testutil.User(t, f.db, "b")
	testutil.Video(t, f.db, a, "va", true)
	testutil.Video(t, f.db, b, "vb", true)

	res, err := f.videoSvc.List(ctx, ListOptions{Page: query.NewPage(1, 20), OwnerID: "garbage"}, personalize.Guest())
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)

	res, err = f.videoSvc.List(ctx, ListOptions{Page: query.NewPage(1, 20), OwnerID: a.ID}, personalize.Guest())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "va", res.Items[0].Title)

	res, err = f.videoSvc.List(ctx, ListOptions{Page: query.NewPage(1, 20), SortBy: "title", SortType: "asc"}, personalize.Guest())
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "va", res.Items[0].Title)
}

func TestNext(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")
	v := testutil.Video(t, f.db, owner, "v", true)
	testutil.Video(t, f.db, owner, "w", true)

	cards, err := f.videoSvc.Next(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "w", cards[0].Title)

	_, err = f.videoSvc.Next(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestDeleteCascade(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")
	u := testutil.User(t, f.db, "u")
	v := testutil.Video(t, f.db, owner, "v", true)
	keep := testutil.Video(t, f.db, owner, "keep", true)
	f.store.Put(v.VideoRef, []byte("video"))
	f.store.Put(v.ThumbnailRef, []byte("thumb"))

	testutil.Like(t, f.db, model.TargetVideo, v.ID, u)
	testutil.Like(t, f.db, model.TargetVideo, v.ID, owner)
	testutil.Like(t, f.db, model.TargetVideo, keep.ID, u)
	c := testutil.Comment(t, f.db, v, u, "bye")
	testutil.Like(t, f.db, model.TargetComment, c.ID, owner)
	testutil.Watch(t, f.db, u, v)

	_, err := f.videoSvc.Delete(ctx, v.ID, u.ID)
	assert.ErrorIs(t, err, ErrNotVideoOwner)

	res, err := f.videoSvc.Delete(ctx, v.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	assert.Empty(t, res.Failures)

	cnt, err := f.likes.CountByTarget(ctx, model.Target{Kind: model.TargetVideo, ID: v.ID})
	require.NoError(t, err)
	assert.Zero(t, cnt)
	cnt, err = f.likes.CountByTarget(ctx, model.Target{Kind: model.TargetComment, ID: c.ID})
	require.NoError(t, err)
	assert.Zero(t, cnt)
	cnt, err = f.comments.CountByVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Zero(t, cnt)
	cnt, err = f.history.Count(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, cnt)
	assert.False(t, f.store.Has(v.VideoRef))
	assert.False(t, f.store.Has(v.ThumbnailRef))

	// 其他视频不受影响
	cnt, err = f.likes.CountByTarget(ctx, model.Target{Kind: model.TargetVideo, ID: keep.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	_, err = f.videoSvc.GetForGuest(ctx, v.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestDeleteDegradedWhenMediaReleaseFails(t *testing.T) {
	f := newFixture(t)
	owner := testutil.User(t, f.db, "owner")
	v := testutil.Video(t, f.db, owner, "v", true)
	testutil.Like(t, f.db, model.TargetVideo, v.ID, owner)
	f.store.FailDelete = true

	res, err := f.videoSvc.Delete(ctx, v.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.ElementsMatch(t, []string{"video file", "thumbnail"}, res.Failures)

	// 主记录与关联边照常删除
	_, err = f.videos.GetByID(ctx, v.ID)
	assert.Error(t, err)
	cnt, err := f.likes.CountByTarget(ctx, model.Target{Kind: model.TargetVideo, ID: v.ID})
	require.NoError(t, err)
	assert.Zero(t, cnt)
}
