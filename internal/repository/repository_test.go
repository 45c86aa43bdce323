package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/testutil"
)

func TestLikeEdgesIdempotentCreate(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	owner := testutil.User(t, db, "owner")
	u := testutil.User(t, db, "u")
	v := testutil.Video(t, db, owner, "v", true)

	likes := NewLikeRepository(db)
	edges := likes.Edges(model.TargetVideo)

	_, found, err := edges.FindEdge(ctx, v.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, edges.CreateEdge(ctx, v.ID, u.ID))
	require.NoError(t, edges.CreateEdge(ctx, v.ID, u.ID))

	cnt, err := likes.CountByTarget(ctx, model.Target{Kind: model.TargetVideo, ID: v.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	// 同一 id 的评论点赞不与视频点赞冲突
	_, found, err = likes.Edges(model.TargetComment).FindEdge(ctx, v.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, found)

	id, found, err := edges.FindEdge(ctx, v.ID, u.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, edges.DeleteEdge(ctx, id))

	cnt, err = likes.CountByTarget(ctx, model.Target{Kind: model.TargetVideo, ID: v.ID})
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestConcurrentEdgeCreateKeepsOneEdge(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	ch := testutil.User(t, db, "chan")
	u := testutil.User(t, db, "u")
	subs := NewSubscriptionRepository(db)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, subs.CreateEdge(ctx, ch.ID, u.ID))
		}()
	}
	wg.Wait()

	cnt, err := subs.CountByChannel(ctx, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	ok, err := subs.Exists(ctx, u.ID, ch.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteOnCommentsOfVideo(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	owner := testutil.User(t, db, "owner")
	v := testutil.Video(t, db, owner, "v", true)
	w := testutil.Video(t, db, owner, "w", true)
	c1 := testutil.Comment(t, db, v, owner, "one")
	c2 := testutil.Comment(t, db, w, owner, "two")
	testutil.Like(t, db, model.TargetComment, c1.ID, owner)
	testutil.Like(t, db, model.TargetComment, c2.ID, owner)

	likes := NewLikeRepository(db)
	n, err := likes.DeleteOnCommentsOfVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	cnt, err := likes.CountByTarget(ctx, model.Target{Kind: model.TargetComment, ID: c2.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
}

func TestVideoRepository(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	owner := testutil.User(t, db, "owner")
	videos := NewVideoRepository(db)

	v := &model.Video{ID: "11111111-1111-1111-1111-111111111111", OwnerID: owner.ID, Title: "draft", IsPublished: false}
	require.NoError(t, videos.Create(ctx, v))
	got, err := videos.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	for i := 1; i <= 3; i++ {
		views, err := videos.IncrementViews(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(i), views)
	}

	ownerID, err := videos.OwnerOf(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, ownerID)

	require.NoError(t, videos.Update(ctx, v.ID, map[string]any{"title": "final"}))
	got, err = videos.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)

	missing := "22222222-2222-2222-2222-222222222222"
	_, err = videos.IncrementViews(ctx, missing)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(videos.Update(ctx, missing, map[string]any{"title": "x"})))
	_, err = videos.OwnerOf(ctx, missing)
	assert.True(t, IsNotFound(err))

	deleted, err := videos.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = videos.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestHistorySetSemantics(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	u := testutil.User(t, db, "u")
	v := testutil.Video(t, db, u, "v", true)
	history := NewHistoryRepository(db)

	require.NoError(t, history.Add(ctx, u.ID, v.ID))
	require.NoError(t, history.Add(ctx, u.ID, v.ID))
	cnt, err := history.Count(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	require.NoError(t, history.Clear(ctx, u.ID))
	cnt, err = history.Count(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestUserRepository(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	u := testutil.User(t, db, "alice")
	users := NewUserRepository(db)

	got, err := users.GetByUsername(ctx, " ALICE ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = users.GetByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	taken, err := users.Taken(ctx, "Alice", "other@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.Taken(ctx, "bob", "bob@example.com")
	require.NoError(t, err)
	assert.False(t, taken)

	_, err = users.GetByID(ctx, "nope")
	assert.True(t, IsNotFound(err))
}
