package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/testutil"
)

func BenchmarkLikeEdgeToggle(b *testing.B) {
	db := testutil.NewDB(b)
	owner := testutil.User(b, db, "owner")
	users := make([]*model.User, 200)
	for i := range users {
		users[i] = testutil.User(b, db, fmt.Sprintf("u%03d", i))
	}
	video := testutil.Video(b, db, owner, "clip", true)
	edges := NewLikeRepository(db).Edges(model.TargetVideo)
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		actor := users[rnd.Intn(len(users))].ID
		id, found, err := edges.FindEdge(ctx, video.ID, actor)
		if err != nil {
			b.Fatal(err)
		}
		if found {
			_ = edges.DeleteEdge(ctx, id)
		} else {
			_ = edges.CreateEdge(ctx, video.ID, actor)
		}
	}
}

func BenchmarkVideoListPersonalized(b *testing.B) {
	db := testutil.NewDB(b)
	reads := NewVideoReadRepository(db, personalize.NewResolver())
	ctx := context.Background()

	// 20 个频道各 25 个视频，每个视频 10 个赞
	var audience []*model.User
	for i := 0; i < 50; i++ {
		audience = append(audience, testutil.User(b, db, fmt.Sprintf("fan%02d", i)))
	}
	for c := 0; c < 20; c++ {
		ch := testutil.User(b, db, fmt.Sprintf("ch%02d", c))
		for i := 0; i < 25; i++ {
			v := testutil.Video(b, db, ch, fmt.Sprintf("v%02d-%02d", c, i), true)
			for j := 0; j < 10; j++ {
				testutil.Like(b, db, model.TargetVideo, v.ID, audience[(c+i+j)%len(audience)])
			}
		}
	}
	page := query.NewPage(1, 20)

	b.ResetTimer()
	b.Run("Guest", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = reads.List(ctx, VideoFilter{Desc: true}, personalize.Guest(), page)
		}
	})
	b.Run("Viewer", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = reads.List(ctx, VideoFilter{SortBy: "likesCount", Desc: true}, personalize.As(audience[i%len(audience)].ID), page)
		}
	})
}
