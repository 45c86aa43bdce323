package service

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/d60-Lab/vidhub/internal/media"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/internal/testutil"
)

// recordingInvalidator 记录被失效的频道
type recordingInvalidator struct {
	mu     sync.Mutex
	owners []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, ownerID string) {
	r.mu.Lock()
	r.owners = append(r.owners, ownerID)
	r.mu.Unlock()
}

func (r *recordingInvalidator) Owners() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.owners...)
}

type fixture struct {
	db    *gorm.DB
	store *media.MemoryStore
	inv   *recordingInvalidator

	likes    repository.LikeRepository
	subs     repository.SubscriptionRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	history  repository.HistoryRepository
	users    repository.UserRepository

	toggles       ToggleService
	videoSvc      VideoService
	commentSvc    CommentService
	likeSvc       LikeService
	subscriptions SubscriptionService
	userSvc       UserService
	stats         StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	resolver := personalize.NewResolver()
	f := &fixture{
		db:       db,
		store:    media.NewMemoryStore(),
		inv:      &recordingInvalidator{},
		likes:    repository.NewLikeRepository(db),
		subs:     repository.NewSubscriptionRepository(db),
		videos:   repository.NewVideoRepository(db),
		comments: repository.NewCommentRepository(db),
		history:  repository.NewHistoryRepository(db),
		users:    repository.NewUserRepository(db),
	}
	videoReads := repository.NewVideoReadRepository(db, resolver)
	channelReads := repository.NewChannelReadRepository(db, resolver)

	f.toggles = NewToggleService(f.likes, f.subs, f.videos, f.comments, repository.NewTweetRepository(db), f.users, f.inv)
	f.videoSvc = NewVideoService(f.videos, videoReads, f.likes, f.comments, f.history, f.store, nil, f.inv)
	f.commentSvc = NewCommentService(f.comments, repository.NewCommentReadRepository(db, resolver), f.videos, f.likes)
	f.likeSvc = NewLikeService(f.toggles, videoReads)
	f.subscriptions = NewSubscriptionService(f.toggles, channelReads, f.users)
	f.userSvc = NewUserService(channelReads, videoReads, f.history, f.videos)
	f.stats = NewStatsService(channelReads, videoReads, nil)
	return f
}

var ctx = context.Background()
