package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/d60-Lab/vidhub/config"
	"github.com/d60-Lab/vidhub/internal/cache"
	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/pkg/database"
)

const (
	channelCount     = 50
	videosPerChannel = 40
	audienceSize     = 2000
	likesPerVideo    = 30
	requestCount     = 5000
)

func main() {
	ctx := context.Background()

	cfg := must(config.Load())
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	cfg.Database.AutoMigrate = false
	db := must(database.InitDB(cfg))

	for _, t := range []string{"likes", "subscriptions", "watch_history", "comments", "tweets", "videos", "users"} {
		mustDo(db.Exec("DROP TABLE IF EXISTS " + t + " CASCADE").Error)
	}
	mustDo(database.Migrate(db))

	fmt.Println("Setting up test data...")
	channels := seed(db)
	fmt.Printf("Test data ready: %d channels, %d videos, %d viewers\n", len(channels), len(channels)*videosPerChannel, audienceSize)

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = cfg.Redis.Addr
	}
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis at %s: %v", redisAddr, err))
	}

	reads := repository.NewChannelReadRepository(db, personalize.NewResolver())
	statsCache := cache.NewStatsCache(client, 10*time.Minute)
	reqs := makeRequests(channels, requestCount)

	direct := run(reqs, func(id string) error {
		_, err := reads.Stats(ctx, id)
		return err
	})

	client.FlushAll(ctx)
	statsCache.ResetCounters()
	cached := run(reqs, func(id string) error {
		_, err := statsCache.Get(ctx, id, reads.Stats)
		return err
	})
	counters := statsCache.Counters()

	fmt.Printf("\nChannel stats latency (%d req across %d channels)\n", len(reqs), len(channels))
	fmt.Printf("%-14s avg=%v p95=%v p99=%v\n", "Aggregation", avg(direct), pct(direct, 0.95), pct(direct, 0.99))
	fmt.Printf("%-14s avg=%v p95=%v p99=%v hits=%d misses=%d\n", "Redis cache", avg(cached), pct(cached, 0.95), pct(cached, 0.99), counters.Hits, counters.Misses)
}

func seed(db *gorm.DB) []string {
	rnd := rand.New(rand.NewSource(42))
	base := time.Now().Add(-time.Duration(channelCount*videosPerChannel) * time.Minute)

	audience := make([]model.User, audienceSize)
	for i := range audience {
		audience[i] = model.User{
			ID:           uuid.NewString(),
			Username:     fmt.Sprintf("viewer_%d", i),
			Email:        fmt.Sprintf("viewer_%d@example.com", i),
			FullName:     fmt.Sprintf("Viewer %d", i),
			PasswordHash: "x",
		}
	}
	mustDo(db.CreateInBatches(&audience, 500).Error)

	ids := make([]string, 0, channelCount)
	for c := 0; c < channelCount; c++ {
		owner := model.User{
			ID:           uuid.NewString(),
			Username:     fmt.Sprintf("channel_%d", c),
			Email:        fmt.Sprintf("channel_%d@example.com", c),
			FullName:     fmt.Sprintf("Channel %d", c),
			PasswordHash: "x",
		}
		mustDo(db.Create(&owner).Error)
		ids = append(ids, owner.ID)

		videos := make([]model.Video, videosPerChannel)
		var likes []model.Like
		for i := range videos {
			videos[i] = model.Video{
				ID:          uuid.NewString(),
				OwnerID:     owner.ID,
				Title:       fmt.Sprintf("video %d-%d", c, i),
				Views:       int64(rnd.Intn(10000)),
				IsPublished: true,
				CreatedAt:   base.Add(time.Duration(c*videosPerChannel+i) * time.Minute),
			}
			for _, j := range rnd.Perm(audienceSize)[:likesPerVideo] {
				likes = append(likes, model.Like{
					ID:         uuid.NewString(),
					TargetKind: model.TargetVideo,
					TargetID:   videos[i].ID,
					LikedBy:    audience[j].ID,
				})
			}
		}
		mustDo(db.CreateInBatches(&videos, 500).Error)
		mustDo(db.CreateInBatches(&likes, 1000).Error)

		subs := make([]model.Subscription, 0, audienceSize/10)
		for _, j := range rnd.Perm(audienceSize)[:audienceSize/10] {
			subs = append(subs, model.Subscription{ID: uuid.NewString(), SubscriberID: audience[j].ID, ChannelID: owner.ID})
		}
		mustDo(db.CreateInBatches(&subs, 1000).Error)
	}
	return ids
}

func run(reqs []string, call func(string) error) []time.Duration {
	fmt.Print("  Running benchmark...")
	out := make([]time.Duration, 0, len(reqs))
	for _, id := range reqs {
		start := time.Now()
		mustDo(call(id))
		out = append(out, time.Since(start))
	}
	fmt.Println(" done")
	return out
}

// makeRequests 头部频道更热
func makeRequests(channels []string, n int) []string {
	rnd := rand.New(rand.NewSource(7))
	out := make([]string, n)
	for i := range out {
		idx := int(float64(len(channels)) * math.Pow(rnd.Float64(), 3))
		out[i] = channels[idx]
	}
	return out
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range vs {
		sum += v
	}
	return sum / time.Duration(len(vs))
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
