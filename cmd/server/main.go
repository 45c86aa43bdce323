package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/vidhub/config"
	"github.com/d60-Lab/vidhub/internal/api/handler"
	"github.com/d60-Lab/vidhub/internal/api/middleware"
	"github.com/d60-Lab/vidhub/internal/api/router"
	"github.com/d60-Lab/vidhub/internal/cache"
	"github.com/d60-Lab/vidhub/internal/media"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/repository"
	"github.com/d60-Lab/vidhub/internal/service"
	"github.com/d60-Lab/vidhub/pkg/database"
	"github.com/d60-Lab/vidhub/pkg/logger"
	"github.com/d60-Lab/vidhub/pkg/token"
	"github.com/d60-Lab/vidhub/pkg/tracing"
)

const (
	invalidationQueue   = 1024
	invalidationWorkers = 2
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	sentryOn, err := middleware.InitSentry(cfg.Sentry)
	if err != nil {
		logger.Warn("sentry init failed", zap.Error(err))
	}
	if sentryOn {
		defer middleware.FlushSentry()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	// redis 可选；不可用时统计直接走数据库
	var statsCache *cache.StatsCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, stats cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			statsCache = cache.NewStatsCache(client, cfg.Redis.StatsTTL)
		}
	}

	var inv service.Invalidator
	if statsCache != nil {
		invalidator := service.NewStatsInvalidator(statsCache, invalidationQueue)
		stopInvalidator := invalidator.Start(invalidationWorkers)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = stopInvalidator(sctx)
		}()
		inv = invalidator
	}

	store, err := mediaStore(ctx, cfg.Media)
	if err != nil {
		return err
	}

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	resolver := personalize.NewResolver()

	likes := repository.NewLikeRepository(db)
	subs := repository.NewSubscriptionRepository(db)
	videos := repository.NewVideoRepository(db)
	comments := repository.NewCommentRepository(db)
	tweets := repository.NewTweetRepository(db)
	history := repository.NewHistoryRepository(db)
	users := repository.NewUserRepository(db)
	videoReads := repository.NewVideoReadRepository(db, resolver)
	channelReads := repository.NewChannelReadRepository(db, resolver)
	commentReads := repository.NewCommentReadRepository(db, resolver)

	toggles := service.NewToggleService(likes, subs, videos, comments, tweets, users, inv)
	h := handler.New(handler.Services{
		Videos:        service.NewVideoService(videos, videoReads, likes, comments, history, store, media.FFProbe{}, inv),
		Comments:      service.NewCommentService(comments, commentReads, videos, likes),
		Likes:         service.NewLikeService(toggles, videoReads),
		Subscriptions: service.NewSubscriptionService(toggles, channelReads, users),
		Stats:         service.NewStatsService(channelReads, videoReads, statsCache),
		Users:         service.NewUserService(channelReads, videoReads, history, videos),
		Accounts:      service.NewAccountService(users, tokens),
	})

	gin.SetMode(cfg.Server.Mode)
	engine := router.New(router.Options{
		Handler:     h,
		Tokens:      tokens,
		RateLimiter: middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		Sentry:      sentryOn,
		Tracing:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// mediaStore 未配置 endpoint 时使用进程内存储
func mediaStore(ctx context.Context, cfg config.MediaConfig) (media.Store, error) {
	if cfg.Endpoint == "" {
		logger.Warn("media endpoint not configured, using in-memory store")
		return media.NewMemoryStore(), nil
	}
	s, err := media.NewMinioStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("init media store: %w", err)
	}
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}
	return s, nil
}
