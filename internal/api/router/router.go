package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/vidhub/internal/api/handler"
	"github.com/d60-Lab/vidhub/internal/api/middleware"
	"github.com/d60-Lab/vidhub/pkg/token"
)

// Options 路由装配参数
type Options struct {
	Handler     *handler.Handler
	Tokens      *token.Manager
	RateLimiter *middleware.IPRateLimiter
	Sentry      bool
	Tracing     bool
	ServiceName string
}

// New 注册中间件与 /api/v1 路由
func New(opts Options) *gin.Engine {
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Sentry {
		r.Use(middleware.Sentry())
	}
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(middleware.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(opts.RateLimiter))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	h := opts.Handler
	optional := middleware.OptionalAuth(opts.Tokens)
	required := middleware.RequireAuth(opts.Tokens)

	v1 := r.Group("/api/v1")

	videos := v1.Group("/videos")
	{
		videos.GET("", optional, h.ListVideos)
		videos.GET("/v/:videoId", optional, h.GetVideo)
		videos.GET("/v/guest/:videoId", h.GetVideoForGuest)
		videos.GET("/next/:videoId", h.NextVideos)
		videos.POST("/upload", required, h.PublishVideo)
		videos.PATCH("/v/:videoId", required, h.UpdateVideo)
		videos.DELETE("/v/:videoId", required, h.DeleteVideo)
		videos.PATCH("/toggle/publish/:videoId", required, h.TogglePublish)
		videos.PUT("/update/views/:videoId", required, h.IncrementViews)
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", optional, h.ListComments)
		comments.POST("/:videoId", required, h.AddComment)
		comments.PUT("/c/:commentId", required, h.UpdateComment)
		comments.DELETE("/c/:commentId", required, h.DeleteComment)
	}

	likes := v1.Group("/likes", required)
	{
		likes.POST("/toggle/v/:videoId", h.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", h.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", h.ToggleTweetLike)
		likes.GET("/videos", h.LikedVideos)
	}

	subs := v1.Group("/subscriptions")
	{
		subs.POST("/c/:channelId", required, h.ToggleSubscription)
		subs.GET("/c/:channelId", optional, h.ChannelSubscribers)
		subs.GET("/u/:subscriberId", optional, h.SubscribedChannels)
	}

	dashboard := v1.Group("/dashboard", required)
	{
		dashboard.GET("/stats", h.ChannelStats)
		dashboard.GET("/videos", h.ChannelVideos)
		dashboard.GET("/about", h.ChannelAbout)
	}

	users := v1.Group("/users")
	{
		users.GET("/c/:username", optional, h.ChannelProfile)
		users.GET("/history", required, h.WatchHistory)
		users.POST("/history", required, h.AddToHistory)
		users.DELETE("/history", required, h.ClearHistory)
	}

	accounts := v1.Group("/accounts")
	{
		accounts.POST("/register", h.Register)
		accounts.POST("/login", h.Login)
	}

	return r
}
