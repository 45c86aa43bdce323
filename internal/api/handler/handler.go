package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidhub/internal/api/middleware"
	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/service"
	"github.com/d60-Lab/vidhub/pkg/response"
)

// Services 处理器依赖的业务服务
type Services struct {
	Videos        service.VideoService
	Comments      service.CommentService
	Likes         service.LikeService
	Subscriptions service.SubscriptionService
	Stats         service.StatsService
	Users         service.UserService
	Accounts      service.AccountService
}

// Handler 所有 HTTP 处理器共享的依赖
type Handler struct {
	videos        service.VideoService
	comments      service.CommentService
	likes         service.LikeService
	subscriptions service.SubscriptionService
	stats         service.StatsService
	users         service.UserService
	accounts      service.AccountService
}

func New(s Services) *Handler {
	return &Handler{
		videos:        s.Videos,
		comments:      s.Comments,
		likes:         s.Likes,
		subscriptions: s.Subscriptions,
		stats:         s.Stats,
		users:         s.Users,
		accounts:      s.Accounts,
	}
}

func page(c *gin.Context, defaultLimit int) query.Page {
	return query.ParsePage(c.Query("page"), c.Query("limit"), defaultLimit)
}

func viewer(c *gin.Context) personalize.Viewer { return middleware.Viewer(c) }

// actor 当前登录用户 id；游客返回空串，由服务层拒绝
func actor(c *gin.Context) string {
	id, _ := viewer(c).ID()
	return id
}

// fail 统一错误出口
func fail(c *gin.Context, err error) { response.Error(c, err) }
