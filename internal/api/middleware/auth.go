package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidhub/internal/personalize"
	"github.com/d60-Lab/vidhub/pkg/response"
	"github.com/d60-Lab/vidhub/pkg/token"
)

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func attach(c *gin.Context, v personalize.Viewer) {
	c.Request = c.Request.WithContext(personalize.WithViewer(c.Request.Context(), v))
}

// OptionalAuth 令牌有效则附加用户身份，否则按游客处理
func OptionalAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := personalize.Guest()
		if raw := bearer(c); raw != "" {
			if id, err := tokens.Parse(raw); err == nil {
				v = personalize.As(id)
			}
		}
		attach(c, v)
		c.Next()
	}
}

// RequireAuth 缺少或无效令牌返回 401
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c)
		if raw == "" {
			response.Unauthorized(c, "unauthorized request")
			return
		}
		id, err := tokens.Parse(raw)
		if err != nil {
			response.Unauthorized(c, "invalid access token")
			return
		}
		attach(c, personalize.As(id))
		c.Next()
	}
}

// Viewer 读取当前请求身份；未经过认证中间件时为游客
func Viewer(c *gin.Context) personalize.Viewer {
	return personalize.FromContext(c.Request.Context())
}
