package middleware

import (
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidhub/config"
)

// InitSentry DSN 为空时不启用
func InitSentry(cfg config.SentryConfig) (bool, error) {
	if cfg.DSN == "" {
		return false, nil
	}
	if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.DSN, Environment: cfg.Environment}); err != nil {
		return false, err
	}
	return true, nil
}

// Sentry 捕获 panic 并上报，随后交给 gin.Recovery
func Sentry() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{Repanic: true, Timeout: 2 * time.Second})
}

// FlushSentry 退出前刷新事件
func FlushSentry() { sentry.Flush(2 * time.Second) }
