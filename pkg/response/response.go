package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/vidhub/pkg/apperr"
	"github.com/d60-Lab/vidhub/pkg/logger"
)

// Response 成功响应
type Response struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

// ErrorResponse 失败响应
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
}

// Success 200 + data
func Success(c *gin.Context, data any, message string) {
	if message == "" {
		message = "success"
	}
	c.JSON(http.StatusOK, Response{StatusCode: http.StatusOK, Data: data, Message: message})
}

// Fail 以指定状态码返回错误
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{StatusCode: status, Error: msg})
}

func BadRequest(c *gin.Context, msg string) { Fail(c, http.StatusBadRequest, msg) }

func Unauthorized(c *gin.Context, msg string) { Fail(c, http.StatusUnauthorized, msg) }

func TooManyRequests(c *gin.Context) { Fail(c, http.StatusTooManyRequests, "too many requests") }

// InternalError 记录原始错误，只向调用方返回通用信息
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	Fail(c, http.StatusInternalServerError, "internal server error")
}

// Error 按 apperr 分类映射状态码；5xx 记录原始错误，响应只带分类消息
func Error(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	Fail(c, status, apperr.Message(err))
}
