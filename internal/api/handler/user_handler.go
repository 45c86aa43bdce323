package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/service"
	"github.com/d60-Lab/vidhub/pkg/response"
)

type historyRequest struct {
	VideoID string `json:"videoId" binding:"required"`
}

// ChannelProfile 按用户名查询频道主页
// @Summary 频道主页
// @Tags 用户
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/users/c/{username} [get]
func (h *Handler) ChannelProfile(c *gin.Context) {
	profile, err := h.users.ChannelProfile(c.Request.Context(), c.Param("username"), viewer(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, profile, "channel profile fetched successfully")
}

// WatchHistory 观看历史
// @Summary 观看历史
// @Tags 用户
// @Produce json
// @Security Bearer
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/users/history [get]
func (h *Handler) WatchHistory(c *gin.Context) {
	res, err := h.users.WatchHistory(c.Request.Context(), viewer(c), page(c, query.DefaultLimit))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res, "watch history fetched successfully")
}

// AddToHistory 记录观看
// @Summary 加入观看历史
// @Tags 用户
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body historyRequest true "视频"
// @Success 200 {object} response.Response
// @Router /api/v1/users/history [post]
func (h *Handler) AddToHistory(c *gin.Context) {
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, service.ErrInvalidVideoID)
		return
	}
	if err := h.users.AddToHistory(c.Request.Context(), viewer(c), req.VideoID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil, "video added to watch history")
}

// ClearHistory 清空观看历史
// @Summary 清空观看历史
// @Tags 用户
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response
// @Router /api/v1/users/history [delete]
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.users.ClearHistory(c.Request.Context(), viewer(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil, "watch history cleared")
}
