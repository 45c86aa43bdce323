package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/pkg/response"
)

// ToggleSubscription 订阅/取消订阅频道
// @Summary 订阅开关
// @Tags 订阅
// @Produce json
// @Security Bearer
// @Param channelId path string true "频道ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/subscriptions/c/{channelId} [post]
func (h *Handler) ToggleSubscription(c *gin.Context) {
	res, err := h.subscriptions.Toggle(c.Request.Context(), c.Param("channelId"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	msg := "unsubscribed"
	if res.Active {
		msg = "subscribed"
	}
	response.Success(c, res, msg)
}

// ChannelSubscribers 频道的订阅者
// @Summary 订阅者列表
// @Tags 订阅
// @Produce json
// @Param channelId path string true "频道ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/subscriptions/c/{channelId} [get]
func (h *Handler) ChannelSubscribers(c *gin.Context) {
	res, err := h.subscriptions.Subscribers(c.Request.Context(), c.Param("channelId"), viewer(c), page(c, query.DefaultLimit))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res, "subscribers fetched successfully")
}

// SubscribedChannels 用户订阅的频道及其最新视频
// @Summary 已订阅频道
// @Tags 订阅
// @Produce json
// @Param subscriberId path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/subscriptions/u/{subscriberId} [get]
func (h *Handler) SubscribedChannels(c *gin.Context) {
	res, err := h.subscriptions.SubscribedChannels(c.Request.Context(), c.Param("subscriberId"), page(c, query.DefaultLimit))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res, "subscribed channels fetched successfully")
}
