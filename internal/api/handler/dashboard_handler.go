package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/pkg/response"
)

// ChannelStats 当前用户频道统计
// @Summary 频道统计
// @Tags 工作台
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response
// @Router /api/v1/dashboard/stats [get]
func (h *Handler) ChannelStats(c *gin.Context) {
	stats, err := h.stats.ChannelStats(c.Request.Context(), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, stats, "channel stats fetched successfully")
}

// ChannelVideos 当前用户全部视频（含未发布）
// @Summary 频道视频
// @Tags 工作台
// @Produce json
// @Security Bearer
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/dashboard/videos [get]
func (h *Handler) ChannelVideos(c *gin.Context) {
	res, err := h.stats.ChannelVideos(c.Request.Context(), actor(c), page(c, query.DefaultLimit))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res, "channel videos fetched successfully")
}

// ChannelAbout 频道简介
// @Summary 频道简介
// @Tags 工作台
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response
// @Router /api/v1/dashboard/about [get]
func (h *Handler) ChannelAbout(c *gin.Context) {
	about, err := h.stats.ChannelAbout(c.Request.Context(), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, about, "channel about fetched successfully")
}
