package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/pkg/response"
)

func (h *Handler) toggleLike(c *gin.Context, kind model.TargetKind, param string) {
	res, err := h.likes.Toggle(c.Request.Context(), kind, c.Param(param), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	msg := "like removed"
	if res.Active {
		msg = "liked"
	}
	response.Success(c, res, msg)
}

// ToggleVideoLike 点赞/取消点赞视频
// @Summary 视频点赞开关
// @Tags 点赞
// @Produce json
// @Security Bearer
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response
// @Router /api/v1/likes/toggle/v/{videoId} [post]
func (h *Handler) ToggleVideoLike(c *gin.Context) { h.toggleLike(c, model.TargetVideo, "videoId") }

// ToggleCommentLike 点赞/取消点赞评论
// @Summary 评论点赞开关
// @Tags 点赞
// @Produce json
// @Security Bearer
// @Param commentId path string true "评论ID"
// @Success 200 {object} response.Response
// @Router /api/v1/likes/toggle/c/{commentId} [post]
func (h *Handler) ToggleCommentLike(c *gin.Context) { h.toggleLike(c, model.TargetComment, "commentId") }

// ToggleTweetLike 点赞/取消点赞动态
// @Summary 动态点赞开关
// @Tags 点赞
// @Produce json
// @Security Bearer
// @Param tweetId path string true "动态ID"
// @Success 200 {object} response.Response
// @Router /api/v1/likes/toggle/t/{tweetId} [post]
func (h *Handler) ToggleTweetLike(c *gin.Context) { h.toggleLike(c, model.TargetTweet, "tweetId") }

// LikedVideos 当前用户点赞过的视频
// @Summary 点赞过的视频
// @Tags 点赞
// @Produce json
// @Security Bearer
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/likes/videos [get]
func (h *Handler) LikedVideos(c *gin.Context) {
	res, err := h.likes.LikedVideos(c.Request.Context(), viewer(c), page(c, query.DefaultLimit))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res, "liked videos fetched successfully")
}
