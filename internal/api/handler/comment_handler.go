package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/vidhub/internal/service"
	"github.com/d60-Lab/vidhub/pkg/response"
)

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListComments 视频评论
// @Summary 评论列表
// @Tags 评论
// @Produce json
// @Param videoId path string true "视频ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/comments/{videoId} [get]
func (h *Handler) ListComments(c *gin.Context) {
	res, err := h.comments.List(c.Request.Context(), c.Param("videoId"), viewer(c), page(c, service.DefaultCommentLimit))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res, "comments fetched successfully")
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security Bearer
// @Param videoId path string true "视频ID"
// @Param request body commentRequest true "评论内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/comments/{videoId} [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, service.ErrContentRequired)
		return
	}
	comment, err := h.comments.Add(c.Request.Context(), c.Param("videoId"), actor(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, comment, "comment added successfully")
}

// UpdateComment 修改评论
// @Summary 修改评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security Bearer
// @Param commentId path string true "评论ID"
// @Param request body commentRequest true "评论内容"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/comments/c/{commentId} [put]
func (h *Handler) UpdateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, service.ErrContentRequired)
		return
	}
	comment, err := h.comments.Update(c.Request.Context(), c.Param("commentId"), actor(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, comment, "comment updated successfully")
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security Bearer
// @Param commentId path string true "评论ID"
// @Success 200 {object} response.Response
// @Router /api/v1/comments/c/{commentId} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	if err := h.comments.Delete(c.Request.Context(), c.Param("commentId"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil, "comment deleted successfully")
}
