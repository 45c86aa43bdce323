package handler

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/d60-Lab/vidhub/internal/media"
	"github.com/d60-Lab/vidhub/internal/query"
	"github.com/d60-Lab/vidhub/internal/service"
	"github.com/d60-Lab/vidhub/pkg/response"
)

type listVideosQuery struct {
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType" binding:"omitempty,sortorder"`
	UserID   string `form:"userId"`
}

// ListVideos 公开视频列表
// @Summary 视频列表（已发布）
// @Tags 视频
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param query query string false "标题/描述关键字"
// @Param sortBy query string false "createdAt|views|title|duration|likesCount"
// @Param sortType query string false "asc|desc"
// @Param userId query string false "作者ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/videos [get]
func (h *Handler) ListVideos(c *gin.Context) {
	var q listVideosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.videos.List(c.Request.Context(), service.ListOptions{
		Page:     page(c, query.DefaultLimit),
		Search:   q.Query,
		SortBy:   q.SortBy,
		SortType: q.SortType,
		OwnerID:  q.UserID,
	}, viewer(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res, "videos fetched successfully")
}

// GetVideo 视频详情；登录用户可见自己的未发布视频
// @Summary 视频详情
// @Tags 视频
// @Produce json
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/videos/v/{videoId} [get]
func (h *Handler) GetVideo(c *gin.Context) {
	v := viewer(c)
	ctx := c.Request.Context()
	id := c.Param("videoId")

	var (
		detail any
		err    error
	)
	if v.IsGuest() {
		detail, err = h.videos.GetForGuest(ctx, id)
	} else {
		detail, err = h.videos.GetForViewer(ctx, id, v)
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, detail, "video fetched successfully")
}

// GetVideoForGuest 游客视角详情
// @Summary 视频详情（游客）
// @Tags 视频
// @Produce json
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response
// @Router /api/v1/videos/v/guest/{videoId} [get]
func (h *Handler) GetVideoForGuest(c *gin.Context) {
	detail, err := h.videos.GetForGuest(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, detail, "video fetched successfully")
}

// NextVideos 推荐的下一批视频
// @Summary 下一批视频
// @Tags 视频
// @Produce json
// @Param videoId path string true "当前视频ID"
// @Success 200 {object} response.Response
// @Router /api/v1/videos/next/{videoId} [get]
func (h *Handler) NextVideos(c *gin.Context) {
	list, err := h.videos.Next(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list, "next videos fetched successfully")
}

// spool 把视频落到临时文件，供时长探测使用；返回的 cleanup 必须调用
func spool(fh *multipart.FileHeader) (*media.Upload, func(), error) {
	src, err := fh.Open()
	if err != nil {
		return nil, func() {}, errors.Wrap(err, "open video part")
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "vidhub-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return nil, func() {}, errors.Wrap(err, "create temp file")
	}
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}
	if _, err := io.Copy(tmp, src); err != nil {
		cleanup()
		return nil, func() {}, errors.Wrap(err, "spool video")
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, func() {}, errors.Wrap(err, "rewind video")
	}
	return &media.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        tmp,
		Path:        tmp.Name(),
	}, cleanup, nil
}

// part 直接读取表单文件；调用方负责关闭
func part(fh *multipart.FileHeader) (*media.Upload, io.Closer, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, nil, errors.Wrap(err, "open form part")
	}
	return &media.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        src,
	}, src, nil
}

// PublishVideo 上传并发布视频
// @Summary 发布视频
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param videoFile formData file true "视频文件"
// @Param thumbnail formData file true "封面"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/videos/upload [post]
func (h *Handler) PublishVideo(c *gin.Context) {
	in := service.PublishInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if fh, err := c.FormFile("videoFile"); err == nil {
		up, cleanup, err := spool(fh)
		defer cleanup()
		if err != nil {
			response.InternalError(c, err)
			return
		}
		in.Video = up
	}
	if fh, err := c.FormFile("thumbnail"); err == nil {
		up, closer, err := part(fh)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		defer closer.Close()
		in.Thumbnail = up
	}

	v, err := h.videos.Publish(c.Request.Context(), actor(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, v, "video published successfully")
}

// UpdateVideo 修改标题/描述/封面
// @Summary 修改视频
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param videoId path string true "视频ID"
// @Param title formData string false "标题"
// @Param description formData string false "描述"
// @Param thumbnail formData file false "封面"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/videos/v/{videoId} [patch]
func (h *Handler) UpdateVideo(c *gin.Context) {
	var in service.UpdateInput
	if title, ok := c.GetPostForm("title"); ok {
		in.Title = &title
	}
	if desc, ok := c.GetPostForm("description"); ok {
		in.Description = &desc
	}
	if fh, err := c.FormFile("thumbnail"); err == nil {
		up, closer, err := part(fh)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		defer closer.Close()
		in.Thumbnail = up
	}

	v, err := h.videos.Update(c.Request.Context(), c.Param("videoId"), actor(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, v, "video updated successfully")
}

// TogglePublish 切换发布状态
// @Summary 切换发布状态
// @Tags 视频
// @Produce json
// @Security Bearer
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response
// @Router /api/v1/videos/toggle/publish/{videoId} [patch]
func (h *Handler) TogglePublish(c *gin.Context) {
	published, err := h.videos.TogglePublish(c.Request.Context(), c.Param("videoId"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"isPublished": published}, "publish status toggled")
}

// IncrementViews 播放量 +1
// @Summary 播放量 +1
// @Tags 视频
// @Produce json
// @Security Bearer
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response
// @Router /api/v1/videos/update/views/{videoId} [put]
func (h *Handler) IncrementViews(c *gin.Context) {
	views, err := h.videos.IncrementViews(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"views": views}, "views updated")
}

// DeleteVideo 删除视频并级联清理
// @Summary 删除视频
// @Tags 视频
// @Produce json
// @Security Bearer
// @Param videoId path string true "视频ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/videos/v/{videoId} [delete]
func (h *Handler) DeleteVideo(c *gin.Context) {
	res, err := h.videos.Delete(c.Request.Context(), c.Param("videoId"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	msg := "video deleted successfully"
	if res.Degraded {
		msg = "video deleted, some cleanup failed"
	}
	response.Success(c, res, msg)
}
