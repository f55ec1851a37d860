package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-api/internal/middleware"
	"github.com/d60-Lab/social-api/pkg/response"
)

type createPostRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreatePost 发帖；作者取鉴权主体，不信任请求体
// @Summary 发帖
// @Tags 帖子
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body createPostRequest true "帖子内容"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Router /api/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.postSvc.Create(c.Request.Context(), middleware.SubjectID(c), req.Content)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, p)
}

// ListPosts 帖子列表，最新在前
// @Summary 帖子列表
// @Tags 帖子
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Post}
// @Router /api/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	res, err := h.postSvc.List(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, res)
}

// GetPost 帖子详情
// @Summary 帖子详情
// @Tags 帖子
// @Security BearerAuth
// @Produce json
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Router /api/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	p, err := h.postSvc.Get(c.Request.Context(), c.Param("id"), middleware.SubjectID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, p)
}

// DeletePost 删帖，仅作者本人
// @Summary 删帖
// @Tags 帖子
// @Security BearerAuth
// @Produce json
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	p, err := h.postSvc.Delete(c.Request.Context(), c.Param("id"), middleware.SubjectID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, p)
}
