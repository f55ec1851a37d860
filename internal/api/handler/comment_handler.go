package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-api/internal/middleware"
	"github.com/d60-Lab/social-api/pkg/response"
)

type createCommentRequest struct {
	PostID  string `json:"postId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateComment 评论帖子
// @Summary 发表评论
// @Tags 评论
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body createCommentRequest true "评论内容"
// @Success 200 {object} response.Response{data=model.Comment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.commentSvc.Create(c.Request.Context(), middleware.SubjectID(c), req.PostID, req.Content)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, cm)
}

// DeleteComment 删除评论，仅作者本人
// @Summary 删除评论
// @Tags 评论
// @Security BearerAuth
// @Produce json
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response{data=model.Comment}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	cm, err := h.commentSvc.Delete(c.Request.Context(), c.Param("id"), middleware.SubjectID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, cm)
}
