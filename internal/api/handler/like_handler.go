package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-api/internal/middleware"
	"github.com/d60-Lab/social-api/pkg/response"
)

type likeRequest struct {
	PostID string `json:"postId" binding:"required"`
}

// LikePost 点赞；重复点赞返回 409
// @Summary 点赞
// @Tags 点赞
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body likeRequest true "点赞信息"
// @Success 200 {object} response.Response{data=model.Like}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/likes [post]
func (h *Handler) LikePost(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	l, err := h.likeSvc.Like(c.Request.Context(), middleware.SubjectID(c), req.PostID)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, l)
}

// UnlikePost 取消点赞，仅本人
// @Summary 取消点赞
// @Tags 点赞
// @Security BearerAuth
// @Produce json
// @Param id path string true "点赞ID"
// @Success 200 {object} response.Response{data=model.Like}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/likes/{id} [delete]
func (h *Handler) UnlikePost(c *gin.Context) {
	l, err := h.likeSvc.Unlike(c.Request.Context(), c.Param("id"), middleware.SubjectID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, l)
}
