package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-api/internal/middleware"
	"github.com/d60-Lab/social-api/pkg/response"
)

type followRequest struct {
	FollowingID string `json:"followingId" binding:"required"`
}

// Follow 建立关注；follower 取鉴权主体
// @Summary 关注用户
// @Tags 关系链
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body followRequest true "关注信息"
// @Success 200 {object} response.Response{data=model.Follow}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	f, err := h.relSvc.Follow(c.Request.Context(), middleware.SubjectID(c), req.FollowingID)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, f)
}

// Unfollow 按关注边 ID 取消关注，仅 follower 本人
// @Summary 取消关注
// @Tags 关系链
// @Security BearerAuth
// @Produce json
// @Param id path string true "关注边ID"
// @Success 200 {object} response.Response{data=model.Follow}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/unfollow/{id} [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	f, err := h.relSvc.Unfollow(c.Request.Context(), c.Param("id"), middleware.SubjectID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, f)
}

// ListFollowers 查询某用户的粉丝
// @Summary 粉丝列表
// @Tags 关系链
// @Security BearerAuth
// @Param id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/users/{id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	list, err := h.relSvc.ListFollowers(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListFollowing 查询某用户关注的人
// @Summary 关注列表
// @Tags 关系链
// @Security BearerAuth
// @Param id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/users/{id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	list, err := h.relSvc.ListFollowing(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
