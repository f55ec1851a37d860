package handler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-api/internal/middleware"
	"github.com/d60-Lab/social-api/internal/model"
	"github.com/d60-Lab/social-api/internal/service"
	"github.com/d60-Lab/social-api/pkg/response"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Email       string `form:"email" binding:"omitempty,email"`
	Name        string `form:"name"`
	DateOfBirth string `form:"dateOfBirth" binding:"omitempty,dateonly"`
	Bio         string `form:"bio"`
	Location    string `form:"location"`
}

type profileResponse struct {
	*model.User
	IsFollowing bool `json:"isFollowing"`
}

// Register 注册新用户
// @Summary 注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 400 {object} response.Response
// @Router /api/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.userSvc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		// 已存在按可恢复的业务结果返回，HTTP 仍是 200
		if errors.Is(err, service.ErrUserExists) {
			response.BusinessError(c, response.CodeUserExists, err.Error())
			return
		}
		h.respondErr(c, err)
		return
	}
	response.Success(c, u)
}

// Login 登录换取 token
// @Summary 登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 400 {object} response.Response
// @Router /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.userSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"token": token})
}

// CurrentUser 当前登录用户（带关注/粉丝边）
// @Summary 当前用户
// @Tags 用户
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=model.User}
// @Failure 404 {object} response.Response
// @Router /api/current [get]
func (h *Handler) CurrentUser(c *gin.Context) {
	u, err := h.userSvc.Current(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, u)
}

// GetUser 查看他人主页，isFollowing 相对请求主体派生
// @Summary 用户主页
// @Tags 用户
// @Security BearerAuth
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response{data=profileResponse}
// @Failure 404 {object} response.Response
// @Router /api/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	u, isFollowing, err := h.userSvc.Profile(c.Request.Context(), c.Param("id"), middleware.SubjectID(c))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, profileResponse{User: u, IsFollowing: isFollowing})
}

// UpdateUser 更新资料（multipart，部分更新；仅本人）
// @Summary 更新资料
// @Tags 用户
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param id path string true "用户ID"
// @Param avatar formData file false "头像"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	// 所有权先判，头像落盘在后，失败请求不留文件
	if c.Param("id") != middleware.SubjectID(c) {
		response.Forbidden(c, "no access")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	in := service.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Bio:      req.Bio,
		Location: req.Location,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
		if err != nil {
			response.BadRequest(c, "invalid dateOfBirth")
			return
		}
		in.DateOfBirth = &dob
	}

	// 新头像替换旧引用；没传文件时保持不变
	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		switch ext {
		case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		default:
			response.BadRequest(c, "unsupported avatar type")
			return
		}
		name := fmt.Sprintf("%s_%d%s", strings.TrimSuffix(filepath.Base(file.Filename), ext), time.Now().UnixNano(), ext)
		if err := c.SaveUploadedFile(file, filepath.Join(h.avatars.Dir(), name)); err != nil {
			response.InternalError(c, err)
			return
		}
		in.AvatarURL = "/uploads/" + name
	}

	u, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), middleware.SubjectID(c), in)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	response.Success(c, u)
}
