package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-api/internal/service"
	"github.com/d60-Lab/social-api/pkg/avatar"
	"github.com/d60-Lab/social-api/pkg/response"
)

type Handler struct {
	userSvc    service.UserService
	postSvc    service.PostService
	commentSvc service.CommentService
	likeSvc    service.LikeService
	relSvc     service.RelationshipService
	avatars    *avatar.Generator
}

func New(
	userSvc service.UserService,
	postSvc service.PostService,
	commentSvc service.CommentService,
	likeSvc service.LikeService,
	relSvc service.RelationshipService,
	avatars *avatar.Generator,
) *Handler {
	return &Handler{
		userSvc:    userSvc,
		postSvc:    postSvc,
		commentSvc: commentSvc,
		likeSvc:    likeSvc,
		relSvc:     relSvc,
		avatars:    avatars,
	}
}

// respondErr 哨兵错误到 HTTP 状态的统一映射；未识别的错误一律 500
func (h *Handler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "no access")
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrAlreadyLiked):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrInvalidCredentials):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
