package service

import "errors"

// 业务哨兵错误；handler 负责映射到 HTTP 状态
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUserExists         = errors.New("user already exists")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrFollowSelf         = errors.New("cannot follow self")
	ErrAlreadyFollowing   = errors.New("already following")
	ErrAlreadyLiked       = errors.New("already liked")
)
