package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/internal/model"
	"github.com/d60-Lab/social-api/internal/repository"
	"github.com/d60-Lab/social-api/pkg/avatar"
	"github.com/d60-Lab/social-api/pkg/jwt"
	"github.com/d60-Lab/social-api/pkg/logger"
)

// UpdateUserInput 部分更新：零值字段不改动
type UpdateUserInput struct {
	Email       string
	Name        string
	AvatarURL   string
	Bio         string
	Location    string
	DateOfBirth *time.Time
}

type UserService interface {
	Register(ctx context.Context, email, password, name string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Current(ctx context.Context, userID string) (*model.User, error)
	// Profile 返回目标用户及 viewer 是否关注了对方
	Profile(ctx context.Context, id, viewerID string) (*model.User, bool, error)
	Update(ctx context.Context, id, subjectID string, in UpdateUserInput) (*model.User, error)
}

type userService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	tokens  *jwt.Manager
	avatars *avatar.Generator
}

func NewUserService(users repository.UserRepository, follows repository.FollowRepository, tokens *jwt.Manager, avatars *avatar.Generator) UserService {
	return &userService{users: users, follows: follows, tokens: tokens, avatars: avatars}
}

func (s *userService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 未上传头像时用名字生成占位 identicon
	avatarURL, err := s.avatars.Generate(name)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:     email,
		Password:  string(hashed),
		Name:      name,
		AvatarURL: avatarURL,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册同一邮箱时由唯一键兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	logger.Info("user registered", zap.String("user", u.ID))
	return u, nil
}

// Login 不区分邮箱不存在与密码错误，避免用户枚举
func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Sign(u.ID)
}

func (s *userService) Current(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.GetByIDWithEdges(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Profile(ctx context.Context, id, viewerID string) (*model.User, bool, error) {
	u, err := s.users.GetByIDWithEdges(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	isFollowing, err := s.follows.Exists(ctx, viewerID, id)
	if err != nil {
		return nil, false, err
	}
	return u, isFollowing, nil
}

func (s *userService) Update(ctx context.Context, id, subjectID string, in UpdateUserInput) (*model.User, error) {
	if err := requireOwner(id, subjectID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Email != "" {
		taken, err := s.users.EmailTaken(ctx, in.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	fields := map[string]any{}
	if in.Email != "" {
		fields["email"] = in.Email
	}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.AvatarURL != "" {
		fields["avatar_url"] = in.AvatarURL
	}
	if in.Bio != "" {
		fields["bio"] = in.Bio
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}
	if in.DateOfBirth != nil {
		fields["date_of_birth"] = in.DateOfBirth
	}
	if err := s.users.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}
