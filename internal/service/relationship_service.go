package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/internal/cache"
	"github.com/d60-Lab/social-api/internal/model"
	"github.com/d60-Lab/social-api/internal/repository"
)

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, followerID, followingID string) (*model.Follow, error)
	// Unfollow 按边 ID 删除，仅 follower 本人可操作
	Unfollow(ctx context.Context, id, subjectID string) (*model.Follow, error)
	ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]*model.User, error)
	ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]*model.User, error)
}

type relationshipService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
	cache   *cache.FollowerCache
}

func NewRelationshipService(follows repository.FollowRepository, users repository.UserRepository, c *cache.FollowerCache) RelationshipService {
	return &relationshipService{follows: follows, users: users, cache: c}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followingID string) (*model.Follow, error) {
	if followerID == followingID {
		return nil, ErrFollowSelf
	}
	if _, err := s.users.GetByID(ctx, followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	f := &model.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := s.follows.Create(ctx, f); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}
	s.cache.Invalidate(ctx, followerID, followingID)
	return f, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, id, subjectID string) (*model.Follow, error) {
	f, err := s.follows.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := requireOwner(f.FollowerID, subjectID); err != nil {
		return nil, err
	}
	if err := s.follows.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, f.FollowerID, f.FollowingID)
	return f, nil
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]*model.User, error) {
	return s.list(ctx, cache.KindFollowers, userID, page, pageSize, s.follows.ListFollowerIDs)
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]*model.User, error) {
	return s.list(ctx, cache.KindFollowing, userID, page, pageSize, s.follows.ListFollowingIDs)
}

func (s *relationshipService) list(ctx context.Context, kind cache.ListKind, userID string, page, pageSize int,
	load func(context.Context, string, int, int) ([]string, error)) ([]*model.User, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	ids, ok := s.cache.GetIDs(ctx, kind, userID, page, pageSize)
	if !ok {
		var err error
		ids, err = load(ctx, userID, (page-1)*pageSize, pageSize)
		if err != nil {
			return nil, err
		}
		s.cache.SetIDs(ctx, kind, userID, page, pageSize, ids)
	}
	return s.users.ListByIDs(ctx, ids)
}
