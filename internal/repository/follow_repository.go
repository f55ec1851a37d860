package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/internal/model"
)

type FollowRepository interface {
	// Create 重复关注由唯一键拦截，上抛 gorm.ErrDuplicatedKey
	Create(ctx context.Context, f *model.Follow) error
	GetByID(ctx context.Context, id string) (*model.Follow, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	ListFollowerIDs(ctx context.Context, userID string, offset, limit int) ([]string, error)
	ListFollowingIDs(ctx context.Context, userID string, offset, limit int) ([]string, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, f *model.Follow) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *followRepository) GetByID(ctx context.Context, id string) (*model.Follow, error) {
	var f model.Follow
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *followRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Follow{}, "id = ?", id).Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) ListFollowerIDs(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Select("follower_id").
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&ids).Error
	return ids, err
}

func (r *followRepository) ListFollowingIDs(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Select("following_id").
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&ids).Error
	return ids, err
}
