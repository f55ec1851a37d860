package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/internal/model"
)

type LikeRepository interface {
	Create(ctx context.Context, l *model.Like) error
	GetByID(ctx context.Context, id string) (*model.Like, error)
	Delete(ctx context.Context, id string) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

// Create 重复点赞由唯一键拦截，上抛 gorm.ErrDuplicatedKey
func (r *likeRepository) Create(ctx context.Context, l *model.Like) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *likeRepository) GetByID(ctx context.Context, id string) (*model.Like, error) {
	var l model.Like
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *likeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Like{}, "id = ?", id).Error
}
