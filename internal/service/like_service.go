package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/internal/model"
	"github.com/d60-Lab/social-api/internal/repository"
)

type LikeService interface {
	Like(ctx context.Context, userID, postID string) (*model.Like, error)
	// Unlike 仅点赞者本人可撤销，返回被删除的点赞
	Unlike(ctx context.Context, id, subjectID string) (*model.Like, error)
}

type likeService struct {
	likes repository.LikeRepository
	posts repository.PostRepository
}

func NewLikeService(likes repository.LikeRepository, posts repository.PostRepository) LikeService {
	return &likeService{likes: likes, posts: posts}
}

func (s *likeService) Like(ctx context.Context, userID, postID string) (*model.Like, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	l := &model.Like{UserID: userID, PostID: postID}
	if err := s.likes.Create(ctx, l); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}
	return l, nil
}

func (s *likeService) Unlike(ctx context.Context, id, subjectID string) (*model.Like, error) {
	l, err := s.likes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := requireOwner(l.UserID, subjectID); err != nil {
		return nil, err
	}
	if err := s.likes.Delete(ctx, id); err != nil {
		return nil, err
	}
	return l, nil
}
