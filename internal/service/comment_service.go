package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/internal/model"
	"github.com/d60-Lab/social-api/internal/repository"
)

type CommentService interface {
	Create(ctx context.Context, userID, postID, content string) (*model.Comment, error)
	// Delete 仅作者可删，返回被删除的评论
	Delete(ctx context.Context, id, subjectID string) (*model.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

func (s *commentService) Create(ctx context.Context, userID, postID, content string) (*model.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c := &model.Comment{UserID: userID, PostID: postID, Content: content}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, id, subjectID string) (*model.Comment, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := requireOwner(c.UserID, subjectID); err != nil {
		return nil, err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return nil, err
	}
	return c, nil
}
