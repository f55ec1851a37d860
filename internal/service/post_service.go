package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/internal/model"
	"github.com/d60-Lab/social-api/internal/repository"
)

type PostService interface {
	Create(ctx context.Context, authorID, content string) (*model.Post, error)
	// List 按创建时间倒序，LikedByUser 按 viewer 派生
	List(ctx context.Context, viewerID string) ([]*model.Post, error)
	Get(ctx context.Context, id, viewerID string) (*model.Post, error)
	// Delete 仅作者可删，返回被删除的帖子
	Delete(ctx context.Context, id, subjectID string) (*model.Post, error)
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, authorID, content string) (*model.Post, error) {
	p := &model.Post{Content: content, AuthorID: authorID}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func markLiked(p *model.Post, viewerID string) {
	for _, l := range p.Likes {
		if l.UserID == viewerID {
			p.LikedByUser = true
			return
		}
	}
}

func (s *postService) List(ctx context.Context, viewerID string) ([]*model.Post, error) {
	res, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range res {
		markLiked(p, viewerID)
	}
	return res, nil
}

func (s *postService) Get(ctx context.Context, id, viewerID string) (*model.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	markLiked(p, viewerID)
	return p, nil
}

func (s *postService) Delete(ctx context.Context, id, subjectID string) (*model.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := requireOwner(p.AuthorID, subjectID); err != nil {
		return nil, err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}
