package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/internal/model"
)

func TestLikeRepository_DuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	likes := NewLikeRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "a@example.com", "Al")
	p := &model.Post{Content: "hi", AuthorID: u.ID}
	require.NoError(t, posts.Create(ctx, p))

	require.NoError(t, likes.Create(ctx, &model.Like{UserID: u.ID, PostID: p.ID}))
	err := likes.Create(ctx, &model.Like{UserID: u.ID, PostID: p.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var cnt int64
	require.NoError(t, db.Model(&model.Like{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)
}

func TestPostRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	likes := NewLikeRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "a@example.com", "Al")
	p := &model.Post{Content: "hi", AuthorID: u.ID}
	require.NoError(t, posts.Create(ctx, p))
	require.NoError(t, comments.Create(ctx, &model.Comment{UserID: u.ID, PostID: p.ID, Content: "nice"}))
	require.NoError(t, likes.Create(ctx, &model.Like{UserID: u.ID, PostID: p.ID}))

	require.NoError(t, posts.Delete(ctx, p.ID))

	for _, m := range []any{&model.Post{}, &model.Comment{}, &model.Like{}} {
		var cnt int64
		require.NoError(t, db.Model(m).Count(&cnt).Error)
		assert.EqualValues(t, 0, cnt)
	}
}
