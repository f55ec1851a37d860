package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/internal/cache"
	"github.com/d60-Lab/social-api/internal/model"
	"github.com/d60-Lab/social-api/internal/repository"
	"github.com/d60-Lab/social-api/pkg/avatar"
	"github.com/d60-Lab/social-api/pkg/jwt"
)

type env struct {
	db       *gorm.DB
	users    repository.UserRepository
	follows  repository.FollowRepository
	tokens   *jwt.Manager
	avatars  *avatar.Generator
	userSvc  UserService
	postSvc  PostService
	cmtSvc   CommentService
	likeSvc  LikeService
	relSvc   RelationshipService
	uploads  string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Post{}, &model.Comment{}, &model.Like{}, &model.Follow{},
	))

	uploads := t.TempDir()
	avatars, err := avatar.NewGenerator(uploads)
	require.NoError(t, err)
	tokens := jwt.NewManager("test-secret", time.Hour)

	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	likes := repository.NewLikeRepository(db)
	follows := repository.NewFollowRepository(db)

	var noCache *cache.FollowerCache
	return &env{
		db:      db,
		users:   users,
		follows: follows,
		tokens:  tokens,
		avatars: avatars,
		userSvc: NewUserService(users, follows, tokens, avatars),
		postSvc: NewPostService(posts),
		cmtSvc:  NewCommentService(comments, posts),
		likeSvc: NewLikeService(likes, posts),
		relSvc:  NewRelationshipService(follows, users, noCache),
		uploads: uploads,
	}
}

func (e *env) register(t *testing.T, email, name string) *model.User {
	t.Helper()
	u, err := e.userSvc.Register(context.Background(), email, "password", name)
	require.NoError(t, err)
	return u
}
