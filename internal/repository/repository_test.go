package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Post{}, &model.Comment{}, &model.Like{}, &model.Follow{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, name string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Password: "hash", Name: name}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}
