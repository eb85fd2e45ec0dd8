package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Follow{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) *model.User {
	t.Helper()
	u := &model.User{ID: id, Username: id, Email: id + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}
