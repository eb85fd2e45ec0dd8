package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/mailer"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Follow{}))
	return db
}

func newUserService(t *testing.T, db *gorm.DB) UserService {
	t.Helper()
	return NewUserService(repository.NewUserRepository(db), zap.NewNop())
}

func registerUser(t *testing.T, svc UserService, username string) *model.User {
	t.Helper()
	u, err := svc.Register(context.Background(), username, username+"@example.com", "secret")
	require.NoError(t, err)
	return u
}

// capturingMailer records what the reset flow hands to the mail boundary.
type capturingMailer struct {
	to     string
	token  string
	expiry time.Time
	sends  int
}

func (m *capturingMailer) SendPasswordReset(_ context.Context, to, _, token string, expiry time.Time) error {
	m.to = to
	m.token = token
	m.expiry = expiry
	m.sends++
	return nil
}

var _ mailer.Mailer = (*capturingMailer)(nil)
