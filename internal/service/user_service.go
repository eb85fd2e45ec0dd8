package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/pagination"
)

const (
	maxUsernameLen = 64
	maxEmailLen    = 120
	maxAboutMeLen  = 140
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameTooLong    = errors.New("username too long")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailTooLong       = errors.New("email too long")
	ErrPasswordRequired   = errors.New("password is required")
	ErrAboutMeTooLong     = errors.New("about_me exceeds 140 characters")
)

// UserService owns account lifecycle: registration, credential checks,
// profile edits, the last_seen touch and the user directory.
//
// Username comparison is case-sensitive; uniqueness is whatever the unique
// index on the column enforces under the database's default collation.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID, username, aboutMe string) (*model.User, error)
	TouchLastSeen(ctx context.Context, userID string)
	List(ctx context.Context, page, pageSize int) (pagination.Page[*model.User], error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{userRepo: userRepo, log: log, now: time.Now}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	switch {
	case username == "":
		return nil, ErrUsernameRequired
	case len(username) > maxUsernameLen:
		return nil, ErrUsernameTooLong
	case email == "":
		return nil, ErrEmailRequired
	case len(email) > maxEmailLen:
		return nil, ErrEmailTooLong
	case password == "":
		return nil, ErrPasswordRequired
	}

	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		LastSeen:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost the race against a concurrent registration with the same
		// username or email; report it as the ordinary duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateOf(ctx, username)
		}
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("username", username))
	return user, nil
}

func (s *userService) duplicateOf(ctx context.Context, username string) error {
	if u, err := s.userRepo.GetByUsername(ctx, username); err == nil && u != nil {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

// Authenticate reports the same failure for an unknown username and a bad
// password.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !checkPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID, username, aboutMe string) (*model.User, error) {
	switch {
	case username == "":
		return nil, ErrUsernameRequired
	case len(username) > maxUsernameLen:
		return nil, ErrUsernameTooLong
	case len([]rune(aboutMe)) > maxAboutMeLen:
		return nil, ErrAboutMeTooLong
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if username != user.Username {
		if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, ErrUsernameTaken
		}
	}

	user.Username = username
	user.AboutMe = aboutMe
	user.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// TouchLastSeen is fire-and-forget: a lost update just means last_seen
// lags by one request.
func (s *userService) TouchLastSeen(ctx context.Context, userID string) {
	if err := s.userRepo.TouchLastSeen(ctx, userID, s.now()); err != nil {
		s.log.Warn("touch last_seen failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *userService) List(ctx context.Context, page, pageSize int) (pagination.Page[*model.User], error) {
	page, pageSize = pagination.Clamp(page, pageSize, 10)
	users, err := s.userRepo.List(ctx, pagination.Offset(page, pageSize), pageSize)
	if err != nil {
		return pagination.Page[*model.User]{}, err
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return pagination.Page[*model.User]{}, err
	}
	return pagination.New(users, page, pageSize, total), nil
}
