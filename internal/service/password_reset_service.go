package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/internal/mailer"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

const resetClaim = "reset_password"

// PasswordResetService issues and verifies the time-limited tokens that
// let an account holder set a new password over email.
//
// Tokens are not invalidated when the password changes; the TTL is the
// only bound on replay.
type PasswordResetService struct {
	userRepo repository.UserRepository
	mail     mailer.Mailer
	secret   []byte
	ttl      time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewPasswordResetService(userRepo repository.UserRepository, mail mailer.Mailer, secret string, ttl time.Duration, log *zap.Logger) *PasswordResetService {
	if ttl <= 0 {
		ttl = 600 * time.Second
	}
	return &PasswordResetService{
		userRepo: userRepo,
		mail:     mail,
		secret:   []byte(secret),
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Issue signs a token binding the user id to an expiry of now+ttl.
func (s *PasswordResetService) Issue(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		resetClaim: user.ID,
		"exp":      s.now().Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the account a valid token binds to, or nil for any bad
// token: malformed, tampered, expired, or referencing a deleted account.
// Callers cannot tell the cases apart. A non-nil error means storage
// failed, not that the token was bad.
func (s *PasswordResetService) Verify(ctx context.Context, token string) (*model.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return nil, nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}
	userID, ok := claims[resetClaim].(string)
	if !ok || userID == "" {
		return nil, nil
	}
	return s.userRepo.GetByID(ctx, userID)
}

// RequestReset issues a token for the account behind email and hands it to
// the mailer. Unknown addresses are a silent no-op so the endpoint cannot
// be used to probe which emails are registered.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	token, err := s.Issue(user)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}
	expiry := s.now().Add(s.ttl)
	if err := s.mail.SendPasswordReset(ctx, user.Email, user.Username, token, expiry); err != nil {
		// Fire and forget: delivery failure is logged, never surfaced.
		s.log.Warn("reset mail delivery failed", zap.String("user_id", user.ID), zap.Error(err))
	}
	return nil
}

// CompleteReset verifies the token and stores the new password hash.
// Returns false when the token does not verify.
func (s *PasswordResetService) CompleteReset(ctx context.Context, token, newPassword string) (bool, error) {
	if newPassword == "" {
		return false, ErrPasswordRequired
	}
	user, err := s.Verify(ctx, token)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return false, err
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return false, err
	}
	s.log.Info("password reset completed", zap.String("user_id", user.ID))
	return true, nil
}
