package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gordopods/storefront/internal/models"
	"github.com/gordopods/storefront/internal/repo"
	"github.com/gordopods/storefront/pkg/hash"
	"github.com/gordopods/storefront/pkg/logging"
	middleware "github.com/gordopods/storefront/pkg/middleware/auth"
	"github.com/gordopods/storefront/pkg/tokens"
)

const DefaultAccessTTL = 8 * time.Hour

type AuthService struct {
	Repo      AdminRepository
	JWTSecret []byte
	AccessTTL time.Duration
}

type LoginResult struct {
	AccessToken string
	AccessExp   time.Time
}

// EnsureAdmin seeds the configured admin account on first start.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.ensure_admin")

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password required", ErrValidation)
	}
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	err = s.Repo.CreateAdminIfNotExists(ctx, &models.AdminUser{
		Username:     username,
		PasswordHash: pwHash,
		Role:         middleware.RoleAdmin,
	})
	if errors.Is(err, repo.ErrAdminAlreadyExists) {
		l.Debug("admin_exists", "username", username)
		return nil
	}
	if err != nil {
		return err
	}
	l.Info("admin_created", "username", username)
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.FindAdmin(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown user")
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "wrong password")
		return nil, ErrUnauthorized
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	exp := time.Now().Add(ttl).UTC()
	token, err := tokens.NewAccessToken(user.ID, user.Role, exp, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, AccessExp: exp}, nil
}
