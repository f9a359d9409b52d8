package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ai-legal-analyzer/auth-service/internal/models"
	"github.com/ai-legal-analyzer/auth-service/internal/mykafka"
	pkg_hash "github.com/ai-legal-analyzer/auth-service/pkg/hash"
	"github.com/ai-legal-analyzer/auth-service/pkg/logging"
	"github.com/ai-legal-analyzer/auth-service/pkg/tokens"
)

type AuthService struct {
	Repo     CredentialStore
	Codec    *tokens.Codec
	Producer *mykafka.Producer
}

type RegisterRequest struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

// Register creates a user with default flags and returns the new id. The
// existence pre-check gives the precise conflicting field; the store's unique
// constraints remain the authority under concurrent registration.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (uint, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register", "username", req.Username)

	existing, err := s.Repo.FindUsersByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		l.Error("register_failed", "status", 500, "error", err)
		return 0, fmt.Errorf("find user: %w", err)
	}
	// Username conflict wins, even when the two fields collide on two
	// different existing rows.
	for _, u := range existing {
		if u.Username == req.Username {
			l.Warn("register_conflict", "status", 409, "field", "username")
			return 0, ErrUsernameTaken
		}
	}
	if len(existing) > 0 {
		l.Warn("register_conflict", "status", 409, "field", "email")
		return 0, ErrEmailTaken
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration; the pre-check is
			// advisory only. Re-query to name the conflicting field.
			if _, findErr := s.Repo.FindUserByUsername(ctx, req.Username); findErr == nil {
				l.Warn("register_conflict", "status", 409, "field", "username")
				return 0, ErrUsernameTaken
			}
			l.Warn("register_conflict", "status", 409, "field", "email")
			return 0, ErrEmailTaken
		}
		l.Error("register_failed", "status", 500, "error", err)
		return 0, fmt.Errorf("create user: %w", err)
	}

	s.publishEvent(ctx, user.ID, map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("register_successful", "user_id", user.ID)
	return user.ID, nil
}

// Login verifies the password and issues an access/refresh pair. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown username")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	accessExp := time.Now().Add(tokens.AccessTokenTTL)
	accessToken, err := s.Codec.CreateAccessToken(user.Username, user.ID, user.IsAdmin, user.IsVerified, accessExp)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshExp := time.Now().Add(tokens.RefreshTokenTTL)
	refreshToken, err := s.Codec.CreateRefreshToken(user.Username, user.ID, refreshExp)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	s.publishEvent(ctx, user.ID, map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("login_successful", "user_id", user.ID)
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token carrying the
// user's current flags. The refresh token itself is not rotated; only Logout
// invalidates it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := s.Codec.ParseRefresh(refreshToken)
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "error", err)
		return "", err
	}
	if claims.Type != tokens.TypeRefresh {
		l.Warn("refresh_failed", "status", 401, "reason", "wrong token type")
		return "", ErrWrongTokenType
	}
	// Defense in depth: the codec already rejects expired tokens.
	if tokens.Expired(claims.ExpiresAt, time.Now()) {
		l.Warn("refresh_failed", "status", 401, "reason", "expired")
		return "", tokens.ErrExpired
	}

	revoked, err := s.Repo.IsJTIRevoked(ctx, claims.ID)
	if err != nil {
		l.Error("refresh_failed", "status", 500, "error", err)
		return "", fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		l.Warn("refresh_failed", "status", 401, "reason", "revoked", "jti", claims.ID)
		return "", ErrTokenRevoked
	}

	user, err := s.Repo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("refresh_failed", "status", 401, "reason", "user not found")
			return "", ErrUserNotFound
		}
		l.Error("refresh_failed", "status", 500, "error", err)
		return "", fmt.Errorf("find user: %w", err)
	}

	accessExp := time.Now().Add(tokens.AccessTokenTTL)
	accessToken, err := s.Codec.CreateAccessToken(user.Username, user.ID, user.IsAdmin, user.IsVerified, accessExp)
	if err != nil {
		l.Error("refresh_failed", "status", 500, "error", err)
		return "", fmt.Errorf("create access token: %w", err)
	}

	l.Info("refresh_successful", "user_id", user.ID)
	return accessToken, nil
}

// CurrentUser resolves the caller's identity from a presented access token.
// Every protected operation goes through here first.
func (s *AuthService) CurrentUser(accessToken string) (*Identity, error) {
	claims, err := s.Codec.ParseAccess(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.UserID == 0 {
		return nil, ErrMissingClaims
	}
	if claims.ExpiresAt == nil {
		return nil, ErrMissingClaims
	}
	if tokens.Expired(claims.ExpiresAt, time.Now()) {
		return nil, tokens.ErrExpired
	}

	return &Identity{
		Username:   claims.Subject,
		ID:         claims.UserID,
		IsAdmin:    claims.IsAdmin,
		IsVerified: claims.IsVerified,
	}, nil
}

// Logout revokes the refresh token by appending its jti to the revocation
// ledger. Revoking the same token twice fails with ErrAlreadyRevoked.
func (s *AuthService) Logout(ctx context.Context, refreshToken string, caller Identity) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout", "user_id", caller.ID)

	claims, err := s.Codec.ParseRefresh(refreshToken)
	if err != nil {
		l.Warn("logout_failed", "status", 400, "error", err)
		return ErrInvalidToken
	}
	if claims.ID == "" {
		l.Warn("logout_failed", "status", 400, "reason", "missing jti")
		return ErrInvalidToken
	}

	if err := s.Repo.InsertRevokedToken(ctx, claims.ID, caller.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("logout_failed", "status", 409, "reason", "already revoked", "jti", claims.ID)
			return ErrAlreadyRevoked
		}
		l.Error("logout_failed", "status", 500, "error", err)
		return fmt.Errorf("insert revoked token: %w", err)
	}

	s.publishEvent(ctx, caller.ID, map[string]any{
		"type":     "user_logged_out",
		"user_id":  caller.ID,
		"username": caller.Username,
	})

	l.Info("logout_successful")
	return nil
}

// Event publishing is best-effort: a broker failure is logged, never
// surfaced to the caller.
func (s *AuthService) publishEvent(ctx context.Context, userID uint, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}
