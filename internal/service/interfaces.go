package service

import (
	"context"

	"github.com/ai-legal-analyzer/auth-service/internal/models"
)

// CredentialStore is the persistence surface the engines depend on.
// *repo.GormRepo is the production implementation.
type CredentialStore interface {
	FindUsersByUsernameOrEmail(ctx context.Context, username, email string) ([]models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUserFlags(ctx context.Context, id uint, flags map[string]any) error
	IsJTIRevoked(ctx context.Context, jti string) (bool, error)
	InsertRevokedToken(ctx context.Context, jti string, userID uint) error
}
