package repo

import (
	"context"

	"github.com/ai-legal-analyzer/auth-service/internal/models"
)

// FindUsersByUsernameOrEmail returns every user colliding with either field
// in one query. Both fields can collide on two different rows, so the result
// is a slice; an empty slice means no conflict.
func (r *GormRepo) FindUsersByUsernameOrEmail(ctx context.Context, username, email string) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

// UpdateUserFlags applies a partial update of the boolean account flags,
// e.g. map[string]any{"is_admin": true}. Committed as a single statement.
func (r *GormRepo) UpdateUserFlags(ctx context.Context, id uint, flags map[string]any) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(flags).Error
}
