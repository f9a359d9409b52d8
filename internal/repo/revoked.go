package repo

import (
	"context"

	"github.com/ai-legal-analyzer/auth-service/internal/models"
)

func (r *GormRepo) IsJTIRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertRevokedToken appends a revocation marker. A second insert with the
// same jti fails with gorm.ErrDuplicatedKey; the ledger is never updated.
func (r *GormRepo) InsertRevokedToken(ctx context.Context, jti string, userID uint) error {
	revoked := models.RevokedToken{
		JTI:    jti,
		UserID: userID,
	}
	return r.DB.WithContext(ctx).Create(&revoked).Error
}
