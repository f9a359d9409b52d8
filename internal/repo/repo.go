package repo

import "gorm.io/gorm"

// GormRepo is the credential store. Pure data access: uniqueness and
// not-found conditions are reported through gorm's translated errors
// (gorm.ErrDuplicatedKey, gorm.ErrRecordNotFound); policy lives in service.
type GormRepo struct {
	DB *gorm.DB
}
