package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"          json:"id"`
	FirstName    string `gorm:"size:50;not null"                  json:"first_name"`
	LastName     string `gorm:"size:50;not null"                  json:"last_name"`
	Username     string `gorm:"size:30;uniqueIndex;not null"      json:"username"`
	Email        string `gorm:"size:255;uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"size:255;not null"                 json:"-"`
	IsActive     bool   `gorm:"not null;default:true"             json:"is_active"`
	IsAdmin      bool   `gorm:"not null;default:false"            json:"is_admin"`
	IsVerified   bool   `gorm:"not null;default:false"            json:"is_verified"`
}

// RevokedToken is an append-only ledger entry. A jti listed here permanently
// invalidates its refresh token; rows are never updated or pruned.
type RevokedToken struct {
	JTI       string    `gorm:"size:64;primaryKey"    json:"jti"`
	RevokedAt time.Time `gorm:"autoCreateTime"        json:"revoked_at"`
	UserID    uint      `gorm:"index;not null"        json:"user_id"`
}
