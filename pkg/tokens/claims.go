package tokens

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the payload of a short-lived access token. The flags are
// snapshotted at issue time; Refresh re-reads them from the store.
type AccessClaims struct {
	UserID     uint `json:"id"`
	IsAdmin    bool `json:"is_admin"`
	IsVerified bool `json:"is_verified"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token. The jti (RegisteredClaims.ID)
// is minted fresh per issuance and is the revocation key. Type distinguishes a
// refresh token from an access token so one cannot stand in for the other.
type RefreshClaims struct {
	UserID uint   `json:"id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}
