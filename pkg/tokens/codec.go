package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenTTL  = 20 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	TypeRefresh = "refresh"
)

var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// Codec signs and verifies the service's tokens with a single symmetric
// HS256 secret, fixed at startup.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

func (c *Codec) CreateAccessToken(username string, userID uint, isAdmin, isVerified bool, exp time.Time) (string, error) {
	claims := AccessClaims{
		UserID:     userID,
		IsAdmin:    isAdmin,
		IsVerified: isVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *Codec) CreateRefreshToken(username string, userID uint, exp time.Time) (string, error) {
	claims := RefreshClaims{
		UserID: userID,
		Type:   TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        NewJTI(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *Codec) ParseAccess(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := c.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (c *Codec) ParseRefresh(tokenStr string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := c.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (c *Codec) parse(tokenStr string, claims jwt.Claims) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return ErrSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return ErrExpired
		default:
			return ErrMalformed
		}
	}
	if !tkn.Valid {
		return ErrMalformed
	}
	return nil
}

// Expired reports whether exp has passed. A token whose expiry equals the
// current instant is already expired.
func Expired(exp *jwt.NumericDate, now time.Time) bool {
	if exp == nil {
		return true
	}
	return !now.Before(exp.Time)
}

func NewJTI() string { return uuid.NewString() }
