package service

import "errors"

// Authentication failures. Terminal for the request; the caller needs new
// input, never a retry of the same one.
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid authentication credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWrongTokenType     = errors.New("invalid token type")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrMissingClaims      = errors.New("could not validate user")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyRevoked     = errors.New("token already revoked")
)

// Authorization / state-precondition failures.
var (
	ErrForbidden         = errors.New("admin permission required")
	ErrTargetNotFound    = errors.New("target user not found")
	ErrAlreadyAdmin      = errors.New("user is already admin")
	ErrNotAdmin          = errors.New("user is already not admin")
	ErrCannotDeleteAdmin = errors.New("cannot delete admin user")
)
