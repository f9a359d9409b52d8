package service

// Identity is the caller resolved from a verified access token. It is decided
// once at token verification and passed explicitly to every protected
// operation; nothing downstream re-derives it.
type Identity struct {
	Username   string `json:"username"`
	ID         uint   `json:"id"`
	IsAdmin    bool   `json:"is_admin"`
	IsVerified bool   `json:"is_verified"`
}
