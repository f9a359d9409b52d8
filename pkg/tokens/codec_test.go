package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec() *Codec {
	return NewCodec([]byte("test-jwt-secret"))
}

func TestCodec_AccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()
	exp := time.Now().Add(AccessTokenTTL).UTC()

	token, err := codec.CreateAccessToken("alice", 42, true, false, exp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.ParseAccess(token)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.False(t, claims.IsVerified)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestCodec_RefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()
	exp := time.Now().Add(RefreshTokenTTL).UTC()

	token, err := codec.CreateRefreshToken("alice", 42, exp)
	require.NoError(t, err)

	claims, err := codec.ParseRefresh(token)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, TypeRefresh, claims.Type)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestCodec_RefreshToken_FreshJTIPerIssuance(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()
	exp := time.Now().Add(RefreshTokenTTL)

	first, err := codec.CreateRefreshToken("alice", 42, exp)
	require.NoError(t, err)
	second, err := codec.CreateRefreshToken("alice", 42, exp)
	require.NoError(t, err)

	firstClaims, err := codec.ParseRefresh(first)
	require.NoError(t, err)
	secondClaims, err := codec.ParseRefresh(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestCodec_Parse_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	tests := []struct {
		name    string
		exp     time.Time
		wantErr error
	}{
		{name: "expired one second ago", exp: time.Now().Add(-time.Second), wantErr: ErrExpired},
		{name: "expiry equal to now", exp: time.Now().Truncate(time.Second), wantErr: ErrExpired},
		{name: "valid for an hour", exp: time.Now().Add(time.Hour), wantErr: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := codec.CreateAccessToken("alice", 42, false, false, tt.exp)
			require.NoError(t, err)

			_, err = codec.ParseAccess(token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCodec_Parse_TamperedSignature(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()
	token, err := codec.CreateAccessToken("alice", 42, false, false, time.Now().Add(time.Hour))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[10] == 'A' {
		sig[10] = 'B'
	} else {
		sig[10] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.ParseAccess(tampered)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestCodec_Parse_WrongSecret(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()
	token, err := codec.CreateAccessToken("alice", 42, false, false, time.Now().Add(time.Hour))
	require.NoError(t, err)

	other := NewCodec([]byte("another-secret"))
	_, err = other.ParseAccess(token)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestCodec_Parse_Malformed(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-valid-jwt"},
		{name: "two segments", token: "abc.def"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := codec.ParseAccess(tt.token)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestExpired_Boundary(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.True(t, Expired(nil, now))
	assert.True(t, Expired(jwt.NewNumericDate(now), now))
	assert.True(t, Expired(jwt.NewNumericDate(now.Add(-time.Second)), now))
	assert.False(t, Expired(jwt.NewNumericDate(now.Add(time.Second)), now))
}
