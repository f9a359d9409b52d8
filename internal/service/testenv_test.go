package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ai-legal-analyzer/auth-service/internal/models"
	"github.com/ai-legal-analyzer/auth-service/internal/repo"
	"github.com/ai-legal-analyzer/auth-service/pkg/tokens"
)

type testEnv struct {
	db    *gorm.DB
	rp    *repo.GormRepo
	auth  *AuthService
	perm  *PermissionService
	codec *tokens.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RevokedToken{}))

	rp := &repo.GormRepo{DB: db}
	codec := tokens.NewCodec([]byte("test-jwt-secret"))

	return &testEnv{
		db:    db,
		rp:    rp,
		codec: codec,
		auth:  &AuthService{Repo: rp, Codec: codec},
		perm:  &PermissionService{Repo: rp},
	}
}

func (env *testEnv) registerUser(t *testing.T, username, email, password string) uint {
	t.Helper()

	id, err := env.auth.Register(context.Background(), RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	return id
}

func (env *testEnv) makeAdmin(t *testing.T, id uint) {
	t.Helper()
	require.NoError(t, env.rp.UpdateUserFlags(context.Background(), id, map[string]any{"is_admin": true}))
}

func (env *testEnv) userByID(t *testing.T, id uint) *models.User {
	t.Helper()
	user, err := env.rp.FindUserByID(context.Background(), id)
	require.NoError(t, err)
	return user
}
