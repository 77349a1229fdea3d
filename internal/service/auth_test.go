package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordopods/storefront/pkg/tokens"
)

func TestAuthService_EnsureAdminAndLogin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.EnsureAdmin(ctx, "admin", "s3cret"))
	require.NoError(t, env.auth.EnsureAdmin(ctx, "admin", "other"), "seeding twice is a no-op")

	res, err := env.auth.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, env.auth.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.Subject)

	_, err = env.auth.Login(ctx, "admin", "other")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.auth.Login(ctx, "ghost", "x")
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, env.auth.EnsureAdmin(ctx, "", "x"), ErrValidation)
}
