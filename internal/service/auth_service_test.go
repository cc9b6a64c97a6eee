package service_test

import (
	"context"
	"testing"

	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/service"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, "Ann", "ann@example.com", "pa55word", domain.RoleAthlete)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	assert.False(t, user.ID.IsZero())

	token, loggedIn, err := f.auth.Login(ctx, "ann@example.com", "pa55word")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(f.auth.GetJWTSecret()), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims["uid"])
	assert.Equal(t, "athlete", claims["role"])

	got, err := f.auth.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
}

func TestAuthService_RegisterRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "Ann", "ann@example.com", "pw", domain.RoleCoach)
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, "Ann", "ann@example.com", "pw", domain.RoleCoach)
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)

	_, err = f.auth.Register(ctx, "Bob", "bob@example.com", "pw", domain.Role("admin"))
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = f.auth.Register(ctx, "Bob", "not-an-email", "pw", domain.RoleAthlete)
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = f.auth.Register(ctx, "", "bob@example.com", "pw", domain.RoleAthlete)
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "Ann", "ann@example.com", "right", domain.RoleAthlete)
	require.NoError(t, err)

	_, _, err = f.auth.Login(ctx, "ann@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)

	_, _, err = f.auth.Login(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)

	_, err = f.auth.GetUser(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
