package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	return &AuthService{
		Repo:      newTestRepo(t),
		JWTSecret: []byte("test-jwt-secret"),
	}
}

func TestAuthService_Register(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "test_user", "password", "")
	require.NoError(t, err)
	assert.Equal(t, "test_user", user.Username)
	assert.Equal(t, "customer", user.Role)
	assert.NotEqual(t, "password", user.PasswordHash)

	_, err = svc.Register(ctx, "test_user", "other", "")
	require.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret"},
		{name: "empty password", username: "user", password: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.password, "")
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Login_SetsExpectedClaims(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "test_user", "password", "restaurant")
	require.NoError(t, err)

	tokenString, err := svc.Login(ctx, "test_user", "password")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return svc.JWTSecret, nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)

	assert.Equal(t, float64(user.ID), claims["sub"])
	assert.Equal(t, "restaurant", claims["role"])
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "test_user", "password", "")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "test_user", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "no_such_user", "password")
	require.ErrorIs(t, err, ErrUnauthorized)
}
