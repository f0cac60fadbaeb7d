//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-api/internal/domain/user"
	"grocery-api/internal/pkg/jwt"
)

const secret = "unit-test-secret"

func TestAccessToken(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, user.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, jwt.PurposeAccess, claims.Purpose)
	assert.Empty(t, claims.Phone)
}

func TestCustomToken(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateCustomToken(userID, user.RoleCustomer, "+15550001111")
	require.NoError(t, err)

	claims, err := svc.ValidateTokenWithPurpose(token, jwt.PurposeCustom)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "+15550001111", claims.Phone)
}

func TestResetToken(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)

	token, jti, err := svc.GenerateResetToken("+15550001111")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := svc.ValidateTokenWithPurpose(token, jwt.PurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "+15550001111", claims.Phone)
	assert.Empty(t, claims.Role)
}

func TestValidateToken_WrongPurpose(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), user.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.ValidateTokenWithPurpose(token, jwt.PurposePasswordReset)
	assert.ErrorIs(t, err, jwt.ErrWrongPurpose)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := jwt.NewService(secret, -time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New(), user.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestValidateToken_Invalid(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), user.RoleCustomer)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "definitely.not.a-jwt"},
		{name: "tampered signature", token: token[:len(token)-4] + "AAAA"},
		{name: "wrong secret", token: mustSign(t, "a-different-secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		})
	}
}

func mustSign(t *testing.T, otherSecret string) string {
	t.Helper()
	token, err := jwt.NewService(otherSecret, time.Hour).GenerateAccessToken(uuid.New(), user.RoleCustomer)
	require.NoError(t, err)
	return token
}
