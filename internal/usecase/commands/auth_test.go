//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-api/internal/domain/user"
	reqdto "grocery-api/internal/handler/dto/request"
	"grocery-api/internal/pkg/jwt"
	"grocery-api/internal/pkg/password"
	"grocery-api/internal/usecase/commands"
	"grocery-api/internal/usecase/queries"
	"grocery-api/tests/common/fake"
)

const (
	adminEmail    = "ops@example.com"
	adminPassword = "correct-horse-battery"
)

type authFixture struct {
	cmds    commands.AuthCommands
	uow     *fake.UnitOfWork
	store   *fake.UserReadStore
	jwt     *jwt.Service
	adminID uuid.UUID
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	uow := fake.NewUnitOfWork()
	store := fake.NewUserReadStore()
	jwtService := jwt.NewService("auth-test-secret", time.Hour)

	adminID := uuid.New()
	hash, err := password.HashPassword(adminPassword)
	require.NoError(t, err)
	store.Put(&queries.AuthorizedUserView{
		ID:        adminID,
		Email:     adminEmail,
		FirstName: "Maya",
		LastName:  "Okafor",
		Role:      "admin",
	}, hash)

	return &authFixture{
		cmds:    commands.NewAuthCommands(uow, store, jwtService),
		uow:     uow,
		store:   store,
		jwt:     jwtService,
		adminID: adminID,
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)

	result, err := f.cmds.Login(context.Background(), reqdto.LoginRequest{
		Email:    adminEmail,
		Password: adminPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, f.adminID, result.UserID)
	assert.Equal(t, "admin", result.Role)

	claims, err := f.jwt.ValidateTokenWithPurpose(result.AccessToken, jwt.PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, f.adminID, claims.UserID)
	assert.Equal(t, user.RoleAdmin, claims.Role)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@example.com", password: adminPassword},
		{name: "wrong password", email: adminEmail, password: "not-the-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			_, err := f.cmds.Login(context.Background(), reqdto.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
		})
	}
}

func TestLogin_PhoneOnlyAccountHasNoPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.store.Put(&queries.AuthorizedUserView{
		ID:    uuid.New(),
		Email: "customer@example.com",
		Role:  "customer",
	}, "")

	_, err := f.cmds.Login(context.Background(), reqdto.LoginRequest{
		Email:    "customer@example.com",
		Password: "anything-at-all",
	})
	assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
}

func TestRegisterDeviceToken(t *testing.T) {
	f := newAuthFixture(t)

	userID := uuid.New()
	f.uow.Tx.UserRepo.Users[userID] = &user.User{ID: userID, Phone: "+15550001111", Role: user.RoleCustomer}

	require.NoError(t, f.cmds.RegisterDeviceToken(context.Background(), userID, "fcm-token-1"))
	// Re-registering the same token is a no-op.
	require.NoError(t, f.cmds.RegisterDeviceToken(context.Background(), userID, "fcm-token-1"))
	require.NoError(t, f.cmds.RegisterDeviceToken(context.Background(), userID, "fcm-token-2"))

	assert.Equal(t, []string{"fcm-token-1", "fcm-token-2"}, f.uow.Tx.UserRepo.Users[userID].DeviceTokens)
}

func TestRegisterDeviceToken_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	err := f.cmds.RegisterDeviceToken(context.Background(), uuid.New(), "fcm-token-1")
	assert.ErrorIs(t, err, commands.ErrDeviceTokenFailed)
}
