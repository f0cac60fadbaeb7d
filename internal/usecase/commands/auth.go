package commands

import (
	"context"

	"github.com/google/uuid"

	"grocery-api/internal/domain/user"
	reqdto "grocery-api/internal/handler/dto/request"
	"grocery-api/internal/pkg/errs"
	"grocery-api/internal/pkg/jwt"
	"grocery-api/internal/pkg/password"
	"grocery-api/internal/usecase/queries"
	"grocery-api/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrDeviceTokenFailed  = errs.New("failed to register device token")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        string
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RegisterDeviceToken(ctx context.Context, userID uuid.UUID, token string) error
}

type authCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.UserReadStore
	jwt       *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:       uow,
		readStore: readStore,
		jwt:       jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	view, hash, err := a.readStore.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		return nil, ErrInvalidCredentials
	}
	if hash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(hash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwt.GenerateAccessToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      view.ID,
		Role:        role.String(),
		AccessToken: token,
	}, nil
}

// RegisterDeviceToken records an FCM device token for push delivery.
// Duplicate registrations are ignored.
func (a *authCommandsImpl) RegisterDeviceToken(ctx context.Context, userID uuid.UUID, token string) error {
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().AddDeviceToken(ctx, tx.DB(), userID, token); err != nil {
			return errs.Mark(err, ErrDeviceTokenFailed)
		}
		return nil
	})
}
