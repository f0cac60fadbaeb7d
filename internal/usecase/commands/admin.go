package commands

import (
	"context"

	"github.com/google/uuid"

	"grocery-api/internal/domain/user"
	reqdto "grocery-api/internal/handler/dto/request"
	"grocery-api/internal/infra"
	"grocery-api/internal/pkg/clock"
	"grocery-api/internal/pkg/errs"
	"grocery-api/internal/pkg/password"
	"grocery-api/internal/usecase/shared"
)

var (
	ErrNotSuperAdmin     = errs.New("only super admins may create admin users")
	ErrEmailAlreadyUsed  = errs.New("email already registered")
	ErrAdminWriteFailed  = errs.New("failed to persist admin user")
	ErrInvalidAdminInput = errs.New("invalid admin user input")
)

type CreateAdminResult struct {
	AdminID uuid.UUID
}

type AdminCommands interface {
	CreateAdminUser(ctx context.Context, actorRole user.Role, req reqdto.CreateAdminUserRequest) (*CreateAdminResult, error)
}

type adminCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAdminCommands(uow shared.UnitOfWork, clock clock.Clock) AdminCommands {
	return &adminCommandsImpl{uow: uow, clock: clock}
}

func (a *adminCommandsImpl) CreateAdminUser(ctx context.Context, actorRole user.Role, req reqdto.CreateAdminUserRequest) (*CreateAdminResult, error) {
	if actorRole != user.RoleSuperAdmin {
		return nil, ErrNotSuperAdmin
	}

	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAdminInput)
	}
	pw, err := user.NewPassword(req.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAdminInput)
	}
	role, err := user.NewRole(req.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAdminInput)
	}

	hash, err := password.HashPassword(pw.Value())
	if err != nil {
		return nil, errs.Mark(err, ErrAdminWriteFailed)
	}

	admin, err := user.NewAdmin(email, hash, req.FirstName, req.LastName, role, a.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAdminInput)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Create(ctx, tx.DB(), admin); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailAlreadyUsed
			}
			return errs.Mark(err, ErrAdminWriteFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateAdminResult{AdminID: admin.ID}, nil
}
