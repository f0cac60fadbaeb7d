package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"grocery-api/internal/domain/user"
	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const userColumns = `id, COALESCE(phone, ''), COALESCE(email, ''), first_name, last_name,
	role, password_hash, device_tokens, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO users (id, phone, email, first_name, last_name, role, password_hash, device_tokens, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $9)`,
		u.ID, u.Phone, u.Email, u.FirstName, u.LastName, u.Role, u.PasswordHash,
		u.DeviceTokens, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return infra.WrapRepoErr("user already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*user.User, error) {
	row := dbtx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row, "user not found")
}

func (r *UserRepository) FindByPhone(ctx context.Context, dbtx db.DBTX, phone string) (*user.User, error) {
	row := dbtx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
	return scanUser(row, "user not found by phone")
}

func (r *UserRepository) FindByEmail(ctx context.Context, dbtx db.DBTX, email string) (*user.User, error) {
	row := dbtx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row, "user not found by email")
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, dbtx db.DBTX, id uuid.UUID, passwordHash string) error {
	tag, err := dbtx.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return infra.WrapRepoErr("failed to update password", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

// AddDeviceToken registers a push token, ignoring duplicates.
func (r *UserRepository) AddDeviceToken(ctx context.Context, dbtx db.DBTX, id uuid.UUID, token string) error {
	_, err := dbtx.Exec(ctx, `
		UPDATE users SET device_tokens = array_append(device_tokens, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(device_tokens))`, id, token)
	if err != nil {
		return infra.WrapRepoErr("failed to add device token", err)
	}
	return nil
}

func scanUser(row pgx.Row, notFoundMsg string) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Phone, &u.Email, &u.FirstName, &u.LastName,
		&u.Role, &u.PasswordHash, &u.DeviceTokens, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(notFoundMsg, err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan user", err)
	}
	return &u, nil
}
