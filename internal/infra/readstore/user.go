package readstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
	"grocery-api/internal/usecase/queries"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, COALESCE(phone, ''), COALESCE(email, ''), first_name, last_name, role
		FROM users WHERE id = $1`, id)

	var v queries.AuthorizedUserView
	if err := row.Scan(&v.ID, &v.Phone, &v.Email, &v.FirstName, &v.LastName, &v.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read user view", err)
	}
	return &v, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, COALESCE(phone, ''), COALESCE(email, ''), first_name, last_name, role, password_hash
		FROM users WHERE email = $1`, email)

	var v queries.AuthorizedUserView
	var hash string
	if err := row.Scan(&v.ID, &v.Phone, &v.Email, &v.FirstName, &v.LastName, &v.Role, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to read user view", err)
	}
	return &v, hash, nil
}
