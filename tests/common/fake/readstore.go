//go:build unit

package fake

import (
	"context"

	"github.com/google/uuid"

	"grocery-api/internal/infra"
	"grocery-api/internal/usecase/queries"
)

type UserReadStore struct {
	ByID    map[uuid.UUID]*queries.AuthorizedUserView
	ByEmail map[string]*queries.AuthorizedUserView
	Hashes  map[string]string
}

func NewUserReadStore() *UserReadStore {
	return &UserReadStore{
		ByID:    make(map[uuid.UUID]*queries.AuthorizedUserView),
		ByEmail: make(map[string]*queries.AuthorizedUserView),
		Hashes:  make(map[string]string),
	}
}

func (s *UserReadStore) Put(view *queries.AuthorizedUserView, passwordHash string) {
	s.ByID[view.ID] = view
	if view.Email != "" {
		s.ByEmail[view.Email] = view
		s.Hashes[view.Email] = passwordHash
	}
}

func (s *UserReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	v, ok := s.ByID[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return v, nil
}

func (s *UserReadStore) FindByEmail(_ context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	v, ok := s.ByEmail[email]
	if !ok {
		return nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return v, s.Hashes[email], nil
}
