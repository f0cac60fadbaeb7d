package queries

import (
	"context"

	"github.com/google/uuid"
)

type AuthorizedUserView struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Role      string    `json:"role"`
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	// FindByEmail also returns the stored password hash for credential checks
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
}
