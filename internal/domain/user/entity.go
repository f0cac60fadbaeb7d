package user

import (
	"time"

	"github.com/google/uuid"
)

// User covers both storefront customers (phone-verified, may have no
// email) and admin users (email+password, staff roles).
type User struct {
	ID           uuid.UUID
	Phone        string
	Email        string
	FirstName    string
	LastName     string
	Role         Role
	PasswordHash string
	DeviceTokens []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCustomer creates a phone-verified storefront user.
func NewCustomer(phone Phone, now time.Time) *User {
	return &User{
		ID:        uuid.New(),
		Phone:     phone.Value(),
		Role:      RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewAdmin creates a staff user. The password hash is produced by the
// caller so the domain never sees plaintext beyond policy validation.
func NewAdmin(email Email, passwordHash, firstName, lastName string, role Role, now time.Time) (*User, error) {
	if !role.IsValid() || !role.IsStaff() {
		return nil, ErrInvalidRole
	}
	return &User{
		ID:           uuid.New(),
		Email:        email.Value(),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
