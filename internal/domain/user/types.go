package user

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role grants access to the admin surface.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
