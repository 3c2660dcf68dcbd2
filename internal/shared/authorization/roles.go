package authorization

// UserRole is the role carried in a consultant's session token.
type UserRole string

const (
	// RoleSuperuser manages parlours across tenants.
	RoleSuperuser UserRole = "superuser"
	// RoleAdmin manages one parlour: plans, consultants and everything below.
	RoleAdmin UserRole = "admin"
	// RoleConsultant captures applicants, members and payments.
	RoleConsultant UserRole = "consultant"
	// RoleService is assigned to HTTP Basic service accounts.
	RoleService UserRole = "service"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsSuperuser() bool {
	return r == RoleSuperuser
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleSuperuser, RoleAdmin, RoleConsultant:
		return true
	}
	return false
}

// ParseUserRole returns the role for s, falling back to consultant.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleConsultant
}
