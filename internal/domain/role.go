package domain

// Role type to distinguish between principal roles
type Role string

// Define constants for roles
const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
	// RoleUnauthenticated is returned when no principal is present.
	RoleUnauthenticated Role = ""
)

// DashboardRoute maps a resolved role to the page the UI should land on.
func (r Role) DashboardRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin-dashboard"
	case RoleTrainer:
		return "/trainer-dashboard"
	case RoleMember:
		return "/user-dashboard"
	default:
		return "/login"
	}
}

func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleTrainer || r == RoleAdmin
}
