package state

import "hostel-backend/internal/model"

// Decision is what a view should do for the current session.
type Decision int

const (
	Allow Decision = iota
	// Wait means the session is still being resolved.
	Wait
	RedirectLogin
	RedirectHome
)

// LoginPath is where signed-out users are sent.
const LoginPath = "/"

// HomePath is the landing view of a role.
func HomePath(role model.Role) string {
	switch role {
	case model.RoleWarden:
		return "/warden/dashboard"
	case model.RoleStudent:
		return "/student/dashboard"
	default:
		return LoginPath
	}
}

// Guard decides whether a view restricted to roles may render. No roles
// means any signed-in user.
func Guard(auth AuthState, roles ...model.Role) (Decision, string) {
	if auth.Loading {
		return Wait, ""
	}
	if auth.Token == "" || auth.User == nil {
		return RedirectLogin, LoginPath
	}
	if len(roles) == 0 {
		return Allow, ""
	}
	for _, r := range roles {
		if auth.User.Role == r {
			return Allow, ""
		}
	}
	return RedirectHome, HomePath(auth.User.Role)
}
