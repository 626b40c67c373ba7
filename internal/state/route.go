package state

import "jobboard/internal/model"

// Access is the outcome of gating a view on the auth state.
type Access int

const (
	Allow Access = iota
	// Wait means authentication is still being resolved.
	Wait
	RedirectLogin
	RedirectDashboard
)

func (a Access) String() string {
	switch a {
	case Allow:
		return "allow"
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	}
	return "unknown"
}

// Authorize gates a view that needs an authenticated user and, when required
// is non-empty, that exact role.
func (s AuthState) Authorize(required model.Role) Access {
	switch {
	case s.IsLoading:
		return Wait
	case !s.IsAuthenticated:
		return RedirectLogin
	case required != "" && (s.User == nil || s.User.Role != required):
		return RedirectDashboard
	}
	return Allow
}

// Authorize applies AuthState.Authorize to the current state.
func (s *Store) Authorize(required model.Role) Access {
	return s.State().Auth.Authorize(required)
}
