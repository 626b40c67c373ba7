package state

import (
	"context"

	"jobboard/internal/client"
	"jobboard/internal/model"
)

const (
	AuthLogin         = "auth/login"
	AuthRegister      = "auth/register"
	AuthLoadUser      = "auth/loadUser"
	AuthUpdateProfile = "auth/updateProfile"
	AuthLogout        = "auth/logout"
	AuthClearError    = "auth/clearError"
)

type AuthState struct {
	User            *model.User
	Token           string
	IsLoading       bool
	IsAuthenticated bool
	Error           string
}

func (s AuthState) clone() AuthState {
	s.User = clonePtr(s.User)
	return s
}

func reduceAuth(s AuthState, a Action) AuthState {
	switch a.Type {
	case AuthLogin, AuthRegister:
		switch a.Phase {
		case Pending:
			s.IsLoading, s.Error = true, ""
		case Fulfilled:
			res := a.Payload.(*client.AuthResponse)
			s.IsLoading, s.IsAuthenticated = false, true
			s.User, s.Token = res.User, res.Token
		case Rejected:
			s.IsLoading, s.Error = false, a.Error
		}
	case AuthLoadUser:
		switch a.Phase {
		case Pending:
			s.IsLoading = true
		case Fulfilled:
			s.IsLoading, s.IsAuthenticated = false, true
			s.User = a.Payload.(*model.User)
		case Rejected:
			s.IsLoading, s.IsAuthenticated = false, false
			s.Token = ""
		}
	case AuthUpdateProfile:
		switch a.Phase {
		case Pending:
			s.IsLoading, s.Error = true, ""
		case Fulfilled:
			s.IsLoading = false
			s.User = a.Payload.(*model.User)
		case Rejected:
			s.IsLoading, s.Error = false, a.Error
		}
	case AuthLogout:
		s.User, s.Token = nil, ""
		s.IsAuthenticated = false
		s.Error = ""
	case AuthClearError:
		s.Error = ""
	}
	return s
}

// Login authenticates and persists the token.
func (s *Store) Login(ctx context.Context, creds client.Credentials) (*client.AuthResponse, error) {
	return thunk(s, AuthLogin, "Login failed", func() (*client.AuthResponse, error) {
		return s.api.Login(ctx, creds)
	})
}

// Register creates the account and persists the token.
func (s *Store) Register(ctx context.Context, reg client.Registration) (*client.AuthResponse, error) {
	return thunk(s, AuthRegister, "Registration failed", func() (*client.AuthResponse, error) {
		return s.api.Register(ctx, reg)
	})
}

// LoadUser restores the session from the stored token. On failure the token
// is discarded.
func (s *Store) LoadUser(ctx context.Context) (*model.User, error) {
	u, err := thunk(s, AuthLoadUser, "Failed to load user", func() (*model.User, error) {
		return s.api.Profile(ctx)
	})
	if err != nil {
		_ = s.tokens.Clear()
	}
	return u, err
}

func (s *Store) UpdateProfile(ctx context.Context, upd client.ProfileUpdate) (*model.User, error) {
	return thunk(s, AuthUpdateProfile, "Failed to update profile", func() (*model.User, error) {
		return s.api.UpdateProfile(ctx, upd)
	})
}

// Logout forgets the user and removes the stored token.
func (s *Store) Logout() error {
	err := s.tokens.Clear()
	s.Dispatch(Action{Type: AuthLogout})
	return err
}

func (s *Store) ClearAuthError() {
	s.Dispatch(Action{Type: AuthClearError})
}
