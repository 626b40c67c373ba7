package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/go-homedir"

	"jobboard/internal/model"
)

// TokenStore persists the bearer token between calls. An absent token is "".
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

// MemoryTokenStore keeps the token for the life of the process.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func (s *MemoryTokenStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	return s.SetToken("")
}

// FileTokenStore keeps the token in a file readable only by the current user.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore expands a leading ~ in path.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand token path: %w", err)
	}
	return &FileTokenStore{path: p}, nil
}

func (s *FileTokenStore) Path() string { return s.path }

func (s *FileTokenStore) Token() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileTokenStore) SetToken(token string) error {
	if token == "" {
		return s.Clear()
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// TokenClaims is the identity carried by a token, read without verification.
type TokenClaims struct {
	UserID    string
	Role      model.Role
	Email     string
	ExpiresAt time.Time
}

func parseUnverified(token string) (jwt.MapClaims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ClaimsFromToken decodes the token payload. The signature is not checked; the
// server remains the authority.
func ClaimsFromToken(token string) (*TokenClaims, error) {
	mc, err := parseUnverified(token)
	if err != nil {
		return nil, err
	}
	out := &TokenClaims{}
	out.UserID, _ = mc["sub"].(string)
	if role, ok := mc["role"].(string); ok {
		out.Role = model.Role(role)
	}
	out.Email, _ = mc["email"].(string)
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// IsTokenExpired reports whether token is past its exp claim. Empty or
// malformed tokens count as expired; a token without exp does not.
func IsTokenExpired(token string) bool {
	mc, err := parseUnverified(token)
	if err != nil {
		return true
	}
	exp, err := mc.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return exp.Time.Before(time.Now())
}
