// Package auth issues and verifies the bearer tokens of the API and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jobboard/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
)

// Claims is the verified identity carried by a token.
type Claims struct {
	UserID    string
	Role      model.Role
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager signs and verifies HS256 tokens with a shared secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of generated tokens.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Generate issues a token for u valid for the manager's TTL.
func (m *TokenManager) Generate(u *model.User) (string, error) {
	if u == nil || u.ID == "" {
		return "", fmt.Errorf("%w: sub", ErrMissingClaim)
	}
	now := m.now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"role":  string(u.Role),
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks the signature and expiry of tokenString and returns its claims.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claimsFromMap(mc)
}

func claimsFromMap(mc jwt.MapClaims) (*Claims, error) {
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: sub", ErrMissingClaim)
	}
	role, _ := mc["role"].(string)
	if !model.Role(role).Valid() {
		return nil, fmt.Errorf("%w: role", ErrMissingClaim)
	}
	email, _ := mc["email"].(string)

	c := &Claims{UserID: sub, Role: model.Role(role), Email: email}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
