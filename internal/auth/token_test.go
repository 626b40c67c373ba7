package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
)

const testSecret = "test-secret-key-for-jwt-signing"

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	u := &model.User{ID: "u-1", Role: model.RoleEmployer, Email: "boss@acme.io"}

	tok, err := m.Generate(u)
	require.NoError(t, err)

	c, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, model.RoleEmployer, c.Role)
	assert.Equal(t, "boss@acme.io", c.Email)
	assert.WithinDuration(t, c.IssuedAt.Add(time.Hour), c.ExpiresAt, time.Second)
	assert.Equal(t, time.Hour, m.TTL())
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return past }
	tok, err := m.Generate(&model.User{ID: "u-1", Role: model.RoleApplicant})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Invalid(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	other, err := NewTokenManager("different-secret", time.Hour).Generate(&model.User{ID: "u-1", Role: model.RoleAdmin})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u-1", "role": "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt-token"},
		{"malformed JWT", "header.payload.signature"},
		{"wrong secret", other},
		{"alg none", none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenManager_MissingClaims(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	sign := func(c jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	_, err := m.Verify(sign(jwt.MapClaims{"role": "admin", "exp": exp}))
	assert.ErrorIs(t, err, ErrMissingClaim)

	_, err = m.Verify(sign(jwt.MapClaims{"sub": "u-1", "role": "superuser", "exp": exp}))
	assert.ErrorIs(t, err, ErrMissingClaim)

	_, err = m.Generate(&model.User{})
	assert.ErrorIs(t, err, ErrMissingClaim)
}
