package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(filepath.Join(t.TempDir(), "session.json"))
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Save("tok-123", "Maria", "maria"))

	assert.Equal(t, "tok-123", s.Token())
	assert.Equal(t, "Maria", s.UserName())
	assert.Equal(t, "maria", s.Username())
	assert.Equal(t, "Bearer tok-123", s.BearerToken())
	assert.True(t, s.IsActive())
}

func TestEmptySession(t *testing.T) {
	s := newTestSession(t)

	assert.False(t, s.IsActive())
	assert.Equal(t, "", s.Token())
	assert.Equal(t, "Vendedor", s.UserName())
}

func TestClear(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Save("tok-123", "Maria", "maria"))
	require.NoError(t, s.Clear())

	assert.False(t, s.IsActive())
	assert.Equal(t, "", s.Token())
}

func TestClearWithoutSession(t *testing.T) {
	s := newTestSession(t)

	assert.NoError(t, s.Clear())
}

func TestIsActiveJWTExpiry(t *testing.T) {
	testCases := []struct {
		name   string
		token  func(t *testing.T) string
		active bool
	}{
		{
			name:   "expired jwt",
			token:  func(t *testing.T) string { return signedToken(t, time.Now().Add(-time.Hour)) },
			active: false,
		},
		{
			name:   "live jwt",
			token:  func(t *testing.T) string { return signedToken(t, time.Now().Add(time.Hour)) },
			active: true,
		},
		{
			name:   "opaque token",
			token:  func(t *testing.T) string { return "not-a-jwt" },
			active: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t)
			require.NoError(t, s.Save(tc.token(t), "Maria", "maria"))

			assert.Equal(t, tc.active, s.IsActive())
		})
	}
}
