package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const defaultUserName = "Vendedor"

// Session stores the authenticated session (token and display name) in a
// small JSON file so it survives between invocations.
type Session struct {
	path string

	mu sync.Mutex
}

type sessionData struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

func NewSession(path string) *Session {
	return &Session{path: path}
}

func (s *Session) Save(token string, name string, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to prepare session dir: %w", err)
	}

	data, err := json.Marshal(sessionData{Token: token, Name: name, Username: username})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear invalidates the local session (logout). A missing file is fine.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Session) Token() string {
	return s.load().Token
}

func (s *Session) UserName() string {
	if name := s.load().Name; name != "" {
		return name
	}
	return defaultUserName
}

func (s *Session) Username() string {
	return s.load().Username
}

// IsActive reports whether a usable session exists. When the token is a JWT
// its expiry claim is inspected locally (without signature verification, the
// server is the authority on validity). Opaque tokens count as active and
// are left for the server to reject with a 401.
func (s *Session) IsActive() bool {
	token := s.Token()
	if token == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return time.Now().Before(claims.ExpiresAt.Time)
}

// BearerToken formats the stored token for an Authorization header. An empty
// token yields "Bearer " and surfaces as a 401 from the server.
func (s *Session) BearerToken() string {
	return "Bearer " + s.Token()
}

func (s *Session) load() sessionData {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return sessionData{}
	}
	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return sessionData{}
	}
	return data
}
