package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/famvault/famvault/internal/windmill"
	"github.com/famvault/famvault/models"
)

// ErrNoSession is returned when no login has happened yet.
var ErrNoSession = errors.New("no active session")

// Session holds a token pair on behalf of a caller (CLI or gateway login
// flow). The core client never refreshes tokens on its own; this type is the
// call-site orchestration: inspect expiry, refresh explicitly, retry.
type Session struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	user         *models.User
}

// FromLogin captures a successful login result.
func FromLogin(res *models.LoginResult) *Session {
	s := &Session{
		accessToken:  res.AccessToken,
		refreshToken: res.RefreshToken,
		user:         res.User,
	}
	s.expiresAt = expiryOf(res.AccessToken, res.ExpiresIn)
	return s
}

// AccessToken returns the current bearer token.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// User returns the identity captured at login, if any.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// ExpiresWithin reports whether the access token expires inside d. When the
// expiry is unknown (opaque token, no expires_in) it reports true so callers
// err on the side of refreshing.
func (s *Session) ExpiresWithin(d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expiresAt.IsZero() {
		return true
	}
	return time.Until(s.expiresAt) < d
}

// Refresh swaps the token pair through the refresh RPC.
func (s *Session) Refresh(ctx context.Context, client *windmill.Client) error {
	s.mu.Lock()
	refresh := s.refreshToken
	s.mu.Unlock()
	if refresh == "" {
		return ErrNoSession
	}

	res, err := client.RefreshToken(ctx, refresh)
	if err != nil {
		return err
	}
	if !res.Success {
		if res.Error != "" {
			return fmt.Errorf("refresh rejected: %s", res.Error)
		}
		return errors.New("refresh rejected")
	}

	s.mu.Lock()
	s.accessToken = res.AccessToken
	if res.RefreshToken != "" {
		s.refreshToken = res.RefreshToken
	}
	s.expiresAt = expiryOf(res.AccessToken, res.ExpiresIn)
	s.mu.Unlock()
	return nil
}

// expiryOf resolves the token expiry, preferring the JWT exp claim. The
// signature is NOT verified: the backend owns verification, this is only a
// refresh-scheduling hint. expiresIn seconds is the fallback.
func expiryOf(token string, expiresIn int) time.Time {
	if token != "" {
		parser := jwt.NewParser()
		claims := jwt.MapClaims{}
		if _, _, err := parser.ParseUnverified(token, claims); err == nil {
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				return exp.Time
			}
		}
	}
	if expiresIn > 0 {
		return time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return time.Time{}
}
