package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/famvault/famvault/config"
	"github.com/famvault/famvault/internal/windmill"
	"github.com/famvault/famvault/models"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("irrelevant-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestExpiryFromJWTClaim(t *testing.T) {
	exp := time.Now().Add(2 * time.Minute)
	s := FromLogin(&models.LoginResult{AccessToken: signedToken(t, exp)})

	if !s.ExpiresWithin(5 * time.Minute) {
		t.Error("token expiring in 2m should report ExpiresWithin(5m)")
	}
	if s.ExpiresWithin(time.Minute) {
		t.Error("token expiring in 2m should not report ExpiresWithin(1m)")
	}
}

func TestExpiryFallsBackToExpiresIn(t *testing.T) {
	s := FromLogin(&models.LoginResult{AccessToken: "opaque-token", ExpiresIn: 3600})
	if s.ExpiresWithin(time.Minute) {
		t.Error("token with expires_in=3600 should not expire within 1m")
	}
	if !s.ExpiresWithin(2 * time.Hour) {
		t.Error("token with expires_in=3600 should expire within 2h")
	}
}

func TestUnknownExpiryErrsTowardRefresh(t *testing.T) {
	s := FromLogin(&models.LoginResult{AccessToken: "opaque-token"})
	if !s.ExpiresWithin(time.Second) {
		t.Error("unknown expiry should always report ExpiresWithin")
	}
}

func TestRefreshSwapsPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"access_token":"new-at","refresh_token":"new-rt","expires_in":900}`))
	}))
	defer srv.Close()
	client := windmill.New(config.BackendConfig{URL: srv.URL, Workspace: "famvault"})

	s := FromLogin(&models.LoginResult{AccessToken: "old-at", RefreshToken: "old-rt", ExpiresIn: 1})
	if err := s.Refresh(context.Background(), client); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if s.AccessToken() != "new-at" {
		t.Errorf("access token = %q, want new-at", s.AccessToken())
	}
	if s.ExpiresWithin(time.Minute) {
		t.Error("refreshed token should not be near expiry")
	}
}

func TestRefreshWithoutSession(t *testing.T) {
	s := &Session{}
	if err := s.Refresh(context.Background(), nil); err != ErrNoSession {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestRefreshRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"refresh token revoked"}`))
	}))
	defer srv.Close()
	client := windmill.New(config.BackendConfig{URL: srv.URL, Workspace: "famvault"})

	s := FromLogin(&models.LoginResult{AccessToken: "at", RefreshToken: "rt"})
	err := s.Refresh(context.Background(), client)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if s.AccessToken() != "at" {
		t.Error("rejected refresh must not mutate the session")
	}
}
