package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/famvault/famvault/config"
	"github.com/famvault/famvault/internal/ops"
	"github.com/famvault/famvault/internal/windmill"
	"github.com/famvault/famvault/models"
)

func backendStub(t *testing.T, handler http.HandlerFunc) *windmill.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return windmill.New(config.BackendConfig{URL: srv.URL, Workspace: "famvault", Token: "svc-token"})
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginHandlerSetsCookie(t *testing.T) {
	client := backendStub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"access_token":"at","refresh_token":"rt","expires_in":900,"user":{"id":1,"email":"a@b.com","role":"admin"}}`))
	})
	h := &AuthHandler{Client: client}

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"pw"}`)
	if err := h.login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res models.LoginResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.AccessToken != "at" || res.User == nil || res.User.Role != "admin" {
		t.Errorf("result = %+v", res)
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == "auth" && ck.Value == "at" && ck.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Errorf("auth cookie not set: %v", cookies)
	}
}

func TestLoginHandlerBackendRejection(t *testing.T) {
	client := backendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Unauthorized"}}`))
	})
	h := &AuthHandler{Client: client}

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"no"}`)
	err := h.login(c)
	var apiErr *windmill.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected backend APIError passthrough, got %T (%v)", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Unauthorized" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestLoginHandlerApplicationFailure(t *testing.T) {
	client := backendStub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"account locked"}`))
	})
	h := &AuthHandler{Client: client}

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"pw"}`)
	err := h.login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Errorf("code = %d", he.Code)
	}
	if he.Message != "account locked" {
		t.Errorf("message = %v", he.Message)
	}
}

func TestRequireBearer(t *testing.T) {
	next := func(c echo.Context) error { return c.String(http.StatusOK, callerToken(c)) }
	mw := requireBearer(next)

	c, _ := newTestContext(t, http.MethodGet, "/api/documents", "")
	err := mw(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("missing token should 401, got %v", err)
	}

	c, rec := newTestContext(t, http.MethodGet, "/api/documents", "")
	c.Request().Header.Set("Authorization", "Bearer user-token")
	if err := mw(c); err != nil {
		t.Fatalf("with token: %v", err)
	}
	if rec.Body.String() != "user-token" {
		t.Errorf("token = %q", rec.Body.String())
	}
}

func TestOpsHealthAlwaysAnswers(t *testing.T) {
	// Backend is unreachable: the rollup must still be produced.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	client := windmill.New(config.BackendConfig{URL: url, Workspace: "famvault", Token: "svc"})
	h := &OpsHandler{Monitor: ops.NewMonitor(client, nil), Client: client}

	c, rec := newTestContext(t, http.MethodGet, "/api/ops/health", "")
	if err := h.health(c); err != nil {
		t.Fatalf("health: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var entries []models.ServiceHealth
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for _, e := range entries {
		if e.Status != models.HealthUnhealthy {
			t.Errorf("%s = %s, want unhealthy", e.Name, e.Status)
		}
	}
}

func TestOpsJobsForwardsSuccessFilter(t *testing.T) {
	var gotQuery string
	client := backendStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})
	h := &OpsHandler{Client: client}

	c, rec := newTestContext(t, http.MethodGet, "/api/ops/jobs?success=false", "")
	if err := h.jobs(c); err != nil {
		t.Fatalf("jobs: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotQuery != "success=false" {
		t.Errorf("backend query = %q, want success=false", gotQuery)
	}

	c, _ = newTestContext(t, http.MethodGet, "/api/ops/jobs?success=maybe", "")
	err := h.jobs(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("bad success value should 400, got %v", err)
	}
}

func TestDocumentsSearchForwardsCallerToken(t *testing.T) {
	var gotAuth string
	client := backendStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"results":[]}`))
	})
	h := &DocumentsHandler{Client: client}

	c, rec := newTestContext(t, http.MethodPost, "/api/documents/search", `{"query":"passport"}`)
	c.Set("token", "user-token")
	if err := h.search(c); err != nil {
		t.Fatalf("search: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotAuth != "Bearer user-token" {
		t.Errorf("backend saw %q, want the caller's token", gotAuth)
	}
}
