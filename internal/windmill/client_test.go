package windmill

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/famvault/famvault/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := New(config.BackendConfig{URL: srv.URL, Workspace: "famvault", Token: "test-token"})
	return client, srv
}

func TestRunScriptRequestShape(t *testing.T) {
	type args struct {
		Question string `json:"question"`
		Limit    int    `json:"limit"`
	}
	in := args{Question: "passport renewal", Limit: 5}
	wantBody, _ := json.Marshal(in)

	var gotMethod, gotPath, gotAuth, gotContentType string
	var gotBody []byte
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	var out map[string]bool
	if err := client.runScript(context.Background(), "f/chatbot/rag_query", in, &out); err != nil {
		t.Fatalf("runScript: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if want := "/api/w/famvault/jobs/run_wait_result/p/f/chatbot/rag_query"; gotPath != want {
		t.Errorf("path = %s, want %s", gotPath, want)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("content-type = %q", gotContentType)
	}
	if string(gotBody) != string(wantBody) {
		t.Errorf("body = %s, want %s", gotBody, wantBody)
	}
	if !out["ok"] {
		t.Errorf("decoded response missing ok flag")
	}
}

func TestRunScriptErrorEnvelope(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Unauthorized"}}`))
	})

	err := client.runScript(context.Background(), "f/chatbot/login", struct{}{}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "Unauthorized" {
		t.Errorf("message = %q, want Unauthorized", apiErr.Message)
	}
}

func TestRunScriptErrorFallbackMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"non-json body", "upstream exploded"},
		{"json without envelope", `{"detail":"nope"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(tc.body))
			})
			err := client.runScript(context.Background(), "f/admin/health_check", struct{}{}, nil)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.Message != "Request failed: 503" {
				t.Errorf("message = %q, want \"Request failed: 503\"", apiErr.Message)
			}
		})
	}
}

func TestRunScriptTransportErrorPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := New(config.BackendConfig{URL: url, Workspace: "famvault", Token: "t"})
	err := client.runScript(context.Background(), "f/chatbot/login", struct{}{}, nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport error must not be an APIError: %v", err)
	}
}

func TestVersionPlainText(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/version" {
			t.Errorf("path = %s, want /api/version", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		_, _ = w.Write([]byte("CE v1.394.0\n"))
	})

	v, err := client.Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != "CE v1.394.0" {
		t.Errorf("version = %q", v)
	}
}

type recordedObservation struct {
	path    string
	outcome string
}

type fakeMetrics struct {
	observations []recordedObservation
}

func (f *fakeMetrics) ObserveRPC(path, outcome string, elapsed time.Duration) {
	f.observations = append(f.observations, recordedObservation{path, outcome})
}

func TestVersionRecordsMetrics(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("CE v1.394.0"))
	})
	metrics := &fakeMetrics{}
	client.SetMetrics(metrics)

	if _, err := client.Version(context.Background()); err != nil {
		t.Fatalf("Version: %v", err)
	}
	if len(metrics.observations) != 1 {
		t.Fatalf("observations = %d, want 1", len(metrics.observations))
	}
	got := metrics.observations[0]
	if got.path != "/api/version" || got.outcome != "ok" {
		t.Errorf("observed %+v, want /api/version ok", got)
	}

	// A dead backend still produces an observation.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	dead := New(config.BackendConfig{URL: url, Workspace: "famvault"})
	dead.SetMetrics(metrics)
	if _, err := dead.Version(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
	got = metrics.observations[len(metrics.observations)-1]
	if got.path != "/api/version" || got.outcome != "transport_error" {
		t.Errorf("observed %+v, want /api/version transport_error", got)
	}
}

func TestListWorkersPathUnscoped(t *testing.T) {
	var gotPath string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[{"worker":"wk-1"},{"worker":"wk-2"}]`))
	})

	workers, err := client.ListWorkers(context.Background())
	if err != nil {
		t.Fatalf("ListWorkers: %v", err)
	}
	if gotPath != "/api/workers/list" {
		t.Errorf("path = %s, want /api/workers/list (no workspace prefix)", gotPath)
	}
	if len(workers) != 2 || workers[0].Name != "wk-1" {
		t.Errorf("workers = %+v", workers)
	}
}

func TestWithTokenIsolation(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	user := client.WithToken("user-token")
	if err := user.runScript(context.Background(), "f/chatbot/rag_query", struct{}{}, nil); err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if gotAuth != "Bearer user-token" {
		t.Errorf("authorization = %q, want user-token", gotAuth)
	}

	if err := client.runScript(context.Background(), "f/chatbot/rag_query", struct{}{}, nil); err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("original client token changed: %q", gotAuth)
	}
}
