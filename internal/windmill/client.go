package windmill

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/famvault/famvault/config"
)

// MetricsRecorder observes completed RPC calls. Implemented by the telemetry
// package; nil disables instrumentation.
type MetricsRecorder interface {
	ObserveRPC(path, outcome string, elapsed time.Duration)
}

// Client invokes backend workflows over Windmill's synchronous job API.
// It is a thin typed surface: every operation is a single POST to
// {base}/api/w/{workspace}/jobs/run_wait_result/p/{script} with a JSON body.
// The client holds no mutable state beyond its captured configuration, so
// concurrent use from any number of goroutines is safe. There are no retries
// and no client-side timeout; cancellation is the caller's context.
type Client struct {
	base      string
	workspace string
	token     string
	http      *http.Client
	logger    *log.Logger
	metrics   MetricsRecorder
}

// New builds a client from backend configuration. The token may be empty when
// every call will go through WithToken (the gateway's per-request mode).
func New(cfg config.BackendConfig) *Client {
	return &Client{
		base:      cfg.BaseURL(),
		workspace: cfg.Workspace,
		token:     cfg.Token,
		http:      &http.Client{},
		logger:    log.New(io.Discard, "", 0),
	}
}

// SetLogger enables request logging. Intended for construction time only.
func (c *Client) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetMetrics attaches an RPC metrics recorder. Construction time only.
func (c *Client) SetMetrics(m MetricsRecorder) { c.metrics = m }

// WithToken returns a shallow copy of the client carrying a different bearer
// token. The copy shares the underlying http.Client.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Workspace reports the configured workspace identifier.
func (c *Client) Workspace() string { return c.workspace }

func (c *Client) workspacePrefix() string {
	return "/api/w/" + c.workspace
}

// runScript invokes one remote workflow synchronously. args is serialized
// verbatim as the request body; a 2xx response is decoded into out without
// any schema validation (the backend is a trusted collaborator). Non-2xx
// responses become an *APIError; transport errors pass through untouched.
func (c *Client) runScript(ctx context.Context, script string, args, out any) error {
	u := c.base + c.workspacePrefix() + "/jobs/run_wait_result/p/" + script
	body, err := json.Marshal(args)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(script, "transport_error", start)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(script, "error", start)
		return c.decodeError(resp)
	}
	c.observe(script, "ok", start)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// getJSON issues a GET against a platform API endpoint (jobs, workers,
// schedules) with the same auth and error conventions as runScript.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(path, "transport_error", start)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(path, "error", start)
		return c.decodeError(resp)
	}
	c.observe(path, "ok", start)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

const versionPath = "/api/version"

// Version returns the backend version string from the unauthenticated
// version endpoint. The body is plain text, not JSON.
func (c *Client) Version(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+versionPath, nil)
	if err != nil {
		return "", err
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(versionPath, "transport_error", start)
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(versionPath, "error", start)
		return "", c.decodeError(resp)
	}
	c.observe(versionPath, "ok", start)
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// decodeError extracts the backend error envelope, best effort.
func (c *Client) decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var env errorEnvelope
	if err := json.Unmarshal(b, &env); err == nil && env.Error.Message != "" {
		c.logger.Printf("%s %s: %s", resp.Request.Method, resp.Request.URL.Path, env.Error.Message)
		return NewAPIError(resp.StatusCode, env.Error.Message)
	}
	c.logger.Printf("%s %s: status %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode)
	return NewAPIError(resp.StatusCode, "")
}

func (c *Client) observe(path, outcome string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveRPC(path, outcome, time.Since(start))
	}
}
