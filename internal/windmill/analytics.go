package windmill

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/famvault/famvault/models"
)

// Operational surface. Jobs, workers and schedules are platform objects, not
// scripts, so they come from the platform REST API; cost and audit reports
// are admin scripts.
const (
	scriptGetAPICosts  = "f/admin/get_api_costs"
	scriptGetAuditLogs = "f/admin/get_audit_logs"
	scriptHealthCheck  = "f/admin/health_check"

	workersListPath   = "/api/workers/list"
	schedulesListPath = "/schedules/list"
	jobsListPath      = "/jobs/list"
	jobGetPath        = "/jobs_u/get/"
)

// JobFilter narrows a job listing. Zero values mean "no filter".
type JobFilter struct {
	Running   bool
	Success   *bool
	CreatedBy string
	Script    string
	Limit     int
}

func (f JobFilter) query() url.Values {
	q := url.Values{}
	if f.Running {
		q.Set("running", "true")
	}
	if f.Success != nil {
		q.Set("success", strconv.FormatBool(*f.Success))
	}
	if f.CreatedBy != "" {
		q.Set("created_by", f.CreatedBy)
	}
	if f.Script != "" {
		q.Set("script_path_exact", f.Script)
	}
	if f.Limit > 0 {
		q.Set("per_page", strconv.Itoa(f.Limit))
	}
	return q
}

// ListJobs returns backend job executions matching the filter.
func (c *Client) ListJobs(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	var out []models.Job
	if err := c.getJSON(ctx, c.workspacePrefix()+jobsListPath, filter.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetJob fetches one job by id.
func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var out models.Job
	if err := c.getJSON(ctx, c.workspacePrefix()+jobGetPath+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWorkers returns the backend's job executors. This endpoint is not
// workspace-scoped.
func (c *Client) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	var out []models.Worker
	if err := c.getJSON(ctx, workersListPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSchedules returns the workspace's schedules (expiry reminders and
// maintenance runs).
func (c *Client) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	var out []models.Schedule
	if err := c.getJSON(ctx, c.workspacePrefix()+schedulesListPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HealthCheck runs the admin health-check script. A nil error means the
// backend's own self-test passed.
func (c *Client) HealthCheck(ctx context.Context) error {
	var out models.AuthResult
	if err := c.runScript(ctx, scriptHealthCheck, struct{}{}, &out); err != nil {
		return err
	}
	if !out.Success && out.Error != "" {
		return errors.New(out.Error)
	}
	return nil
}

// GetAPICosts returns the API cost report for a period, optionally scoped to
// one tenant.
func (c *Client) GetAPICosts(ctx context.Context, period, tenantID string) (*models.CostReport, error) {
	args := struct {
		Period   string `json:"period"`
		TenantID string `json:"tenant_id,omitempty"`
	}{period, tenantID}
	var out models.CostReport
	if err := c.runScript(ctx, scriptGetAPICosts, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAuditLogs returns admin audit entries, newest first.
func (c *Client) GetAuditLogs(ctx context.Context, tenantID string, limit int) ([]models.AuditLog, error) {
	args := struct {
		TenantID string `json:"tenant_id,omitempty"`
		Limit    int    `json:"limit,omitempty"`
	}{tenantID, limit}
	var out []models.AuditLog
	if err := c.runScript(ctx, scriptGetAuditLogs, args, &out); err != nil {
		return nil, err
	}
	return out, nil
}
