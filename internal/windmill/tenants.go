package windmill

import (
	"context"

	"github.com/famvault/famvault/models"
)

// Tenant administration workflows (admin surface).
const (
	scriptListTenants      = "f/admin/list_tenants"
	scriptGetTenantDetails = "f/admin/get_tenant_details"
	scriptCreateTenant     = "f/admin/create_tenant"
	scriptUpdateTenant     = "f/admin/update_tenant"
	scriptGetTenantUsage   = "f/admin/get_tenant_usage"
)

// ListTenants returns every tenant visible to the caller.
func (c *Client) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	var out []models.Tenant
	if err := c.runScript(ctx, scriptListTenants, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTenantDetails fetches one tenant with members and usage attached.
func (c *Client) GetTenantDetails(ctx context.Context, tenantID string) (*models.TenantDetails, error) {
	args := struct {
		TenantID string `json:"tenant_id"`
	}{tenantID}
	var out models.TenantDetails
	if err := c.runScript(ctx, scriptGetTenantDetails, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTenant provisions a new family account.
func (c *Client) CreateTenant(ctx context.Context, name, plan, adminEmail string) (*models.Tenant, error) {
	args := struct {
		Name       string `json:"name"`
		Plan       string `json:"plan,omitempty"`
		AdminEmail string `json:"admin_email,omitempty"`
	}{name, plan, adminEmail}
	var out models.Tenant
	if err := c.runScript(ctx, scriptCreateTenant, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TenantUpdate carries mutable tenant fields.
type TenantUpdate struct {
	Name   string `json:"name,omitempty"`
	Plan   string `json:"plan,omitempty"`
	Status string `json:"status,omitempty"`
}

// UpdateTenant applies a partial update to a tenant.
func (c *Client) UpdateTenant(ctx context.Context, tenantID string, update TenantUpdate) (*models.AuthResult, error) {
	args := struct {
		TenantID string `json:"tenant_id"`
		TenantUpdate
	}{tenantID, update}
	var out models.AuthResult
	if err := c.runScript(ctx, scriptUpdateTenant, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTenantUsage returns the billing rollup for one tenant and period.
func (c *Client) GetTenantUsage(ctx context.Context, tenantID, period string) (*models.TenantUsage, error) {
	args := struct {
		TenantID string `json:"tenant_id"`
		Period   string `json:"period,omitempty"`
	}{tenantID, period}
	var out models.TenantUsage
	if err := c.runScript(ctx, scriptGetTenantUsage, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
