package windmill

import (
	"context"

	"github.com/famvault/famvault/models"
)

// Family member administration workflows.
const (
	scriptListFamilyMembers  = "f/admin/list_family_members"
	scriptAddFamilyMember    = "f/admin/add_family_member"
	scriptUpdateFamilyMember = "f/admin/update_family_member"
	scriptRemoveFamilyMember = "f/admin/remove_family_member"
	scriptGenerateInvite     = "f/admin/generate_invite"
)

// ListFamilyMembers returns the members of one tenant.
func (c *Client) ListFamilyMembers(ctx context.Context, tenantID string) ([]models.FamilyMember, error) {
	args := struct {
		TenantID string `json:"tenant_id"`
	}{tenantID}
	var out []models.FamilyMember
	if err := c.runScript(ctx, scriptListFamilyMembers, args, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewMember is the add-member payload.
type NewMember struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	Relation string `json:"relation,omitempty"`
}

// AddFamilyMember creates a member record; the invite flow is separate.
func (c *Client) AddFamilyMember(ctx context.Context, m NewMember) (*models.FamilyMember, error) {
	var out models.FamilyMember
	if err := c.runScript(ctx, scriptAddFamilyMember, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MemberUpdate carries mutable member fields.
type MemberUpdate struct {
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	Relation string `json:"relation,omitempty"`
	Status   string `json:"status,omitempty"`
}

// UpdateFamilyMember applies a partial update to a member.
func (c *Client) UpdateFamilyMember(ctx context.Context, memberID string, update MemberUpdate) (*models.AuthResult, error) {
	args := struct {
		MemberID string `json:"member_id"`
		MemberUpdate
	}{memberID, update}
	var out models.AuthResult
	if err := c.runScript(ctx, scriptUpdateFamilyMember, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFamilyMember deletes a member from a tenant.
func (c *Client) RemoveFamilyMember(ctx context.Context, memberID string) (*models.AuthResult, error) {
	args := struct {
		MemberID string `json:"member_id"`
	}{memberID}
	var out models.AuthResult
	if err := c.runScript(ctx, scriptRemoveFamilyMember, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateInvite issues a one-time invite token for a member email.
func (c *Client) GenerateInvite(ctx context.Context, tenantID, email string) (*models.InviteResult, error) {
	args := struct {
		TenantID string `json:"tenant_id"`
		Email    string `json:"email"`
	}{tenantID, email}
	var out models.InviteResult
	if err := c.runScript(ctx, scriptGenerateInvite, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
