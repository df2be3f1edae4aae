package windmill

import (
	"context"

	"github.com/famvault/famvault/models"
)

// Authentication workflows. All credential checks, token issuance and
// revocation run server-side; these methods forward fields as-is.
const (
	scriptLogin                = "f/chatbot/login"
	scriptVerifyToken          = "f/chatbot/verify_token"
	scriptRefreshToken         = "f/chatbot/refresh_token"
	scriptLogout               = "f/chatbot/logout"
	scriptSetPassword          = "f/chatbot/set_password"
	scriptRequestPasswordReset = "f/chatbot/request_password_reset"
)

// DeviceInfo identifies the caller's device for session bookkeeping.
type DeviceInfo struct {
	DeviceID  string `json:"device_id,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

// Login exchanges credentials for a token pair. No local validation of email
// shape or password strength happens here.
func (c *Client) Login(ctx context.Context, email, password string, device *DeviceInfo) (*models.LoginResult, error) {
	args := struct {
		Email      string      `json:"email"`
		Password   string      `json:"password"`
		DeviceInfo *DeviceInfo `json:"device_info,omitempty"`
	}{email, password, device}
	var out models.LoginResult
	if err := c.runScript(ctx, scriptLogin, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyToken asks the backend whether an access token is still valid.
func (c *Client) VerifyToken(ctx context.Context, token string) (*models.VerifyResult, error) {
	args := struct {
		Token string `json:"token"`
	}{token}
	var out models.VerifyResult
	if err := c.runScript(ctx, scriptVerifyToken, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshToken swaps a refresh token for a fresh pair. Callers decide when;
// the client never refreshes on its own.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*models.RefreshResult, error) {
	args := struct {
		RefreshToken string `json:"refresh_token"`
	}{refreshToken}
	var out models.RefreshResult
	if err := c.runScript(ctx, scriptRefreshToken, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the given refresh token, or every session when revokeAll.
func (c *Client) Logout(ctx context.Context, refreshToken string, revokeAll bool) (*models.AuthResult, error) {
	args := struct {
		RefreshToken string `json:"refresh_token"`
		RevokeAll    bool   `json:"revoke_all"`
	}{refreshToken, revokeAll}
	var out models.AuthResult
	if err := c.runScript(ctx, scriptLogout, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetPasswordOptions carries the optional invite/admin paths for SetPassword.
type SetPasswordOptions struct {
	InviteToken   string `json:"invite_token,omitempty"`
	AdminOverride bool   `json:"admin_override,omitempty"`
}

// SetPassword sets or resets a password, either via invite token or with an
// admin override.
func (c *Client) SetPassword(ctx context.Context, email, password string, opts *SetPasswordOptions) (*models.AuthResult, error) {
	args := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		*SetPasswordOptions
	}{Email: email, Password: password, SetPasswordOptions: opts}
	var out models.AuthResult
	if err := c.runScript(ctx, scriptSetPassword, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestPasswordReset triggers the reset email workflow.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (*models.AuthResult, error) {
	args := struct {
		Email string `json:"email"`
	}{email}
	var out models.AuthResult
	if err := c.runScript(ctx, scriptRequestPasswordReset, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
