package windmill

import (
	"context"

	"github.com/famvault/famvault/models"
)

// Two-factor workflows. Secret generation and TOTP validation are remote;
// nothing cryptographic happens in this client.
const (
	scriptSetup2FA            = "f/admin/setup_2fa"
	scriptVerify2FA           = "f/admin/verify_2fa"
	scriptGenerateBackupCodes = "f/admin/generate_backup_codes"
	scriptDisable2FA          = "f/admin/disable_2fa"
)

// Setup2FA starts enrollment and returns the QR code plus shared secret.
func (c *Client) Setup2FA(ctx context.Context, userID int) (*models.TOTPSetup, error) {
	args := struct {
		UserID int `json:"user_id"`
	}{userID}
	var out models.TOTPSetup
	if err := c.runScript(ctx, scriptSetup2FA, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify2FA checks a TOTP code; enable flips 2FA on once the code matches.
func (c *Client) Verify2FA(ctx context.Context, code string, userID int, enable bool) (*models.TOTPStatus, error) {
	args := struct {
		Code      string `json:"code"`
		UserID    int    `json:"user_id"`
		Enable2FA bool   `json:"enable_2fa"`
	}{code, userID, enable}
	var out models.TOTPStatus
	if err := c.runScript(ctx, scriptVerify2FA, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateBackupCodes reissues recovery codes after a password re-check.
func (c *Client) GenerateBackupCodes(ctx context.Context, userID int, password string) (*models.BackupCodes, error) {
	args := struct {
		UserID   int    `json:"user_id"`
		Password string `json:"password"`
	}{userID, password}
	var out models.BackupCodes
	if err := c.runScript(ctx, scriptGenerateBackupCodes, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Disable2FA turns 2FA off after a password re-check.
func (c *Client) Disable2FA(ctx context.Context, userID int, password string) (*models.TOTPStatus, error) {
	args := struct {
		UserID   int    `json:"user_id"`
		Password string `json:"password"`
	}{userID, password}
	var out models.TOTPStatus
	if err := c.runScript(ctx, scriptDisable2FA, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
