package models

import "time"

// User is the authenticated identity carried inside login/verify responses.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	TenantID  string `json:"tenant_id,omitempty"`
	TOTPSetup bool   `json:"totp_enabled,omitempty"`
}

// LoginResult mirrors the backend login script response. The token pair is
// owned by the caller; the core client never refreshes or stores it.
type LoginResult struct {
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Requires2FA  bool   `json:"requires_2fa,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// VerifyResult reports whether an access token is still valid.
type VerifyResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// RefreshResult carries a fresh token pair.
type RefreshResult struct {
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthResult is the generic {success, error} envelope used by logout,
// set-password and similar mutations.
type AuthResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Document is a stored family document as the backend reports it. All
// lifecycle invariants (uniqueness, dedup, expiry) live server-side.
type Document struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Category       string    `json:"category,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	ContentPreview string    `json:"content_preview,omitempty"`
	FileType       string    `json:"file_type,omitempty"`
	SizeBytes      int64     `json:"size_bytes,omitempty"`
	Visibility     string    `json:"visibility,omitempty"`
	AssignedTo     []string  `json:"assigned_to,omitempty"`
	ExpiryDate     string    `json:"expiry_date,omitempty"`
	TenantID       string    `json:"tenant_id,omitempty"`
	UploadedBy     string    `json:"uploaded_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SearchHit is one ranked result from the semantic search scripts.
type SearchHit struct {
	Document
	Score   float64 `json:"score,omitempty"`
	Snippet string  `json:"snippet,omitempty"`
}

// SearchResult wraps a ranked hit list.
type SearchResult struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Results []SearchHit `json:"results"`
	Total   int         `json:"total,omitempty"`
}

// EmbedResult reports the outcome of a document ingestion script, including
// whatever the enhanced pipeline extracted.
type EmbedResult struct {
	Success       bool     `json:"success"`
	Error         string   `json:"error,omitempty"`
	DocumentID    string   `json:"document_id,omitempty"`
	Duplicate     bool     `json:"duplicate,omitempty"`
	Category      string   `json:"category,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	ExtractedDate string   `json:"extracted_date,omitempty"`
	CostUSD       float64  `json:"cost_usd,omitempty"`
}

// ZipUploadResult summarizes a bulk ZIP ingestion.
type ZipUploadResult struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error,omitempty"`
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// TranscriptionResult is the voice note pipeline output.
type TranscriptionResult struct {
	Success    bool     `json:"success"`
	Error      string   `json:"error,omitempty"`
	Transcript string   `json:"transcript,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	DocumentID string   `json:"document_id,omitempty"`
	CostUSD    float64  `json:"cost_usd,omitempty"`
}

// RAGAnswer is the assistant response: answer text plus the documents it
// grounded on.
type RAGAnswer struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Answer  string      `json:"answer"`
	Sources []SearchHit `json:"sources,omitempty"`
	CostUSD float64     `json:"cost_usd,omitempty"`
}

// ChatSession is a stored assistant conversation head.
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tenant is one family account.
type Tenant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Plan        string    `json:"plan,omitempty"`
	Status      string    `json:"status,omitempty"`
	MemberCount int       `json:"member_count,omitempty"`
	DocCount    int       `json:"doc_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TenantDetails aggregates a tenant with its members and usage for the admin
// screens; assembled server-side, displayed as-is.
type TenantDetails struct {
	Tenant  Tenant         `json:"tenant"`
	Members []FamilyMember `json:"members,omitempty"`
	Usage   *TenantUsage   `json:"usage,omitempty"`
}

// TenantUsage is the billing/pricing rollup for one tenant.
type TenantUsage struct {
	TenantID      string  `json:"tenant_id"`
	Period        string  `json:"period"`
	DocumentCount int     `json:"document_count"`
	StorageBytes  int64   `json:"storage_bytes"`
	APICostUSD    float64 `json:"api_cost_usd"`
	ProjectedUSD  float64 `json:"projected_usd,omitempty"`
}

// FamilyMember is one member of a tenant.
type FamilyMember struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	Relation  string    `json:"relation,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteResult carries a one-time invite token for a new member.
type InviteResult struct {
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	InviteToken string `json:"invite_token,omitempty"`
	InviteURL   string `json:"invite_url,omitempty"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

// TOTPSetup is the 2FA enrollment payload (QR data + shared secret).
type TOTPSetup struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	QRCode  string `json:"qr_code,omitempty"`
	Secret  string `json:"secret,omitempty"`
}

// TOTPStatus reports the enabled flag after verification or disable.
type TOTPStatus struct {
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	TOTPEnabled bool   `json:"totp_enabled"`
}

// BackupCodes is the one-time recovery code set.
type BackupCodes struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Codes   []string `json:"codes,omitempty"`
}

// Job is one backend workflow execution as reported by the job API.
type Job struct {
	ID         string    `json:"id"`
	ScriptPath string    `json:"script_path,omitempty"`
	Running    bool      `json:"running,omitempty"`
	Success    bool      `json:"success,omitempty"`
	Canceled   bool      `json:"canceled,omitempty"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms,omitempty"`
}

// Worker is one backend job executor.
type Worker struct {
	Name     string    `json:"worker"`
	Group    string    `json:"worker_group,omitempty"`
	Jobs     int       `json:"jobs_executed,omitempty"`
	LastPing time.Time `json:"last_ping"`
}

// Schedule is an expiry-reminder or maintenance schedule owned by the backend.
type Schedule struct {
	Path     string `json:"path"`
	Schedule string `json:"schedule"`
	Enabled  bool   `json:"enabled"`
	Script   string `json:"script_path,omitempty"`
}

// AuditLog is one admin audit entry.
type AuditLog struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource,omitempty"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CostReport is the API cost breakdown for a billing period.
type CostReport struct {
	Period    string             `json:"period"`
	TenantID  string             `json:"tenant_id,omitempty"`
	TotalUSD  float64            `json:"total_usd"`
	ByService map[string]float64 `json:"by_service,omitempty"`
}

// TimelineEvent is one entry on the family timeline view.
type TimelineEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Kind        string    `json:"kind,omitempty"`
	DocumentID  string    `json:"document_id,omitempty"`
	MemberID    string    `json:"member_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TimelineResult wraps a timeline query or mutation response.
type TimelineResult struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Events  []TimelineEvent `json:"events,omitempty"`
}

// HealthStatus classifies one probed capability.
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// ServiceHealth is one row of the system health rollup computed client-side
// from independent probes.
type ServiceHealth struct {
	Name      string       `json:"name"`
	Status    HealthStatus `json:"status"`
	LatencyMs int64        `json:"latency_ms,omitempty"`
	LastCheck time.Time    `json:"last_check"`
	Details   string       `json:"details,omitempty"`
}

// JobStats is the locally computed job dashboard summary.
type JobStats struct {
	Running        int `json:"running"`
	CompletedToday int `json:"completed_today"`
	FailedToday    int `json:"failed_today"`
}
