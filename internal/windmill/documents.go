package windmill

import (
	"context"

	"github.com/famvault/famvault/models"
)

// Document workflows. Extraction, OCR, embedding, tagging and duplicate
// rejection all happen in the backend scripts.
const (
	scriptEmbedDocument         = "f/chatbot/embed_document"
	scriptEmbedDocumentEnhanced = "f/chatbot/embed_document_enhanced"
	scriptSearchDocuments       = "f/chatbot/search_documents"
	scriptAdvancedSearch        = "f/chatbot/advanced_search_documents"
	scriptGetDocument           = "f/chatbot/get_document"
	scriptUpdateDocument        = "f/chatbot/update_document"
	scriptDeleteDocument        = "f/chatbot/delete_document"
	scriptListDocuments         = "f/chatbot/list_documents"
	scriptProcessZipUpload      = "f/chatbot/process_zip_upload"
	scriptTranscribeVoiceNote   = "f/chatbot/transcribe_voice_note"
)

// EmbedRequest is the plain document ingestion payload.
type EmbedRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	FileBase64  string   `json:"file_base64,omitempty"`
	FileType    string   `json:"file_type,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Visibility  string   `json:"visibility,omitempty"`
	AssignedTo  []string `json:"assigned_to,omitempty"`
	ExpiryDate  string   `json:"expiry_date,omitempty"`
	TenantID    string   `json:"tenant_id,omitempty"`
	UploadedBy  string   `json:"uploaded_by,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
}

// EmbedDocument ingests one document with caller-provided metadata.
func (c *Client) EmbedDocument(ctx context.Context, req EmbedRequest) (*models.EmbedResult, error) {
	var out models.EmbedResult
	if err := c.runScript(ctx, scriptEmbedDocument, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnhancedOptions switches on the server-side extraction extras.
type EnhancedOptions struct {
	AutoCategorize bool `json:"auto_categorize"`
	AutoTag        bool `json:"auto_tag"`
	ExtractDates   bool `json:"extract_dates"`
}

// EmbedDocumentEnhanced ingests a document through the enriched pipeline
// (auto-categorization, tagging and date extraction per the flags).
func (c *Client) EmbedDocumentEnhanced(ctx context.Context, req EmbedRequest, opts EnhancedOptions) (*models.EmbedResult, error) {
	args := struct {
		EmbedRequest
		EnhancedOptions
	}{req, opts}
	var out models.EmbedResult
	if err := c.runScript(ctx, scriptEmbedDocumentEnhanced, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchDocuments runs the semantic search script for a free-text query.
func (c *Client) SearchDocuments(ctx context.Context, query string, limit int) (*models.SearchResult, error) {
	args := struct {
		Query string `json:"query"`
		Limit int    `json:"limit,omitempty"`
	}{query, limit}
	var out models.SearchResult
	if err := c.runScript(ctx, scriptSearchDocuments, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchFilter narrows an advanced search.
type SearchFilter struct {
	Query      string   `json:"query"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	AssignedTo string   `json:"assigned_to,omitempty"`
	DateFrom   string   `json:"date_from,omitempty"`
	DateTo     string   `json:"date_to,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// AdvancedSearchDocuments runs the filtered search variant.
func (c *Client) AdvancedSearchDocuments(ctx context.Context, filter SearchFilter) (*models.SearchResult, error) {
	var out models.SearchResult
	if err := c.runScript(ctx, scriptAdvancedSearch, filter, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDocument fetches one document by id.
func (c *Client) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	args := struct {
		DocumentID string `json:"document_id"`
	}{id}
	var out models.Document
	if err := c.runScript(ctx, scriptGetDocument, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DocumentUpdate carries mutable document fields; zero values are omitted so
// the backend treats them as "unchanged".
type DocumentUpdate struct {
	Title      string   `json:"title,omitempty"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Visibility string   `json:"visibility,omitempty"`
	AssignedTo []string `json:"assigned_to,omitempty"`
	ExpiryDate string   `json:"expiry_date,omitempty"`
}

// UpdateDocument applies a partial update to a document.
func (c *Client) UpdateDocument(ctx context.Context, id string, update DocumentUpdate) (*models.AuthResult, error) {
	args := struct {
		DocumentID string `json:"document_id"`
		DocumentUpdate
	}{id, update}
	var out models.AuthResult
	if err := c.runScript(ctx, scriptUpdateDocument, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDocument removes a document and its embeddings.
func (c *Client) DeleteDocument(ctx context.Context, id string) (*models.AuthResult, error) {
	args := struct {
		DocumentID string `json:"document_id"`
	}{id}
	var out models.AuthResult
	if err := c.runScript(ctx, scriptDeleteDocument, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDocuments pages through a tenant's documents.
func (c *Client) ListDocuments(ctx context.Context, tenantID string, offset, limit int) ([]models.Document, error) {
	args := struct {
		TenantID string `json:"tenant_id,omitempty"`
		Offset   int    `json:"offset"`
		Limit    int    `json:"limit,omitempty"`
	}{tenantID, offset, limit}
	var out []models.Document
	if err := c.runScript(ctx, scriptListDocuments, args, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ZipUploadRequest is a base64-encoded archive plus per-file defaults.
type ZipUploadRequest struct {
	ZipBase64         string `json:"zip_base64"`
	DefaultCategory   string `json:"default_category,omitempty"`
	DefaultVisibility string `json:"default_visibility,omitempty"`
	TenantID          string `json:"tenant_id,omitempty"`
	UploadedBy        string `json:"uploaded_by,omitempty"`
}

// ProcessZipUpload ingests every file inside an uploaded ZIP archive.
func (c *Client) ProcessZipUpload(ctx context.Context, req ZipUploadRequest) (*models.ZipUploadResult, error) {
	var out models.ZipUploadResult
	if err := c.runScript(ctx, scriptProcessZipUpload, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TranscribeVoiceNote sends base64 audio through the transcription pipeline
// and gets back a transcript, suggested tags and a cost breakdown.
func (c *Client) TranscribeVoiceNote(ctx context.Context, audioBase64, format, tenantID string) (*models.TranscriptionResult, error) {
	args := struct {
		AudioBase64 string `json:"audio_base64"`
		Format      string `json:"format,omitempty"`
		TenantID    string `json:"tenant_id,omitempty"`
	}{audioBase64, format, tenantID}
	var out models.TranscriptionResult
	if err := c.runScript(ctx, scriptTranscribeVoiceNote, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
