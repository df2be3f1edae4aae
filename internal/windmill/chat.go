package windmill

import (
	"context"

	"github.com/famvault/famvault/models"
)

const (
	scriptRAGQuery         = "f/chatbot/rag_query"
	scriptListChatSessions = "f/chatbot/list_chat_sessions"
)

// ChatTurn is one prior exchange passed back as conversation history.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RAGQuery asks the retrieval-augmented assistant a question scoped to the
// caller's documents. Retrieval, ranking and generation are all remote.
func (c *Client) RAGQuery(ctx context.Context, question string, history []ChatTurn, sessionID string) (*models.RAGAnswer, error) {
	args := struct {
		Question  string     `json:"question"`
		History   []ChatTurn `json:"history,omitempty"`
		SessionID string     `json:"session_id,omitempty"`
	}{question, history, sessionID}
	var out models.RAGAnswer
	if err := c.runScript(ctx, scriptRAGQuery, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListChatSessions returns the caller's stored assistant conversations.
func (c *Client) ListChatSessions(ctx context.Context, userID string) ([]models.ChatSession, error) {
	args := struct {
		UserID string `json:"user_id,omitempty"`
	}{userID}
	var out []models.ChatSession
	if err := c.runScript(ctx, scriptListChatSessions, args, &out); err != nil {
		return nil, err
	}
	return out, nil
}
