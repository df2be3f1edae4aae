package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/famvault/famvault/internal/windmill"
)

// ChatHandler fronts the RAG assistant.
type ChatHandler struct {
	Client *windmill.Client
}

func (h *ChatHandler) Register(g *echo.Group) {
	g.POST("/query", h.query)
	g.GET("/sessions", h.sessions)
}

type chatQueryRequest struct {
	Question  string              `json:"question"`
	History   []windmill.ChatTurn `json:"history,omitempty"`
	SessionID string              `json:"session_id,omitempty"`
}

func (h *ChatHandler) query(c echo.Context) error {
	var req chatQueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Question == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question is required")
	}
	res, err := h.Client.WithToken(callerToken(c)).RAGQuery(c.Request().Context(), req.Question, req.History, req.SessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ChatHandler) sessions(c echo.Context) error {
	res, err := h.Client.WithToken(callerToken(c)).ListChatSessions(c.Request().Context(), c.QueryParam("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
