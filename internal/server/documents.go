package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/famvault/famvault/internal/ops"
	"github.com/famvault/famvault/internal/windmill"
)

// DocumentsHandler is the upload/search/browse surface. Each handler forwards
// to a backend workflow under the caller's own token.
type DocumentsHandler struct {
	Client *windmill.Client
}

func (h *DocumentsHandler) Register(g *echo.Group) {
	g.GET("", h.list)
	g.POST("", h.embed)
	g.POST("/enhanced", h.embedEnhanced)
	g.POST("/zip", h.zipUpload)
	g.POST("/voice", h.voiceNote)
	g.POST("/search", h.search)
	g.POST("/search/advanced", h.advancedSearch)
	g.GET("/duplicates", h.duplicates)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *DocumentsHandler) caller(c echo.Context) *windmill.Client {
	return h.Client.WithToken(callerToken(c))
}

func (h *DocumentsHandler) list(c echo.Context) error {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	docs, err := h.caller(c).ListDocuments(c.Request().Context(), c.QueryParam("tenant_id"), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *DocumentsHandler) embed(c echo.Context) error {
	var req windmill.EmbedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).EmbedDocument(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type enhancedEmbedRequest struct {
	windmill.EmbedRequest
	windmill.EnhancedOptions
}

func (h *DocumentsHandler) embedEnhanced(c echo.Context) error {
	var req enhancedEmbedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).EmbedDocumentEnhanced(c.Request().Context(), req.EmbedRequest, req.EnhancedOptions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *DocumentsHandler) zipUpload(c echo.Context) error {
	var req windmill.ZipUploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).ProcessZipUpload(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type voiceNoteRequest struct {
	AudioBase64 string `json:"audio_base64"`
	Format      string `json:"format,omitempty"`
	TenantID    string `json:"tenant_id,omitempty"`
}

func (h *DocumentsHandler) voiceNote(c echo.Context) error {
	var req voiceNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).TranscribeVoiceNote(c.Request().Context(), req.AudioBase64, req.Format, req.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

func (h *DocumentsHandler) search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).SearchDocuments(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *DocumentsHandler) advancedSearch(c echo.Context) error {
	var req windmill.SearchFilter
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).AdvancedSearchDocuments(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// duplicates lists the caller's documents and groups probable duplicates
// client-side; it is the one document endpoint with local computation.
func (h *DocumentsHandler) duplicates(c echo.Context) error {
	docs, err := h.caller(c).ListDocuments(c.Request().Context(), c.QueryParam("tenant_id"), 0, 0)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ops.FindDuplicates(docs))
}

func (h *DocumentsHandler) get(c echo.Context) error {
	doc, err := h.caller(c).GetDocument(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentsHandler) update(c echo.Context) error {
	var req windmill.DocumentUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).UpdateDocument(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *DocumentsHandler) delete(c echo.Context) error {
	res, err := h.caller(c).DeleteDocument(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
