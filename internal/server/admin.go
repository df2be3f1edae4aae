package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/famvault/famvault/internal/windmill"
)

// AdminHandler is the tenant / family-member / security administration
// surface. Authorization decisions live in the backend scripts; this layer
// only forwards the caller's token.
type AdminHandler struct {
	Client *windmill.Client
}

func (h *AdminHandler) Register(g *echo.Group) {
	g.GET("/tenants", h.listTenants)
	g.POST("/tenants", h.createTenant)
	g.GET("/tenants/:id", h.tenantDetails)
	g.PUT("/tenants/:id", h.updateTenant)
	g.GET("/tenants/:id/usage", h.tenantUsage)
	g.GET("/tenants/:id/members", h.listMembers)
	g.POST("/members", h.addMember)
	g.PUT("/members/:id", h.updateMember)
	g.DELETE("/members/:id", h.removeMember)
	g.POST("/invites", h.generateInvite)
	g.POST("/2fa/setup", h.setup2FA)
	g.POST("/2fa/verify", h.verify2FA)
	g.POST("/2fa/backup-codes", h.backupCodes)
	g.POST("/2fa/disable", h.disable2FA)
	g.GET("/audit", h.auditLogs)
	g.GET("/costs", h.apiCosts)
}

func (h *AdminHandler) caller(c echo.Context) *windmill.Client {
	return h.Client.WithToken(callerToken(c))
}

func (h *AdminHandler) listTenants(c echo.Context) error {
	tenants, err := h.caller(c).ListTenants(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenants)
}

type createTenantRequest struct {
	Name       string `json:"name"`
	Plan       string `json:"plan,omitempty"`
	AdminEmail string `json:"admin_email,omitempty"`
}

func (h *AdminHandler) createTenant(c echo.Context) error {
	var req createTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	t, err := h.caller(c).CreateTenant(c.Request().Context(), req.Name, req.Plan, req.AdminEmail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *AdminHandler) tenantDetails(c echo.Context) error {
	d, err := h.caller(c).GetTenantDetails(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *AdminHandler) updateTenant(c echo.Context) error {
	var req windmill.TenantUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).UpdateTenant(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) tenantUsage(c echo.Context) error {
	u, err := h.caller(c).GetTenantUsage(c.Request().Context(), c.Param("id"), c.QueryParam("period"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) listMembers(c echo.Context) error {
	members, err := h.caller(c).ListFamilyMembers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

func (h *AdminHandler) addMember(c echo.Context) error {
	var req windmill.NewMember
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.caller(c).AddFamilyMember(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *AdminHandler) updateMember(c echo.Context) error {
	var req windmill.MemberUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).UpdateFamilyMember(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) removeMember(c echo.Context) error {
	res, err := h.caller(c).RemoveFamilyMember(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type inviteRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
}

func (h *AdminHandler) generateInvite(c echo.Context) error {
	var req inviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).GenerateInvite(c.Request().Context(), req.TenantID, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type totpRequest struct {
	UserID   int    `json:"user_id"`
	Code     string `json:"code,omitempty"`
	Enable   bool   `json:"enable_2fa,omitempty"`
	Password string `json:"password,omitempty"`
}

func (h *AdminHandler) setup2FA(c echo.Context) error {
	var req totpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).Setup2FA(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) verify2FA(c echo.Context) error {
	var req totpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).Verify2FA(c.Request().Context(), req.Code, req.UserID, req.Enable)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) backupCodes(c echo.Context) error {
	var req totpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).GenerateBackupCodes(c.Request().Context(), req.UserID, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) disable2FA(c echo.Context) error {
	var req totpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.caller(c).Disable2FA(c.Request().Context(), req.UserID, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) auditLogs(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	logs, err := h.caller(c).GetAuditLogs(c.Request().Context(), c.QueryParam("tenant_id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *AdminHandler) apiCosts(c echo.Context) error {
	report, err := h.caller(c).GetAPICosts(c.Request().Context(), c.QueryParam("period"), c.QueryParam("tenant_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
