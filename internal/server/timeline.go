package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/famvault/famvault/internal/windmill"
	"github.com/famvault/famvault/models"
)

// TimelineHandler fronts the family timeline view.
type TimelineHandler struct {
	Client *windmill.Client
}

func (h *TimelineHandler) Register(g *echo.Group) {
	g.GET("", h.list)
	g.POST("", h.manage)
}

func (h *TimelineHandler) list(c echo.Context) error {
	filter := windmill.TimelineFilter{
		TenantID: c.QueryParam("tenant_id"),
		MemberID: c.QueryParam("member_id"),
		Kind:     c.QueryParam("kind"),
		DateFrom: c.QueryParam("date_from"),
		DateTo:   c.QueryParam("date_to"),
	}
	res, err := h.Client.WithToken(callerToken(c)).GetTimelineEvents(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type timelineManageRequest struct {
	Action windmill.TimelineAction `json:"action"`
	Event  models.TimelineEvent    `json:"event"`
}

func (h *TimelineHandler) manage(c echo.Context) error {
	var req timelineManageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	switch req.Action {
	case windmill.TimelineCreate, windmill.TimelineUpdate, windmill.TimelineDelete:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown action")
	}
	res, err := h.Client.WithToken(callerToken(c)).ManageTimelineEvent(c.Request().Context(), req.Action, req.Event)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
