package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/famvault/famvault/internal/ops"
	"github.com/famvault/famvault/internal/windmill"
)

// OpsHandler exposes the locally computed operational rollups plus raw job
// and worker listings for the admin dashboard.
type OpsHandler struct {
	Monitor *ops.Monitor
	Client  *windmill.Client
}

func (h *OpsHandler) Register(g *echo.Group) {
	g.GET("/health", h.health)
	g.GET("/stats", h.stats)
	g.GET("/jobs", h.jobs)
	g.GET("/jobs/:id", h.job)
	g.GET("/workers", h.workers)
	g.GET("/schedules", h.schedules)
}

// health always answers 200: partial backend failure is data, not an error.
func (h *OpsHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Monitor.SystemHealth(c.Request().Context()))
}

func (h *OpsHandler) stats(c echo.Context) error {
	stats, err := h.Monitor.JobStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *OpsHandler) jobs(c echo.Context) error {
	filter := windmill.JobFilter{
		Running:   c.QueryParam("running") == "true",
		CreatedBy: c.QueryParam("created_by"),
		Script:    c.QueryParam("script"),
	}
	if s := c.QueryParam("success"); s != "" {
		ok, err := strconv.ParseBool(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "success must be true or false")
		}
		filter.Success = &ok
	}
	jobs, err := h.Client.ListJobs(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

func (h *OpsHandler) job(c echo.Context) error {
	job, err := h.Client.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

func (h *OpsHandler) workers(c echo.Context) error {
	workers, err := h.Client.ListWorkers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workers)
}

func (h *OpsHandler) schedules(c echo.Context) error {
	schedules, err := h.Client.ListSchedules(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, schedules)
}
