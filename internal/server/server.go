package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/famvault/famvault/config"
	"github.com/famvault/famvault/internal/ops"
	"github.com/famvault/famvault/internal/telemetry"
	"github.com/famvault/famvault/internal/windmill"
)

// Run starts the gateway: a thin REST facade the web UI talks to, where every
// handler is a forwarding call into the backend workflow client.
func Run(ctx context.Context, cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestID())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		var apiErr *windmill.APIError
		if errors.As(err, &apiErr) {
			// Backend verdicts pass through with their own status.
			code = apiErr.Status
			msg = apiErr.Message
		} else if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if cfg.Telemetry.Enabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	rpcLogger := log.New(log.Writer(), "[RPC] ", log.LstdFlags)
	client := windmill.New(cfg.Backend)
	client.SetLogger(rpcLogger)
	if cfg.Telemetry.Enabled {
		client.SetMetrics(telemetry.NewRPCMetrics(cfg.Telemetry.Namespace, prometheus.DefaultRegisterer))
	}

	opsLogger := log.New(log.Writer(), "[OPS] ", log.LstdFlags)
	monitor := ops.NewMonitor(client, opsLogger)

	api := e.Group("/api")

	ah := &AuthHandler{Client: client, CookieSecure: cfg.Server.CookieSecure}
	ah.Register(api.Group("/auth"))

	authed := api.Group("", requireBearer)

	dh := &DocumentsHandler{Client: client}
	dh.Register(authed.Group("/documents"))

	ch := &ChatHandler{Client: client}
	ch.Register(authed.Group("/chat"))

	th := &TimelineHandler{Client: client}
	th.Register(authed.Group("/timeline"))

	adm := &AdminHandler{Client: client}
	adm.Register(authed.Group("/admin"))

	oh := &OpsHandler{Monitor: monitor, Client: client}
	oh.Register(authed.Group("/ops"))

	addr := cfg.Server.Listen
	baseLogger.Printf("listening on %s", addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return e.Shutdown(context.Background())
	})
	return g.Wait()
}
