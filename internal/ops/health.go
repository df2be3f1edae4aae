package ops

import (
	"context"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/famvault/famvault/internal/windmill"
	"github.com/famvault/famvault/models"
)

// Backend is the slice of the windmill client the ops rollups need.
type Backend interface {
	Version(ctx context.Context) (string, error)
	ListWorkers(ctx context.Context) ([]models.Worker, error)
	ListJobs(ctx context.Context, filter windmill.JobFilter) ([]models.Job, error)
	HealthCheck(ctx context.Context) error
}

// Monitor computes operational rollups the backend does not provide as single
// calls. Each rollup is request-scoped; Monitor itself holds no state.
type Monitor struct {
	backend Backend
	logger  *log.Logger
	now     func() time.Time
}

// NewMonitor builds a monitor over the given backend client.
func NewMonitor(backend Backend, logger *log.Logger) *Monitor {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Monitor{backend: backend, logger: logger, now: time.Now}
}

// SystemHealth probes three independent capabilities sequentially, isolating
// each probe's failure so a dead worker API never hides the version probe.
// The result always has exactly three entries, in a fixed order.
func (m *Monitor) SystemHealth(ctx context.Context) []models.ServiceHealth {
	out := make([]models.ServiceHealth, 0, 3)

	start := m.now()
	version, err := m.backend.Version(ctx)
	entry := models.ServiceHealth{
		Name:      "windmill",
		Status:    models.HealthHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
		LastCheck: m.now(),
		Details:   version,
	}
	if err != nil {
		entry.Status = models.HealthUnhealthy
		entry.Details = err.Error()
		m.logger.Printf("version probe failed: %v", err)
	}
	out = append(out, entry)

	start = m.now()
	workers, err := m.backend.ListWorkers(ctx)
	entry = models.ServiceHealth{
		Name:      "workers",
		Status:    models.HealthHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
		LastCheck: m.now(),
	}
	switch {
	case err != nil:
		entry.Status = models.HealthUnhealthy
		entry.Details = err.Error()
		m.logger.Printf("worker probe failed: %v", err)
	case len(workers) == 0:
		// The API answered but nothing can execute jobs.
		entry.Status = models.HealthDegraded
		entry.Details = "no active workers"
	default:
		entry.Details = pluralWorkers(len(workers))
	}
	out = append(out, entry)

	start = m.now()
	err = m.backend.HealthCheck(ctx)
	entry = models.ServiceHealth{
		Name:      "backend",
		Status:    models.HealthHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
		LastCheck: m.now(),
	}
	if err != nil {
		entry.Status = models.HealthUnhealthy
		entry.Details = err.Error()
		m.logger.Printf("health-check probe failed: %v", err)
	}
	out = append(out, entry)

	return out
}

func pluralWorkers(n int) string {
	if n == 1 {
		return "1 active worker"
	}
	return strconv.Itoa(n) + " active workers"
}
