package ops

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/famvault/famvault/internal/windmill"
	"github.com/famvault/famvault/models"
)

const recentJobsWindow = 200

// JobStats fetches the running and recently finished job lists in parallel
// and reduces them to the dashboard counters. "Today" is local time and its
// lower bound is inclusive: a job created exactly at midnight counts.
func (m *Monitor) JobStats(ctx context.Context) (*models.JobStats, error) {
	var running, recent []models.Job

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		running, err = m.backend.ListJobs(gctx, windmill.JobFilter{Running: true})
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = m.backend.ListJobs(gctx, windmill.JobFilter{Limit: recentJobsWindow})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := reduceJobStats(m.now(), running, recent)
	return &stats, nil
}

func reduceJobStats(now time.Time, running, recent []models.Job) models.JobStats {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats := models.JobStats{Running: len(running)}
	for _, j := range recent {
		if j.Running || j.CreatedAt.Before(midnight) {
			continue
		}
		if j.Success {
			stats.CompletedToday++
		} else {
			stats.FailedToday++
		}
	}
	return stats
}
