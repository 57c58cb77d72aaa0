// Package scheduler refreshes the restock snapshot on a fixed interval and warns
// when the snapshot goes stale.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/medicore/ai-service/interfaces"
	"github.com/medicore/ai-service/logging"
	"github.com/medicore/ai-service/metrics"
)

const (
	refreshTimeout  = 30 * time.Second
	staleMultiplier = 3
	skippedLabel    = "skipped"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler runs the restock refresh job
type Scheduler struct {
	dataStore interfaces.DataStore
	planner   interfaces.RestockPlanner
	interval  time.Duration
	scheduler *gocron.Scheduler

	monitorEvery time.Duration
	stop         chan struct{}
	stopOnce     sync.Once
}

// NewScheduler creates a scheduler refreshing every interval
func NewScheduler(dataStore interfaces.DataStore, planner interfaces.RestockPlanner, interval time.Duration) *Scheduler {
	return &Scheduler{
		dataStore:    dataStore,
		planner:      planner,
		interval:     interval,
		scheduler:    gocron.NewScheduler(time.Local),
		monitorEvery: interval,
		stop:         make(chan struct{}),
	}
}

// Start loads the first snapshot synchronously, then schedules refreshes
func (s *Scheduler) Start() error {
	if s.interval < time.Minute {
		return fmt.Errorf("refresh interval must be at least one minute, got %s", s.interval)
	}

	s.refresh()

	minutes := int(s.interval / time.Minute)
	_, err := s.scheduler.Every(minutes).Minutes().WaitForSchedule().SingletonMode().Do(s.refresh)
	if err != nil {
		logging.Error("Failed to schedule restock refresh", "error", err)
		return fmt.Errorf("failed to schedule restock refresh: %w", err)
	}

	s.scheduler.StartAsync()
	go s.monitor()

	logging.Info("Restock refresh scheduled", "every_minutes", minutes)
	return nil
}

// Stop stops the job scheduler and the staleness monitor
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.scheduler.Stop()
	})
}

// refresh rebuilds the restock plan unless a refresh is already running
func (s *Scheduler) refresh() {
	if !s.dataStore.BeginUpdate() {
		logging.Info("Restock refresh already in progress, skipping")
		metrics.RestockRefreshTotal.WithLabelValues(skippedLabel).Inc()
		return
	}
	defer s.dataStore.EndUpdate()

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	plan := s.planner.Plan(ctx)
	s.dataStore.UpdateRestockPlan(plan)

	metrics.RestockRefreshTotal.WithLabelValues(plan.DataSource).Inc()
	logging.Info("Restock plan refreshed",
		"source", plan.DataSource,
		"items", len(plan.Recommendations),
		"duration", time.Since(start).String(),
	)
}

func (s *Scheduler) monitor() {
	ticker := time.NewTicker(s.monitorEvery)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.checkStaleness(time.Now())
		}
	}
}

// checkStaleness reports whether the snapshot is older than staleMultiplier intervals
func (s *Scheduler) checkStaleness(now time.Time) bool {
	lastUpdate := s.dataStore.GetLastUpdated()
	age := now.Sub(lastUpdate)
	if lastUpdate.IsZero() || age > staleMultiplier*s.interval {
		logging.Warn("Restock snapshot is stale", "last_update", lastUpdate.Format(time.RFC3339), "age", age.String())
		return true
	}
	return false
}
