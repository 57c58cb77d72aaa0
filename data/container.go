// Package data provides the thread-safe store for the periodically refreshed
// restock plan. Updates swap the whole snapshot atomically.
package data

import (
	"sync/atomic"
	"time"

	"github.com/medicore/ai-service/interfaces"
	"github.com/medicore/ai-service/inventory"
	"github.com/medicore/ai-service/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the restock snapshot with atomic values for zero-downtime updates
type DataContainer struct {
	restockPlan     atomic.Value // inventory.Plan
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a container seeded with an empty plan
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.restockPlan.Store(emptyPlan())
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

func emptyPlan() inventory.Plan {
	return inventory.Plan{Recommendations: []inventory.Recommendation{}}
}

// GetRestockPlan returns the latest restock plan
func (dc *DataContainer) GetRestockPlan() inventory.Plan {
	if v := dc.restockPlan.Load(); v != nil {
		if plan, ok := v.(inventory.Plan); ok {
			return plan
		}
	}

	logging.Warn("Restock plan is empty or invalid")
	return emptyPlan()
}

// GetLastUpdated returns the time of the last plan refresh
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true while a refresh is in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateRestockPlan atomically replaces the restock plan
func (dc *DataContainer) UpdateRestockPlan(plan inventory.Plan) {
	if plan.Recommendations == nil {
		plan.Recommendations = []inventory.Recommendation{}
	}
	dc.restockPlan.Store(plan)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a refresh.
// Returns false if another refresh is already in progress.
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a refresh
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
