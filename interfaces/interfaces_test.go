package interfaces

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medicore/ai-service/interactions"
	"github.com/medicore/ai-service/inventory"
	"github.com/medicore/ai-service/prediction"
)

// MockDataStore implements DataStore for testing
type MockDataStore struct {
	plan        inventory.Plan
	lastUpdated time.Time
	updating    bool
}

func (m *MockDataStore) GetRestockPlan() inventory.Plan { return m.plan }
func (m *MockDataStore) GetLastUpdated() time.Time { return m.lastUpdated }
func (m *MockDataStore) IsUpdating() bool { return m.updating }
func (m *MockDataStore) GetServerStartTime() time.Time { return time.Time{} }

func (m *MockDataStore) UpdateRestockPlan(plan inventory.Plan) {
	m.plan = plan
	m.lastUpdated = time.Now()
}

func (m *MockDataStore) BeginUpdate() bool {
	if m.updating {
		return false
	}
	m.updating = true
	return true
}

func (m *MockDataStore) EndUpdate() { m.updating = false }

// MockBackend implements BackendClient for testing
type MockBackend struct {
	items []inventory.StockItem
	err   error
}

func (m *MockBackend) FetchInventory(ctx context.Context) ([]inventory.StockItem, error) {
	return m.items, m.err
}

func (m *MockBackend) FetchDiseaseStats(ctx context.Context, days int) ([]prediction.ObservedCount, error) {
	return nil, m.err
}

func (m *MockBackend) Configured() bool { return true }

// MockScheduler implements Scheduler for testing
type MockScheduler struct {
	started bool
	stopped bool
}

func (m *MockScheduler) Start() error {
	if m.started {
		return errors.New("already started")
	}
	m.started = true
	return nil
}

func (m *MockScheduler) Stop() { m.stopped = true }

var (
	_ DataStore          = (*MockDataStore)(nil)
	_ BackendClient      = (*MockBackend)(nil)
	_ Scheduler          = (*MockScheduler)(nil)
	_ RestockPlanner     = (*inventory.Planner)(nil)
	_ Predictor          = (*prediction.Engine)(nil)
	_ InteractionChecker = (*interactions.Matcher)(nil)
)

func TestDataStoreInterface(t *testing.T) {
	var store DataStore = &MockDataStore{}

	if !store.BeginUpdate() {
		t.Fatal("Expected first BeginUpdate to succeed")
	}
	if store.BeginUpdate() {
		t.Error("Expected second BeginUpdate to fail while updating")
	}
	store.UpdateRestockPlan(inventory.Simulated())
	store.EndUpdate()

	if store.IsUpdating() {
		t.Error("Expected update flag cleared")
	}
	if store.GetRestockPlan().DataSource != inventory.SourceSimulated {
		t.Errorf("Unexpected plan source %s", store.GetRestockPlan().DataSource)
	}
}

func TestPlannerAcceptsBackendClient(t *testing.T) {
	var client BackendClient = &MockBackend{items: []inventory.StockItem{{Name: "Paracetamol", Stock: 10}}}

	plan := inventory.NewPlanner(client).Plan(context.Background())
	if plan.DataSource != inventory.SourceLive {
		t.Errorf("Expected live plan, got %s", plan.DataSource)
	}
}

func TestSchedulerInterface(t *testing.T) {
	s := &MockScheduler{}
	var sched Scheduler = s

	if err := sched.Start(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := sched.Start(); err == nil {
		t.Error("Expected error on second start")
	}
	sched.Stop()
	if !s.stopped {
		t.Error("Scheduler should be stopped")
	}
}
