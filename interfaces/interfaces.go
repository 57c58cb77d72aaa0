// Package interfaces defines the core abstractions of the AI service so that
// handlers, scheduler and server can be wired and tested independently.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/medicore/ai-service/interactions"
	"github.com/medicore/ai-service/inventory"
	"github.com/medicore/ai-service/prediction"
	"github.com/medicore/ai-service/recommend"
)

// DataStore holds the periodically refreshed restock plan.
// Reads never block on a refresh in progress.
type DataStore interface {
	GetRestockPlan() inventory.Plan
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	UpdateRestockPlan(plan inventory.Plan)
	BeginUpdate() bool
	EndUpdate()
}

// BackendClient fetches live data from the clinic backend
type BackendClient interface {
	FetchInventory(ctx context.Context) ([]inventory.StockItem, error)
	FetchDiseaseStats(ctx context.Context, days int) ([]prediction.ObservedCount, error)
	Configured() bool
}

// RestockPlanner builds a restock plan, falling back to simulated stock
type RestockPlanner interface {
	Plan(ctx context.Context) inventory.Plan
}

// Predictor forecasts disease cases per region
type Predictor interface {
	Predict(region string, days int, month time.Month) (prediction.Report, error)
}

// InteractionChecker matches drug lists against interaction catalogs
type InteractionChecker interface {
	Check(drugs []string) interactions.Report
	Screen(drugs []string) interactions.ScreenReport
	CatalogSize() int
}

// MedicineRecommender suggests medicines for a disease
type MedicineRecommender interface {
	ForDisease(disease string) recommend.Recommendation
}

// Scheduler runs the background refresh jobs
type Scheduler interface {
	Start() error
	Stop()
}

// HTTPHandler exposes every API endpoint
type HTTPHandler interface {
	PredictDisease(w http.ResponseWriter, r *http.Request)
	RecommendMedicine(w http.ResponseWriter, r *http.Request)
	ServeRestock(w http.ResponseWriter, r *http.Request)
	ServeRealStats(w http.ResponseWriter, r *http.Request)
	ScreenInteractions(w http.ResponseWriter, r *http.Request)
	CheckInteractions(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	ServePerformance(w http.ResponseWriter, r *http.Request)
}

// HealthChecker reports service and model health
type HealthChecker interface {
	HealthCheck() (status string, details map[string]any, httpStatus int)
	Performance() map[string]any
}

// InputValidator validates request input before it reaches the engines
type InputValidator interface {
	ValidateRegion(region string) error
	ValidateDisease(disease string) error
	ValidateDrugList(drugs []string) error
}
