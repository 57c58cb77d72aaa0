// Package inventory produces medicine restock recommendations from the clinic's
// live stock levels, falling back to a simulated stock table when the live
// inventory cannot be fetched.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/medicore/ai-service/logging"
	"github.com/medicore/ai-service/metrics"
)

// Urgency levels by estimated days of stock remaining
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
)

// Data sources of a plan
const (
	SourceLive      = "live"
	SourceSimulated = "simulated"
)

const (
	liveConfidence      = 0.85
	simulatedConfidence = 0.82
	safetyStock         = 200
	minLiveDemand       = 100
	maxLiveItems        = 10
)

// ErrEmptyInventory is returned when the live inventory has no items
var ErrEmptyInventory = errors.New("live inventory is empty")

// StockItem is one medicine with its current stock
type StockItem struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// StockSource fetches live stock levels
type StockSource interface {
	FetchInventory(ctx context.Context) ([]StockItem, error)
}

// Recommendation is the restock advice for one medicine
type Recommendation struct {
	MedicineName           string  `json:"medicine_name"`
	CurrentStock           int     `json:"current_stock"`
	PredictedDemand30d     int     `json:"predicted_demand_30d"`
	RecommendedOrderQty    int     `json:"recommended_order_qty"`
	UrgencyLevel           string  `json:"urgency_level"`
	EstimatedDaysRemaining int     `json:"estimated_days_remaining"`
	Confidence             float64 `json:"confidence"`
	DataSource             string  `json:"data_source"`
}

// Plan is a set of restock recommendations, most urgent first
type Plan struct {
	Recommendations []Recommendation `json:"recommendations"`
	DataSource      string           `json:"data_source"`
}

// Planner builds restock plans
type Planner struct {
	source StockSource
}

// NewPlanner creates a planner. A nil source always yields the simulated plan.
func NewPlanner(source StockSource) *Planner {
	return &Planner{source: source}
}

// Plan returns the live plan when the stock source answers with items, and the
// simulated plan otherwise. Live failures are logged and never returned.
func (p *Planner) Plan(ctx context.Context) Plan {
	plan, err := p.tryLive(ctx)
	if err != nil {
		logging.Warn("Live inventory unavailable, using simulated stock", "error", err)
		metrics.RestockPlansTotal.WithLabelValues(SourceSimulated).Inc()
		return Simulated()
	}
	metrics.RestockPlansTotal.WithLabelValues(SourceLive).Inc()
	return plan
}

func (p *Planner) tryLive(ctx context.Context) (Plan, error) {
	if p.source == nil {
		return Plan{}, errors.New("no live stock source configured")
	}

	items, err := p.source.FetchInventory(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to fetch inventory: %w", err)
	}
	if len(items) == 0 {
		return Plan{}, ErrEmptyInventory
	}

	recs := make([]Recommendation, 0, len(items))
	for _, item := range items {
		// Live data has no demand history, assume twice the current stock
		demand := max(item.Stock*2, minLiveDemand)
		recs = append(recs, recommend(item.Name, item.Stock, demand, liveConfidence, SourceLive))
	}

	sortByDaysRemaining(recs)
	if len(recs) > maxLiveItems {
		recs = recs[:maxLiveItems]
	}
	return Plan{Recommendations: recs, DataSource: SourceLive}, nil
}

var simulatedStock = []struct {
	name   string
	stock  int
	demand int
}{
	{"Azithromycin 500mg", 200, 750},
	{"Paracetamol 500mg", 1500, 2400},
	{"Amoxicillin 500mg", 450, 900},
	{"Cetirizine 10mg", 800, 1350},
	{"Omeprazole 20mg", 600, 1100},
	{"Metformin 500mg", 350, 800},
	{"Amlodipine 5mg", 280, 600},
}

// Simulated returns the plan computed from the built-in stock table
func Simulated() Plan {
	recs := make([]Recommendation, 0, len(simulatedStock))
	for _, med := range simulatedStock {
		recs = append(recs, recommend(med.name, med.stock, med.demand, simulatedConfidence, SourceSimulated))
	}
	sortByDaysRemaining(recs)
	return Plan{Recommendations: recs, DataSource: SourceSimulated}
}

func recommend(name string, stock, demand int, confidence float64, source string) Recommendation {
	daily := math.Max(float64(demand)/30, 1)
	daysRemaining := int(math.RoundToEven(float64(stock) / daily))

	return Recommendation{
		MedicineName:           name,
		CurrentStock:           stock,
		PredictedDemand30d:     demand,
		RecommendedOrderQty:    max(demand-stock, 0) + safetyStock,
		UrgencyLevel:           urgency(daysRemaining),
		EstimatedDaysRemaining: daysRemaining,
		Confidence:             confidence,
		DataSource:             source,
	}
}

func urgency(daysRemaining int) string {
	switch {
	case daysRemaining <= 7:
		return UrgencyCritical
	case daysRemaining <= 14:
		return UrgencyHigh
	case daysRemaining <= 21:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

func sortByDaysRemaining(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].EstimatedDaysRemaining < recs[j].EstimatedDaysRemaining
	})
}
