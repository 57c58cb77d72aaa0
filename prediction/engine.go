// Package prediction estimates short-horizon disease case counts per region
// from the region catalog and the seasonal model, and merges the per-region
// estimates into an overall view.
package prediction

import (
	"math"
	"sort"
	"time"

	"github.com/medicore/ai-service/catalog"
)

// Trend is the direction of a disease's seasonal demand
type Trend string

const (
	TrendRising    Trend = "rising"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Policy constants for trend and confidence
const (
	risingThreshold    = 1.1
	decliningThreshold = 0.85
	aggregateThreshold = 0.3

	baseConfidence      = 0.70
	populationUnit      = 100000.0
	populationWeight    = 0.15
	diversityBonus      = 0.05
	diversityMinDisease = 5
	maxConfidence       = 0.95

	daysPerYear = 365.0

	// DefaultTopN is how many predictions responses carry
	DefaultTopN = 10
)

// Data sources reported alongside predictions
const (
	SourceSimulated = "simulated"
	SourceLive      = "live"
)

// Prediction is a per-disease case estimate.
// In overall mode the counts are sums across regions and EffectiveRisk is zero.
type Prediction struct {
	Disease           string  `json:"disease"`
	Region            string  `json:"region"`
	PredictedCases30d int     `json:"predicted_cases_30d"`
	AvgDailyCases     float64 `json:"avg_daily_cases"`
	Trend             Trend   `json:"trend"`
	Confidence        float64 `json:"confidence"`
	EffectiveRisk     float64 `json:"effective_risk,omitempty"`
}

// Report is the result of a prediction request
type Report struct {
	Predictions  []Prediction `json:"predictions"`
	Region       string       `json:"region"`
	PeriodDays   int          `json:"period_days"`
	DataSource   string       `json:"data_source"`
	TotalRecords int          `json:"total_records,omitempty"`
}

// Engine combines the region catalog and the seasonal model.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	regions *catalog.RegionCatalog
	seasons catalog.SeasonalModel
}

// NewEngine creates an engine over the given tables
func NewEngine(regions *catalog.RegionCatalog, seasons catalog.SeasonalModel) *Engine {
	return &Engine{regions: regions, seasons: seasons}
}

// NewDefaultEngine creates an engine over the built-in Coimbatore tables
func NewDefaultEngine() *Engine {
	return NewEngine(catalog.Regions(), catalog.Seasons())
}

// Regions returns the engine's region catalog
func (e *Engine) Regions() *catalog.RegionCatalog {
	return e.regions
}

// PredictRegion estimates every disease in profile for the next daysAhead days.
// daysAhead is not validated; zero or negative values scale the arithmetic.
// The full list is returned sorted by predicted cases, ties in catalog order.
func (e *Engine) PredictRegion(profile catalog.RegionProfile, daysAhead int, month time.Month) []Prediction {
	predictions := make([]Prediction, 0, len(profile.BaseRates))
	population := float64(profile.Population)
	confidence := regionConfidence(profile)

	for _, rate := range profile.BaseRates {
		seasonMult := e.seasons.Multiplier(rate.Disease, month)
		dailyRate := rate.Rate * population * profile.RiskFactor * seasonMult / daysPerYear

		predictions = append(predictions, Prediction{
			Disease:           rate.Disease,
			Region:            profile.Name,
			PredictedCases30d: roundInt(dailyRate * float64(daysAhead)),
			AvgDailyCases:     roundTo(dailyRate, 1),
			Trend:             seasonalTrend(seasonMult),
			Confidence:        confidence,
			EffectiveRisk:     roundTo(profile.RiskFactor*seasonMult, 2),
		})
	}

	sortByCases(predictions)
	return predictions
}

// PredictAggregate merges the predictions of every catalog region by disease.
// Cases and daily averages are summed, confidence is the maximum, and the trend
// comes from the mean trend score over all catalog regions, so a disease only
// listed in some regions is pulled toward stable.
func (e *Engine) PredictAggregate(daysAhead int, month time.Month) []Prediction {
	type accumulator struct {
		prediction Prediction
		trendSum   int
	}

	var order []string
	merged := make(map[string]*accumulator)

	for _, profile := range e.regions.Profiles() {
		for _, p := range e.PredictRegion(profile, daysAhead, month) {
			acc, ok := merged[p.Disease]
			if !ok {
				acc = &accumulator{prediction: Prediction{
					Disease: p.Disease,
					Region:  catalog.OverallRegionLabel,
					Trend:   TrendStable,
				}}
				merged[p.Disease] = acc
				order = append(order, p.Disease)
			}
			acc.prediction.PredictedCases30d += p.PredictedCases30d
			acc.prediction.AvgDailyCases += p.AvgDailyCases
			acc.prediction.Confidence = math.Max(acc.prediction.Confidence, p.Confidence)
			acc.trendSum += trendScore(p.Trend)
		}
	}

	regionCount := max(e.regions.Len(), 1)
	predictions := make([]Prediction, 0, len(order))
	for _, disease := range order {
		acc := merged[disease]
		meanScore := float64(acc.trendSum) / float64(regionCount)
		acc.prediction.Trend = scoreTrend(meanScore)
		acc.prediction.AvgDailyCases = roundTo(acc.prediction.AvgDailyCases, 1)
		predictions = append(predictions, acc.prediction)
	}

	sortByCases(predictions)
	return predictions
}

// Predict runs a single-region or overall prediction and truncates the result
// to DefaultTopN. Unknown regions return a *NotFoundError.
func (e *Engine) Predict(region string, daysAhead int, month time.Month) (Report, error) {
	if region == catalog.OverallRegion {
		return Report{
			Predictions: TopN(e.PredictAggregate(daysAhead, month), DefaultTopN),
			Region:      catalog.OverallRegionLabel,
			PeriodDays:  daysAhead,
			DataSource:  SourceSimulated,
		}, nil
	}

	profile, ok := e.regions.Lookup(region)
	if !ok {
		return Report{}, &NotFoundError{
			Region: region,
			Valid:  append(e.regions.Names(), catalog.OverallRegion),
		}
	}

	return Report{
		Predictions: TopN(e.PredictRegion(profile, daysAhead, month), DefaultTopN),
		Region:      region,
		PeriodDays:  daysAhead,
		DataSource:  SourceSimulated,
	}, nil
}

// TopN returns at most n leading predictions
func TopN(predictions []Prediction, n int) []Prediction {
	if n < 0 || len(predictions) <= n {
		return predictions
	}
	return predictions[:n]
}

func regionConfidence(profile catalog.RegionProfile) float64 {
	confidence := baseConfidence + (float64(profile.Population)/populationUnit)*populationWeight
	if len(profile.BaseRates) > diversityMinDisease {
		confidence += diversityBonus
	}
	return roundTo(math.Min(maxConfidence, confidence), 2)
}

func seasonalTrend(seasonMult float64) Trend {
	switch {
	case seasonMult > risingThreshold:
		return TrendRising
	case seasonMult < decliningThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func trendScore(t Trend) int {
	switch t {
	case TrendRising:
		return 1
	case TrendDeclining:
		return -1
	default:
		return 0
	}
}

func scoreTrend(mean float64) Trend {
	switch {
	case mean > aggregateThreshold:
		return TrendRising
	case mean < -aggregateThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func sortByCases(predictions []Prediction) {
	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].PredictedCases30d > predictions[j].PredictedCases30d
	})
}
