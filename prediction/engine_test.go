package prediction

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/medicore/ai-service/catalog"
)

func findPrediction(t *testing.T, predictions []Prediction, disease string) Prediction {
	t.Helper()
	for _, p := range predictions {
		if p.Disease == disease {
			return p
		}
	}
	t.Fatalf("Expected prediction for %s", disease)
	return Prediction{}
}

func TestPredictRegionNeelamburJuly(t *testing.T) {
	engine := NewDefaultEngine()
	profile, _ := catalog.Regions().Lookup("Neelambur")

	predictions := engine.PredictRegion(profile, 30, time.July)
	if len(predictions) != len(profile.BaseRates) {
		t.Fatalf("Expected %d predictions, got %d", len(profile.BaseRates), len(predictions))
	}

	dengue := predictions[0]
	if dengue.Disease != "Dengue Fever" {
		t.Fatalf("Expected Dengue Fever first in July, got %s", dengue.Disease)
	}
	if dengue.PredictedCases30d != 854 {
		t.Errorf("Expected 854 dengue cases, got %d", dengue.PredictedCases30d)
	}
	if dengue.AvgDailyCases != 28.5 {
		t.Errorf("Expected 28.5 dengue cases per day, got %v", dengue.AvgDailyCases)
	}
	if dengue.Trend != TrendRising {
		t.Errorf("Expected rising dengue trend, got %s", dengue.Trend)
	}
	if dengue.Confidence != 0.8 {
		t.Errorf("Expected confidence 0.8, got %v", dengue.Confidence)
	}
	if dengue.EffectiveRisk != 1.65 {
		t.Errorf("Expected effective risk 1.65, got %v", dengue.EffectiveRisk)
	}
	if dengue.Region != "Neelambur" {
		t.Errorf("Expected region Neelambur, got %s", dengue.Region)
	}

	flu := findPrediction(t, predictions, "Influenza")
	if flu.PredictedCases30d != 557 || flu.Trend != TrendDeclining || flu.EffectiveRisk != 0.88 {
		t.Errorf("Unexpected influenza prediction: %+v", flu)
	}

	hypertension := findPrediction(t, predictions, "Hypertension")
	if hypertension.PredictedCases30d != 475 || hypertension.Trend != TrendStable {
		t.Errorf("Unexpected hypertension prediction: %+v", hypertension)
	}

	for i := 1; i < len(predictions); i++ {
		if predictions[i-1].PredictedCases30d < predictions[i].PredictedCases30d {
			t.Errorf("Predictions not sorted at %d: %d < %d", i,
				predictions[i-1].PredictedCases30d, predictions[i].PredictedCases30d)
		}
	}
}

func TestPredictRegionInvariantsAllRegions(t *testing.T) {
	engine := NewDefaultEngine()

	for _, profile := range catalog.Regions().Profiles() {
		for month := time.January; month <= time.December; month++ {
			predictions := engine.PredictRegion(profile, 30, month)
			if len(predictions) != len(profile.BaseRates) {
				t.Errorf("%s/%v: expected %d predictions, got %d", profile.Name, month, len(profile.BaseRates), len(predictions))
			}
			for _, p := range predictions {
				if p.Confidence < 0 || p.Confidence > 0.95 {
					t.Errorf("%s/%s: confidence %v out of range", profile.Name, p.Disease, p.Confidence)
				}
				if p.PredictedCases30d < 0 {
					t.Errorf("%s/%s: negative cases %d", profile.Name, p.Disease, p.PredictedCases30d)
				}
			}
		}
	}
}

func TestPredictRegionConfidence(t *testing.T) {
	engine := NewDefaultEngine()

	tests := []struct {
		region   string
		expected float64
	}{
		{"Neelambur", 0.8},
		{"Saravampatti", 0.79},
		{"Peelamedu", 0.82},
		{"Gandhipuram", 0.84},
		{"Ukkadam", 0.81},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			profile, _ := catalog.Regions().Lookup(tt.region)
			predictions := engine.PredictRegion(profile, 30, time.March)
			if predictions[0].Confidence != tt.expected {
				t.Errorf("Expected confidence %v, got %v", tt.expected, predictions[0].Confidence)
			}
		})
	}
}

func TestPredictRegionConfidenceCapAndBonus(t *testing.T) {
	engine := NewEngine(catalog.Regions(), catalog.Seasons())

	large := catalog.RegionProfile{
		Name:       "Metro",
		BaseRates:  []catalog.DiseaseRate{{"Hypertension", 0.2}},
		Population: 500000,
		RiskFactor: 1,
	}
	if got := engine.PredictRegion(large, 30, time.March)[0].Confidence; got != 0.95 {
		t.Errorf("Expected confidence capped at 0.95, got %v", got)
	}

	small := catalog.RegionProfile{
		Name:       "Village",
		BaseRates:  []catalog.DiseaseRate{{"Hypertension", 0.2}, {"Asthma", 0.1}},
		Population: 20000,
		RiskFactor: 1,
	}
	// 0.70 + 0.2*0.15, no bonus for two diseases
	if got := engine.PredictRegion(small, 30, time.March)[0].Confidence; got != 0.73 {
		t.Errorf("Expected confidence 0.73, got %v", got)
	}
}

func TestPredictRegionStableTies(t *testing.T) {
	engine := NewDefaultEngine()
	profile := catalog.RegionProfile{
		Name: "Ties",
		BaseRates: []catalog.DiseaseRate{
			{"Zeta", 0.1}, {"Alpha", 0.1}, {"Bigger", 0.3}, {"Mid", 0.1},
		},
		Population: 36500,
		RiskFactor: 1,
	}

	predictions := engine.PredictRegion(profile, 30, time.March)
	order := []string{"Bigger", "Zeta", "Alpha", "Mid"}
	for i, disease := range order {
		if predictions[i].Disease != disease {
			t.Errorf("Position %d: expected %s, got %s", i, disease, predictions[i].Disease)
		}
	}
	// 0.1 * 36500 / 365 = 10 per day
	if predictions[1].PredictedCases30d != 300 || predictions[1].AvgDailyCases != 10 {
		t.Errorf("Unexpected tie prediction: %+v", predictions[1])
	}
}

func TestPredictRegionDaysAheadNotValidated(t *testing.T) {
	engine := NewDefaultEngine()
	profile := catalog.RegionProfile{
		Name:       "Flat",
		BaseRates:  []catalog.DiseaseRate{{"Hypertension", 0.1}},
		Population: 36500,
		RiskFactor: 1,
	}

	tests := []struct {
		days     int
		expected int
	}{
		{0, 0},
		{1, 10},
		{7, 70},
		{-3, -30},
	}

	for _, tt := range tests {
		got := engine.PredictRegion(profile, tt.days, time.March)[0]
		if got.PredictedCases30d != tt.expected {
			t.Errorf("days=%d: expected %d cases, got %d", tt.days, tt.expected, got.PredictedCases30d)
		}
		if got.AvgDailyCases != 10 {
			t.Errorf("days=%d: expected daily average independent of horizon, got %v", tt.days, got.AvgDailyCases)
		}
	}
}

func TestPredictAggregateSumsRegions(t *testing.T) {
	engine := NewDefaultEngine()

	for _, days := range []int{7, 30, 90} {
		aggregate := engine.PredictAggregate(days, time.August)

		expected := make(map[string]int)
		maxConfidence := make(map[string]float64)
		for _, profile := range catalog.Regions().Profiles() {
			for _, p := range engine.PredictRegion(profile, days, time.August) {
				expected[p.Disease] += p.PredictedCases30d
				if p.Confidence > maxConfidence[p.Disease] {
					maxConfidence[p.Disease] = p.Confidence
				}
			}
		}

		if len(aggregate) != len(expected) {
			t.Fatalf("days=%d: expected %d diseases, got %d", days, len(expected), len(aggregate))
		}
		for _, p := range aggregate {
			if p.PredictedCases30d != expected[p.Disease] {
				t.Errorf("days=%d %s: expected sum %d, got %d", days, p.Disease, expected[p.Disease], p.PredictedCases30d)
			}
			if p.Confidence != maxConfidence[p.Disease] {
				t.Errorf("days=%d %s: expected max confidence %v, got %v", days, p.Disease, maxConfidence[p.Disease], p.Confidence)
			}
			if p.Region != catalog.OverallRegionLabel {
				t.Errorf("Expected overall region label, got %s", p.Region)
			}
			if p.EffectiveRisk != 0 {
				t.Errorf("Expected no effective risk on aggregates, got %v", p.EffectiveRisk)
			}
		}
	}
}

func TestPredictAggregateTrendUsesCatalogSize(t *testing.T) {
	engine := NewDefaultEngine()

	tests := []struct {
		month    time.Month
		disease  string
		expected Trend
	}{
		// Dengue listed in 4 of 5 regions, all rising: 4/5 > 0.3
		{time.July, "Dengue Fever", TrendRising},
		// Influenza declining everywhere
		{time.July, "Influenza", TrendDeclining},
		// Malaria only in Saravampatti: rising there, but 1/5 stays stable
		{time.July, "Malaria", TrendStable},
		{time.March, "Malaria", TrendStable},
		{time.January, "Influenza", TrendRising},
		{time.July, "Hypertension", TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.disease+"/"+tt.month.String(), func(t *testing.T) {
			got := findPrediction(t, engine.PredictAggregate(30, tt.month), tt.disease)
			if got.Trend != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got.Trend)
			}
		})
	}

	saravampatti, _ := catalog.Regions().Lookup("Saravampatti")
	local := findPrediction(t, engine.PredictRegion(saravampatti, 30, time.July), "Malaria")
	if local.Trend != TrendRising {
		t.Errorf("Expected malaria rising in Saravampatti, got %s", local.Trend)
	}
}

func TestPredictAggregateSorted(t *testing.T) {
	aggregate := NewDefaultEngine().PredictAggregate(30, time.October)
	for i := 1; i < len(aggregate); i++ {
		if aggregate[i-1].PredictedCases30d < aggregate[i].PredictedCases30d {
			t.Errorf("Aggregate not sorted at %d", i)
		}
	}
}

func TestPredict(t *testing.T) {
	engine := NewDefaultEngine()

	report, err := engine.Predict("Ukkadam", 30, time.July)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if report.Region != "Ukkadam" || report.PeriodDays != 30 || report.DataSource != SourceSimulated {
		t.Errorf("Unexpected report header: %+v", report)
	}
	if len(report.Predictions) != 7 {
		t.Errorf("Expected 7 predictions, got %d", len(report.Predictions))
	}

	overall, err := engine.Predict("Overall", 30, time.July)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if overall.Region != catalog.OverallRegionLabel {
		t.Errorf("Expected %s, got %s", catalog.OverallRegionLabel, overall.Region)
	}
	if len(overall.Predictions) != DefaultTopN {
		t.Errorf("Expected overall truncated to %d, got %d", DefaultTopN, len(overall.Predictions))
	}
}

func TestPredictUnknownRegion(t *testing.T) {
	_, err := NewDefaultEngine().Predict("Atlantis", 30, time.July)
	if err == nil {
		t.Fatal("Expected error for unknown region")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected *NotFoundError, got %T", err)
	}
	if notFound.Region != "Atlantis" {
		t.Errorf("Expected region Atlantis, got %s", notFound.Region)
	}

	expected := []string{"Neelambur", "Saravampatti", "Peelamedu", "Gandhipuram", "Ukkadam", "Overall"}
	if len(notFound.Valid) != len(expected) {
		t.Fatalf("Expected %d valid names, got %v", len(expected), notFound.Valid)
	}
	for i, name := range expected {
		if notFound.Valid[i] != name {
			t.Errorf("Valid[%d]: expected %s, got %s", i, name, notFound.Valid[i])
		}
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "Unknown region: Atlantis. Available: Neelambur") || !strings.HasSuffix(msg, ", Overall") {
		t.Errorf("Unexpected error message: %s", msg)
	}
}

func TestTopN(t *testing.T) {
	predictions := make([]Prediction, 12)
	if got := len(TopN(predictions, 10)); got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
	if got := len(TopN(predictions[:3], 10)); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := len(TopN(predictions, -1)); got != 12 {
		t.Errorf("Expected no truncation for negative n, got %d", got)
	}
}

func TestRoundingHalfToEven(t *testing.T) {
	intTests := []struct {
		input    float64
		expected int
	}{
		{2.5, 2},
		{3.5, 4},
		{-2.5, -2},
		{2.4999, 2},
		{2.5001, 3},
	}
	for _, tt := range intTests {
		if got := roundInt(tt.input); got != tt.expected {
			t.Errorf("roundInt(%v) = %d, want %d", tt.input, got, tt.expected)
		}
	}

	if got := roundTo(0.25, 1); got != 0.2 {
		t.Errorf("roundTo(0.25, 1) = %v, want 0.2", got)
	}
	if got := roundTo(0.75, 1); got != 0.8 {
		t.Errorf("roundTo(0.75, 1) = %v, want 0.8", got)
	}
	if got := roundTo(0.95*0.9, 2); got != 0.85 {
		t.Errorf("roundTo(0.95*0.9, 2) = %v, want 0.85", got)
	}
}

func TestPredictRegionEffectiveRiskBelowTie(t *testing.T) {
	tests := []struct {
		region   string
		disease  string
		month    time.Month
		expected float64
	}{
		// 0.95 × 0.9 off-peak
		{"Peelamedu", "Gastroenteritis", time.January, 0.85},
		// 1.15 × 1.3 peak
		{"Ukkadam", "Common Cold", time.November, 1.49},
	}

	engine := NewDefaultEngine()
	for _, tt := range tests {
		t.Run(tt.region+"/"+tt.disease, func(t *testing.T) {
			profile, ok := catalog.Regions().Lookup(tt.region)
			if !ok {
				t.Fatalf("Expected region %s", tt.region)
			}
			p := findPrediction(t, engine.PredictRegion(profile, 30, tt.month), tt.disease)
			if p.EffectiveRisk != tt.expected {
				t.Errorf("Expected effective risk %v, got %v", tt.expected, p.EffectiveRisk)
			}
		})
	}
}

func TestEngineConcurrentUse(t *testing.T) {
	engine := NewDefaultEngine()

	wantOverall, err := engine.Predict("Overall", 30, time.July)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	wantRegion, err := engine.Predict("Gandhipuram", 7, time.November)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var wg sync.WaitGroup
	numWorkers := 32
	iterations := 200

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				got, err := engine.Predict("Overall", 30, time.July)
				if err != nil || !reflect.DeepEqual(got, wantOverall) {
					t.Errorf("Overall forecast diverged under concurrency: %v %+v", err, got)
					return
				}
				got, err = engine.Predict("Gandhipuram", 7, time.November)
				if err != nil || !reflect.DeepEqual(got, wantRegion) {
					t.Errorf("Region forecast diverged under concurrency: %v %+v", err, got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
