package prediction

import (
	"errors"
	"math"
)

// ObservedCount is a recorded case count for one disease over a window
type ObservedCount struct {
	Disease string `json:"disease"`
	Count   int    `json:"count"`
}

// ErrNoObservations is returned when there is nothing to project from
var ErrNoObservations = errors.New("no observed disease counts")

// ErrInvalidWindow is returned when the observation window is not positive
var ErrInvalidWindow = errors.New("observation window must be positive")

// FromObservedCounts projects recorded counts over the last days into 30-day
// predictions. A disease trends rising when its daily average is 20% above the
// mean daily average per disease and declining when it is 20% below.
func FromObservedCounts(counts []ObservedCount, region string, days int) (Report, error) {
	if len(counts) == 0 {
		return Report{}, ErrNoObservations
	}
	if days <= 0 {
		return Report{}, ErrInvalidWindow
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	meanDaily := float64(total) / float64(len(counts)) / float64(days)
	predictions := make([]Prediction, 0, len(counts))

	for _, c := range counts {
		disease := c.Disease
		if disease == "" {
			disease = "Unknown"
		}
		avgDaily := roundTo(float64(c.Count)/float64(days), 1)

		trend := TrendStable
		switch {
		case avgDaily > meanDaily*1.2:
			trend = TrendRising
		case avgDaily < meanDaily*0.8:
			trend = TrendDeclining
		}

		confidence := math.Min(maxConfidence, 0.6+(float64(c.Count)/float64(max(total, 1)))*0.3)

		predictions = append(predictions, Prediction{
			Disease:           disease,
			Region:            region,
			PredictedCases30d: roundInt(avgDaily * 30),
			AvgDailyCases:     avgDaily,
			Trend:             trend,
			Confidence:        roundTo(confidence, 2),
		})
	}

	sortByCases(predictions)
	return Report{
		Predictions:  TopN(predictions, DefaultTopN),
		Region:       region,
		PeriodDays:   days,
		DataSource:   SourceLive,
		TotalRecords: total,
	}, nil
}
