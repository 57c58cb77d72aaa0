package catalog

import "time"

// SeasonalModel maps a disease and calendar month to a demand multiplier
type SeasonalModel interface {
	Multiplier(disease string, month time.Month) float64
}

// seasonalRule applies peak in the listed months and offPeak otherwise
type seasonalRule struct {
	months  map[time.Month]struct{}
	peak    float64
	offPeak float64
}

// SeasonalTable is a SeasonalModel backed by fixed peak-month rules.
// Diseases without a rule map to 1.0 for every month.
type SeasonalTable struct {
	rules map[string]seasonalRule
}

func rule(peak, offPeak float64, months ...time.Month) seasonalRule {
	set := make(map[time.Month]struct{}, len(months))
	for _, m := range months {
		set[m] = struct{}{}
	}
	return seasonalRule{months: set, peak: peak, offPeak: offPeak}
}

var defaultSeasons = &SeasonalTable{
	rules: map[string]seasonalRule{
		"Influenza":       rule(1.4, 0.8, time.November, time.December, time.January, time.February),
		"Dengue Fever":    rule(1.5, 0.6, time.June, time.July, time.August, time.September, time.October),
		"Malaria":         rule(1.3, 0.7, time.July, time.August, time.September, time.October),
		"Common Cold":     rule(1.3, 0.9, time.October, time.November, time.December, time.January),
		"Gastroenteritis": rule(1.2, 0.9, time.April, time.May, time.June),
	},
}

// Seasons returns the built-in seasonal table
func Seasons() *SeasonalTable {
	return defaultSeasons
}

// Multiplier returns the seasonal multiplier for disease in month
func (t *SeasonalTable) Multiplier(disease string, month time.Month) float64 {
	r, ok := t.rules[disease]
	if !ok {
		return 1.0
	}
	if _, peak := r.months[month]; peak {
		return r.peak
	}
	return r.offPeak
}
