// Package recommend suggests medicines for a diagnosed disease from the
// medicine catalog.
package recommend

import (
	"strings"

	"github.com/medicore/ai-service/catalog"
)

const (
	noteMatched  = "AI-generated recommendation. Always verify with attending physician."
	noteFallback = "No specific recommendation found. Please consult a specialist."
)

// Recommendation lists the medicines suggested for a disease
type Recommendation struct {
	Disease              string             `json:"disease"`
	RecommendedMedicines []string           `json:"recommended_medicines"`
	DetailedMedicines    []catalog.Medicine `json:"detailed_medicines"`
	Note                 string             `json:"note"`
}

// Recommender looks diseases up in a medicine catalog
type Recommender struct {
	entries []catalog.DiseaseMedicines
}

// NewRecommender creates a recommender over entries
func NewRecommender(entries []catalog.DiseaseMedicines) *Recommender {
	return &Recommender{entries: entries}
}

// NewDefaultRecommender creates a recommender over the built-in catalog
func NewDefaultRecommender() *Recommender {
	return NewRecommender(catalog.MedicineCatalog())
}

// ForDisease returns the catalog entry for disease. Without an exact match the
// first entry whose name contains, or is contained in, the disease name is used
// (case-insensitive). Otherwise a generic consult-a-doctor answer is returned.
func (r *Recommender) ForDisease(disease string) Recommendation {
	entry, ok := r.lookup(disease)
	if !ok {
		return fallback(disease)
	}

	names := make([]string, len(entry.Medicines))
	for i, m := range entry.Medicines {
		names[i] = m.Name
	}
	detailed := make([]catalog.Medicine, len(entry.Medicines))
	copy(detailed, entry.Medicines)

	return Recommendation{
		Disease:              entry.Disease,
		RecommendedMedicines: names,
		DetailedMedicines:    detailed,
		Note:                 noteMatched,
	}
}

func (r *Recommender) lookup(disease string) (catalog.DiseaseMedicines, bool) {
	for _, e := range r.entries {
		if e.Disease == disease {
			return e, true
		}
	}

	lower := strings.ToLower(disease)
	for _, e := range r.entries {
		key := strings.ToLower(e.Disease)
		if strings.Contains(lower, key) || strings.Contains(key, lower) {
			return e, true
		}
	}
	return catalog.DiseaseMedicines{}, false
}

func fallback(disease string) Recommendation {
	first := disease
	if fields := strings.Fields(disease); len(fields) > 0 {
		first = fields[0]
	}
	return Recommendation{
		Disease:              disease,
		RecommendedMedicines: []string{first + " treatment — consult doctor"},
		DetailedMedicines:    []catalog.Medicine{},
		Note:                 noteFallback,
	}
}
