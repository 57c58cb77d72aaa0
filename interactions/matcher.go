package interactions

import (
	"strings"

	"github.com/medicore/ai-service/catalog"
)

// Warning is a detected interaction between two input drugs.
// Drug1 and Drug2 echo the caller's spelling, not the normalized names.
type Warning struct {
	Drug1       string           `json:"drug1"`
	Drug2       string           `json:"drug2"`
	Severity    catalog.Severity `json:"severity"`
	Description string           `json:"description"`
}

// Report is the result of a normalized interaction check
type Report struct {
	Safe                   bool      `json:"safe"`
	Warnings               []Warning `json:"warnings"`
	CheckedDrugs           []string  `json:"checked_drugs"`
	NormalizedDrugs        []string  `json:"normalized_drugs,omitempty"`
	TotalInteractionsFound int       `json:"total_interactions_found"`
}

// ScreenReport is the result of a known-interactions screening
type ScreenReport struct {
	Safe         bool                      `json:"safe"`
	Warnings     []catalog.InteractionPair `json:"warnings"`
	CheckedDrugs []string                  `json:"checked_drugs"`
	TotalChecked int                       `json:"total_checked,omitempty"`
}

// Matcher checks drug lists against the interaction catalogs.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	normalizer *Normalizer
	pairs      []catalog.InteractionPair
	known      []catalog.InteractionPair
}

// NewMatcher creates a matcher. pairs is used by Check, known by Screen.
func NewMatcher(normalizer *Normalizer, pairs, known []catalog.InteractionPair) *Matcher {
	return &Matcher{normalizer: normalizer, pairs: pairs, known: known}
}

// NewDefaultMatcher creates a matcher over the built-in catalogs
func NewDefaultMatcher() *Matcher {
	return NewMatcher(defaultNormalizer, catalog.InteractionPairs(), catalog.KnownInteractions())
}

// CatalogSize returns the number of pairs used by Check
func (m *Matcher) CatalogSize() int {
	return len(m.pairs)
}

// Check normalizes drugs and reports every catalog pair matching an ordered
// pair of input positions i < j. A catalog pair (a, b) matches when a loosely
// matches the drug at i and b loosely matches the drug at j; the reverse
// orientation is not tried for the same positions. Warnings are not deduplicated.
func (m *Matcher) Check(drugs []string) Report {
	if len(drugs) < 2 {
		return Report{Safe: true, Warnings: []Warning{}, CheckedDrugs: drugs}
	}

	normalized := make([]string, len(drugs))
	for i, d := range drugs {
		normalized[i] = m.normalizer.Normalize(d)
	}

	warnings := []Warning{}
	for i := 0; i < len(normalized); i++ {
		for j := i + 1; j < len(normalized); j++ {
			for _, pair := range m.pairs {
				if looseMatch(pair.DrugA, normalized[i]) && looseMatch(pair.DrugB, normalized[j]) {
					warnings = append(warnings, Warning{
						Drug1:       drugs[i],
						Drug2:       drugs[j],
						Severity:    pair.Severity,
						Description: pair.Description,
					})
				}
			}
		}
	}

	return Report{
		Safe:                   len(warnings) == 0,
		Warnings:               warnings,
		CheckedDrugs:           drugs,
		NormalizedDrugs:        normalized,
		TotalInteractionsFound: len(warnings),
	}
}

// Screen reports every known interaction whose two drug names each appear as a
// substring of some input entry. Inputs are only lowercased and trimmed; no
// dosage stripping or alias resolution happens here.
func (m *Matcher) Screen(drugs []string) ScreenReport {
	if len(drugs) < 2 {
		return ScreenReport{Safe: true, Warnings: []catalog.InteractionPair{}, CheckedDrugs: drugs}
	}

	list := make([]string, len(drugs))
	for i, d := range drugs {
		list[i] = strings.ToLower(strings.TrimSpace(d))
	}

	warnings := []catalog.InteractionPair{}
	for _, pair := range m.known {
		if containedInAny(strings.ToLower(pair.DrugA), list) && containedInAny(strings.ToLower(pair.DrugB), list) {
			warnings = append(warnings, pair)
		}
	}

	return ScreenReport{
		Safe:         len(warnings) == 0,
		Warnings:     warnings,
		CheckedDrugs: drugs,
		TotalChecked: len(drugs),
	}
}

// looseMatch accepts either string containing the other.
// An empty name therefore matches every catalog entry.
func looseMatch(catalogName, drug string) bool {
	return strings.Contains(drug, catalogName) || strings.Contains(catalogName, drug)
}

func containedInAny(name string, drugs []string) bool {
	for _, d := range drugs {
		if strings.Contains(d, name) {
			return true
		}
	}
	return false
}
