// Package interactions resolves free-text drug names to canonical generic names
// and matches drug lists against the interaction catalogs.
package interactions

import (
	"strings"
	"unicode"

	"github.com/medicore/ai-service/catalog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dosageUnits are the unit suffixes stripped from dosage tokens
var dosageUnits = []string{"mg", "ml", "mcg", "gm", "g"}

// Normalizer canonicalizes drug names through an alias table
type Normalizer struct {
	aliases *catalog.AliasTable
}

// NewNormalizer creates a normalizer over aliases
func NewNormalizer(aliases *catalog.AliasTable) *Normalizer {
	return &Normalizer{aliases: aliases}
}

var defaultNormalizer = NewNormalizer(catalog.Aliases())

// Normalize canonicalizes raw with the built-in alias table
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

// Normalize lowercases and accent-folds raw, drops dosage tokens such as
// "500mg" or "0.5ml", and resolves brand names to their generic name.
// It is idempotent and returns "" for blank input.
func (n *Normalizer) Normalize(raw string) string {
	clean := foldAccents(strings.ToLower(strings.TrimSpace(raw)))

	tokens := strings.Fields(clean)
	kept := tokens[:0]
	for _, token := range tokens {
		if !isDosageToken(token) {
			kept = append(kept, token)
		}
	}

	return n.aliases.Resolve(strings.Join(kept, " "))
}

// isDosageToken reports whether token is a number with an optional unit suffix.
// A bare unit word ("g", "mg") counts as a dosage token as well.
func isDosageToken(token string) bool {
	if isDigits(strings.ReplaceAll(token, ".", "")) {
		return true
	}
	for _, unit := range dosageUnits {
		if token == unit {
			return true
		}
		if number, ok := strings.CutSuffix(token, unit); ok && isDigits(strings.ReplaceAll(number, ".", "")) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// foldAccents strips combining marks so "paracétamol" matches "paracetamol"
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
