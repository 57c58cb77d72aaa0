// Package validation checks request input before it reaches the engines
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/medicore/ai-service/interfaces"
)

// Limits on request input
const (
	MaxRegionLength  = 100
	MaxDiseaseLength = 200
	MaxDrugLength    = 200
	MaxDrugs         = 50
	maxRepeatedRune  = 10
)

var (
	// Letters and marks in any script, digits, spaces and name punctuation
	regionRegex  = regexp.MustCompile(`^[\p{L}\p{M}\p{N}\s\-\.'()]+$`)
	diseaseRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}\s\-\.,'()/]+$`)

	// Substring matches on lowercased input
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "eval(", "expression(", "@import",
		// SQL injection
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"--", "/*", "*/", "xp_", "exec(",
		// Command injection
		"`", "$(", "${",
		// Path traversal
		"../", "..\\", "%2e%2e", "file://",
		// NoSQL injection
		"{$ne:", "{$gt:", "{$where:", "{$regex:",
	}

	// Shell separators. Not applied to drug names, where "amoxicillin; clavulanate"
	// is ordinary free text.
	separatorPatterns = []string{"; ", "| "}
)

// InputValidatorImpl implements interfaces.InputValidator
type InputValidatorImpl struct{}

var _ interfaces.InputValidator = (*InputValidatorImpl)(nil)

// NewInputValidator creates a new input validator
func NewInputValidator() interfaces.InputValidator {
	return &InputValidatorImpl{}
}

// ValidateRegion checks the shape of a region name. Whether the region exists
// is decided by the prediction engine.
func (v *InputValidatorImpl) ValidateRegion(region string) error {
	if strings.TrimSpace(region) == "" {
		return fmt.Errorf("region cannot be empty")
	}
	if utf8.RuneCountInString(region) > MaxRegionLength {
		return fmt.Errorf("region too long: maximum %d characters", MaxRegionLength)
	}
	if err := checkDangerous(region, dangerousPatterns, separatorPatterns); err != nil {
		return err
	}
	if !regionRegex.MatchString(region) {
		return fmt.Errorf("region contains invalid characters")
	}
	return nil
}

// ValidateDisease checks a disease name used for medicine recommendations
func (v *InputValidatorImpl) ValidateDisease(disease string) error {
	if strings.TrimSpace(disease) == "" {
		return fmt.Errorf("disease cannot be empty")
	}
	if utf8.RuneCountInString(disease) > MaxDiseaseLength {
		return fmt.Errorf("disease too long: maximum %d characters", MaxDiseaseLength)
	}
	if err := checkDangerous(disease, dangerousPatterns, separatorPatterns); err != nil {
		return err
	}
	if !diseaseRegex.MatchString(disease) {
		return fmt.Errorf("disease contains invalid characters")
	}
	if hasExcessiveRepetition(disease) {
		return fmt.Errorf("disease contains excessive character repetition")
	}
	return nil
}

// ValidateDrugList bounds the list and each entry. Empty entries are accepted
// and take part in matching like any other name.
func (v *InputValidatorImpl) ValidateDrugList(drugs []string) error {
	if len(drugs) > MaxDrugs {
		return fmt.Errorf("too many drugs: maximum %d allowed", MaxDrugs)
	}

	for i, d := range drugs {
		if utf8.RuneCountInString(d) > MaxDrugLength {
			return fmt.Errorf("drug %d too long: maximum %d characters", i+1, MaxDrugLength)
		}
		if !utf8.ValidString(d) {
			return fmt.Errorf("drug %d is not valid UTF-8", i+1)
		}
		if strings.ContainsFunc(d, isControl) {
			return fmt.Errorf("drug %d contains control characters", i+1)
		}
		if err := checkDangerous(d, dangerousPatterns); err != nil {
			return fmt.Errorf("drug %d: %w", i+1, err)
		}
	}
	return nil
}

func checkDangerous(input string, groups ...[]string) error {
	lower := strings.ToLower(input)
	for _, patterns := range groups {
		for _, pattern := range patterns {
			if strings.Contains(lower, pattern) {
				return fmt.Errorf("input contains potentially dangerous content")
			}
		}
	}
	return nil
}

// isControl rejects control runes other than ordinary whitespace
func isControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t' && r != ' '
}

// hasExcessiveRepetition reports a rune repeated more than maxRepeatedRune times in a row
func hasExcessiveRepetition(input string) bool {
	var prev rune
	run := 0
	for _, r := range input {
		if r == prev {
			run++
			if run > maxRepeatedRune {
				return true
			}
			continue
		}
		prev, run = r, 1
	}
	return false
}
