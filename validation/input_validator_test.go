package validation

import (
	"strings"
	"testing"
)

func TestValidateRegion(t *testing.T) {
	v := NewInputValidator()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"known region", "Neelambur", false},
		{"overall", "Overall", false},
		{"unknown but well formed", "Tiruppur North", false},
		{"with parentheses", "Overall (Coimbatore)", false},
		{"tamil script", "கோயம்புத்தூர்", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", MaxRegionLength+1), true},
		{"script tag", "<script>alert(1)</script>", true},
		{"sql injection", "x' or 1=1", true},
		{"shell separator", "Peelamedu | ls", true},
		{"invalid characters", "Neelambur#1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRegion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDisease(t *testing.T) {
	v := NewInputValidator()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Influenza", false},
		{"with digits", "Type 2 Diabetes", false},
		{"with punctuation", "Gastroenteritis (viral), acute", false},
		{"empty", "", true},
		{"too long", strings.Repeat("abc ", 60), true},
		{"repetition", "aaaaaaaaaaaaaaaa", true},
		{"command injection", "flu; rm -rf /", true},
		{"invalid characters", "flu<>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDisease(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDisease(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDrugList(t *testing.T) {
	v := NewInputValidator()

	tooMany := make([]string, MaxDrugs+1)
	for i := range tooMany {
		tooMany[i] = "aspirin"
	}

	tests := []struct {
		name    string
		drugs   []string
		wantErr bool
	}{
		{"nil list", nil, false},
		{"single drug", []string{"Warfarin"}, false},
		{"brand names with dosage", []string{"Crocin 500mg", "Brufen 400 MG"}, false},
		{"empty entry allowed", []string{"", "aspirin"}, false},
		{"accented", []string{"Paracétamol", "İbuprofen"}, false},
		{"max drugs", tooMany[:MaxDrugs], false},
		{"too many drugs", tooMany, true},
		{"drug too long", []string{strings.Repeat("x", MaxDrugLength+1)}, true},
		{"control character", []string{"aspirin\x00"}, true},
		{"invalid utf-8", []string{"aspirin\xff"}, true},
		{"script", []string{"<script>", "aspirin"}, true},
		{"combination with separators", []string{"amoxicillin; clavulanate", "codeine | paracetamol"}, false},
		{"command substitution", []string{"$(reboot)"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDrugList(tt.drugs)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDrugList(%q) error = %v, wantErr %v", tt.drugs, err, tt.wantErr)
			}
		})
	}
}

func TestHasExcessiveRepetition(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"aaaaaaaaaa", false},
		{"aaaaaaaaaaa", true},
		{"abababababababab", false},
		{"ééééééééééé", true},
	}

	for _, tt := range tests {
		if got := hasExcessiveRepetition(tt.input); got != tt.expected {
			t.Errorf("hasExcessiveRepetition(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
