package rules

import (
	"testing"

	"strata/internal/strategy"
)

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cat     Category
		key     string
		pattern string
		weight  float64
		wantErr bool
	}{
		{"valid strategy", CategoryStrategy, "staking", `\bhodl\b`, 1, false},
		{"valid asset", CategoryAsset, "NEAR", `\bnative\s*token\b`, 2, false},
		{"valid risk", CategoryRisk, "high", `\byolo\b`, 1, false},
		{"valid compound", CategoryCompound, "restake", `\brestak\w*\b`, 2, false},
		{"unknown strategy key", CategoryStrategy, "gardening", `\bx\b`, 1, true},
		{"unknown asset key", CategoryAsset, "DOGE", `\bdoge\b`, 1, true},
		{"unknown risk key", CategoryRisk, "extreme", `\bx\b`, 1, true},
		{"unknown category", Category("numeric"), "apy", `\d+`, 1, true},
		{"zero weight", CategoryStrategy, "staking", `\bx\b`, 0, true},
		{"negative weight", CategoryStrategy, "staking", `\bx\b`, -1, true},
		{"bad pattern", CategoryStrategy, "staking", `\b(`, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Register(tt.cat, tt.key, tt.pattern, tt.weight)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegister_AfterBuildFails(t *testing.T) {
	reg := DefaultRegistry()
	if _, err := reg.Build(); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := reg.Register(CategoryStrategy, "staking", `\bx\b`, 1); err == nil {
		t.Error("Register after Build succeeded, want error")
	}
	if _, err := reg.Build(); err == nil {
		t.Error("second Build succeeded, want error")
	}
}

func TestRegister_ExtraPatternExtendsDetection(t *testing.T) {
	reg := DefaultRegistry()
	if err := reg.Register(CategoryStrategy, "staking", `\bhodl\w*\b`, 3); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	m, err := reg.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	matches := m.DetectStrategy("just hodling here")
	found := false
	for _, match := range matches {
		if match.Type == strategy.TypeStaking && match.Weight == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("custom pattern did not match: %+v", matches)
	}
}

func TestParseCategory(t *testing.T) {
	for _, name := range []string{"strategy", "asset", "risk", "compound"} {
		if _, err := ParseCategory(name); err != nil {
			t.Errorf("ParseCategory(%q) error = %v", name, err)
		}
	}
	if _, err := ParseCategory("numeric"); err == nil {
		t.Error("ParseCategory(numeric) succeeded, want error")
	}
}
