package strategy

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n\t  ", ""},
		{"lowercases", "Stake NEAR", "stake near"},
		{"collapses whitespace", "stake   NEAR\n\nfor  a year", "stake near for a year"},
		{"trims", "  stake near  ", "stake near"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripMarkdown_PlainTextPassesThrough(t *testing.T) {
	input := "Provide liquidity to NEAR-USDC pool. Low risk."
	got := StripMarkdown(input)
	if got != input {
		t.Errorf("StripMarkdown(%q) = %q, want unchanged", input, got)
	}
}

func TestStripMarkdown_RemovesFormatting(t *testing.T) {
	input := "# Strategy\n\nI want **low risk** staking with *NEAR*.\n\n- target 10% APY\n- for 6 months"
	got := StripMarkdown(input)

	for _, marker := range []string{"#", "*", "-"} {
		if strings.Contains(got, marker) {
			t.Errorf("StripMarkdown output still contains %q: %q", marker, got)
		}
	}
	for _, phrase := range []string{"low risk", "NEAR", "10% APY", "6 months"} {
		if !strings.Contains(got, phrase) {
			t.Errorf("StripMarkdown output lost %q: %q", phrase, got)
		}
	}
}

func TestStripMarkdown_EmphasisDoesNotSplitWords(t *testing.T) {
	// "**low** risk" must match the "low risk" cue once stripped.
	got := Normalize(StripMarkdown("**low** risk staking"))
	if !strings.Contains(got, "low risk") {
		t.Errorf("got %q, want to contain \"low risk\"", got)
	}
}

func TestStripMarkdown_Empty(t *testing.T) {
	if got := StripMarkdown(""); got != "" {
		t.Errorf("StripMarkdown(\"\") = %q, want empty", got)
	}
}
