package validate

import (
	"testing"

	"strata/internal/strategy"
)

func resolved(fields ...strategy.Field) []strategy.Signal {
	signals := make([]strategy.Signal, len(fields))
	for i, f := range fields {
		signals[i] = strategy.Signal{Field: f, Value: "x", Rule: "test", Weight: 1}
	}
	return signals
}

func TestQuality_FullyResolved(t *testing.T) {
	p := &strategy.TransformedPrompt{
		StrategyType:    strategy.TypeStaking,
		ConfidenceScore: 0.95,
		Signals: resolved(
			strategy.FieldStrategyType,
			strategy.FieldPrimaryAsset,
			strategy.FieldRiskLevel,
			strategy.FieldTargetAPY,
			strategy.FieldDurationDays,
		),
	}

	report := Quality(p, DefaultTargetConfidence)
	if report.Score != 100 {
		t.Errorf("Score = %d, want 100", report.Score)
	}
	if len(report.Recommendations) != 0 {
		t.Errorf("Recommendations = %v, want none", report.Recommendations)
	}
}

func TestQuality_EmptyPrompt(t *testing.T) {
	p := &strategy.TransformedPrompt{
		StrategyType: strategy.TypeUnknown,
		RiskLevel:    strategy.RiskMedium,
	}

	report := Quality(p, DefaultTargetConfidence)
	if report.Score != 0 {
		t.Errorf("Score = %d, want 0 (clamped)", report.Score)
	}
	// Five field recommendations plus the confidence one.
	if len(report.Recommendations) != 6 {
		t.Errorf("Recommendations = %v, want 6 entries", report.Recommendations)
	}
}

func TestQuality_RecommendationOrder(t *testing.T) {
	// Strategy and asset resolved; risk, APY, duration defaulted.
	p := &strategy.TransformedPrompt{
		StrategyType:    strategy.TypeLending,
		ConfidenceScore: 0.5,
		Signals:         resolved(strategy.FieldStrategyType, strategy.FieldPrimaryAsset),
	}

	report := Quality(p, DefaultTargetConfidence)
	if report.Score != 45 {
		t.Errorf("Score = %d, want 45", report.Score)
	}

	want := []string{
		fieldRecommendations[strategy.FieldRiskLevel],
		fieldRecommendations[strategy.FieldTargetAPY],
		fieldRecommendations[strategy.FieldDurationDays],
		confidenceRecommendation,
	}
	if len(report.Recommendations) != len(want) {
		t.Fatalf("Recommendations = %v, want %d entries", report.Recommendations, len(want))
	}
	for i := range want {
		if report.Recommendations[i] != want[i] {
			t.Errorf("Recommendations[%d] = %q, want %q", i, report.Recommendations[i], want[i])
		}
	}
}

func TestQuality_UnknownStrategyPenalty(t *testing.T) {
	// Everything but strategy resolved: 65 base, -10 unknown penalty,
	// +10 high-confidence bonus.
	p := &strategy.TransformedPrompt{
		StrategyType:    strategy.TypeUnknown,
		ConfidenceScore: 0.8,
		Signals: resolved(
			strategy.FieldPrimaryAsset,
			strategy.FieldRiskLevel,
			strategy.FieldTargetAPY,
			strategy.FieldDurationDays,
		),
	}

	report := Quality(p, DefaultTargetConfidence)
	if report.Score != 65 {
		t.Errorf("Score = %d, want 65", report.Score)
	}
}

func TestQuality_CustomTarget(t *testing.T) {
	p := &strategy.TransformedPrompt{
		StrategyType:    strategy.TypeStaking,
		ConfidenceScore: 0.5,
		Signals:         resolved(strategy.FieldStrategyType),
	}

	// Default target 0.70: no bonus at 0.5.
	if got := Quality(p, DefaultTargetConfidence).Score; got != 25 {
		t.Errorf("Score = %d, want 25", got)
	}
	// Lowered target: bonus applies.
	if got := Quality(p, 0.4).Score; got != 35 {
		t.Errorf("Score = %d, want 35", got)
	}
	// Non-positive target falls back to the default.
	if got := Quality(p, 0).Score; got != 25 {
		t.Errorf("Score = %d, want 25", got)
	}
}
