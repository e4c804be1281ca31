package validate

import "strata/internal/strategy"

// DefaultTargetConfidence is the confidence above which the quality
// validator awards its bonus.
const DefaultTargetConfidence = 0.70

// Point values per resolved field, plus the confidence bonus and the
// unknown-strategy penalty. They sum to 100 for a fully specified prompt.
const (
	pointsStrategy     = 25
	pointsPrimaryAsset = 20
	pointsRisk         = 15
	pointsAPY          = 15
	pointsDuration     = 15
	pointsConfidence   = 10

	penaltyUnknownStrategy = 10
)

// recommendations keyed by the field that was missing or defaulted, in
// field declaration order.
var fieldRecommendations = map[strategy.Field]string{
	strategy.FieldStrategyType: "Describe the strategy activity (e.g. yield farming, staking) so it can be classified",
	strategy.FieldPrimaryAsset: "Name at least one asset symbol (e.g. NEAR, USDC) to anchor the strategy",
	strategy.FieldRiskLevel:    "State a risk tolerance (low, medium, or high) instead of relying on the default",
	strategy.FieldTargetAPY:    "Specify a target APY for better strategy definition",
	strategy.FieldDurationDays: "Specify a target duration for better precision",
}

const confidenceRecommendation = "Add more specific detail to raise extraction confidence"

// Quality scores the completeness and clarity of a transformed prompt
// out of 100. Base points are awarded for each field resolved from an
// explicit signal, a penalty applies for an unclassifiable strategy, and
// a bonus for confidence at or above the target threshold. The score is
// clamped to [0,100]; recommendations follow field declaration order.
func Quality(p *strategy.TransformedPrompt, targetConfidence float64) strategy.QualityReport {
	if targetConfidence <= 0 {
		targetConfidence = DefaultTargetConfidence
	}

	score := 0
	recommendations := []string{}

	points := map[strategy.Field]int{
		strategy.FieldStrategyType: pointsStrategy,
		strategy.FieldPrimaryAsset: pointsPrimaryAsset,
		strategy.FieldRiskLevel:    pointsRisk,
		strategy.FieldTargetAPY:    pointsAPY,
		strategy.FieldDurationDays: pointsDuration,
	}

	for _, f := range strategy.QualityFields {
		if p.Resolved(f) {
			score += points[f]
		} else {
			recommendations = append(recommendations, fieldRecommendations[f])
		}
	}

	if p.StrategyType == strategy.TypeUnknown {
		score -= penaltyUnknownStrategy
	}

	if p.ConfidenceScore >= targetConfidence {
		score += pointsConfidence
	} else {
		recommendations = append(recommendations, confidenceRecommendation)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return strategy.QualityReport{
		Score:           score,
		Recommendations: recommendations,
	}
}
