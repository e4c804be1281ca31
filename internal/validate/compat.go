package validate

import (
	"fmt"

	"strata/internal/strategy"
)

// CompatRule defines what a strategy type will accept: the assets it can
// operate on, the risk framings that make sense for it, and the minimum
// extraction confidence required before the combination is trusted.
type CompatRule struct {
	Assets        []strategy.Asset
	Risks         []strategy.RiskLevel
	MinConfidence float64
}

var allRisks = []strategy.RiskLevel{strategy.RiskLow, strategy.RiskMedium, strategy.RiskHigh}

// compatTable is the static strategy -> rule mapping. Strategies absent
// from the table (notably unknown) are incompatible by definition.
// Arbitrage and borrowing disallow a "low risk" framing; arbitrage also
// demands the highest confidence floor.
var compatTable = map[strategy.Type]CompatRule{
	strategy.TypeYieldFarming: {
		Assets:        []strategy.Asset{strategy.AssetNEAR, strategy.AssetUSDC, strategy.AssetUSDT, strategy.AssetSHADE, strategy.AssetStNEAR, strategy.AssetLINEAR},
		Risks:         allRisks,
		MinConfidence: 0.4,
	},
	strategy.TypeLiquidityProviding: {
		Assets:        []strategy.Asset{strategy.AssetNEAR, strategy.AssetUSDC, strategy.AssetUSDT, strategy.AssetDAI, strategy.AssetWBTC, strategy.AssetETH},
		Risks:         allRisks,
		MinConfidence: 0.5,
	},
	strategy.TypeStaking: {
		Assets:        []strategy.Asset{strategy.AssetNEAR, strategy.AssetStNEAR, strategy.AssetLINEAR, strategy.AssetSHADE},
		Risks:         allRisks,
		MinConfidence: 0.6,
	},
	strategy.TypeLending: {
		Assets:        []strategy.Asset{strategy.AssetNEAR, strategy.AssetUSDC, strategy.AssetUSDT, strategy.AssetDAI, strategy.AssetWBTC, strategy.AssetETH},
		Risks:         allRisks,
		MinConfidence: 0.5,
	},
	strategy.TypeBorrowing: {
		Assets:        []strategy.Asset{strategy.AssetNEAR, strategy.AssetUSDC, strategy.AssetUSDT, strategy.AssetDAI},
		Risks:         []strategy.RiskLevel{strategy.RiskMedium, strategy.RiskHigh},
		MinConfidence: 0.6,
	},
	strategy.TypeSwapping: {
		Assets:        []strategy.Asset{strategy.AssetNEAR, strategy.AssetUSDC, strategy.AssetUSDT, strategy.AssetDAI, strategy.AssetWBTC, strategy.AssetETH},
		Risks:         allRisks,
		MinConfidence: 0.4,
	},
	strategy.TypeArbitrage: {
		Assets:        []strategy.Asset{strategy.AssetNEAR, strategy.AssetUSDC, strategy.AssetUSDT, strategy.AssetDAI, strategy.AssetWBTC, strategy.AssetETH},
		Risks:         []strategy.RiskLevel{strategy.RiskMedium, strategy.RiskHigh},
		MinConfidence: 0.7,
	},
	strategy.TypeCompounding: {
		Assets:        []strategy.Asset{strategy.AssetNEAR, strategy.AssetUSDC, strategy.AssetUSDT, strategy.AssetSHADE, strategy.AssetStNEAR},
		Risks:         allRisks,
		MinConfidence: 0.5,
	},
}

// CompatRuleFor exposes the rule for a strategy type, mainly for tests
// and for callers that want to display the table.
func CompatRuleFor(t strategy.Type) (CompatRule, bool) {
	rule, ok := compatTable[t]
	return rule, ok
}

// Compatibility checks a transformed prompt against the static rule
// table. All violations are collected, never short-circuited, in a fixed
// order: primary asset, secondary assets, risk level, confidence floor.
// The result is compatible only with zero violations.
func Compatibility(p *strategy.TransformedPrompt) strategy.CompatReport {
	violations := []string{}

	rule, ok := compatTable[p.StrategyType]
	if !ok {
		violations = append(violations,
			fmt.Sprintf("no compatibility rules for strategy type %q", p.StrategyType))
		return strategy.CompatReport{Compatible: false, Violations: violations}
	}

	if !containsAsset(rule.Assets, p.PrimaryAsset) {
		violations = append(violations,
			fmt.Sprintf("primary asset %s not valid for strategy %s", p.PrimaryAsset, p.StrategyType))
	}

	for _, a := range p.SecondaryAssets {
		if !containsAsset(rule.Assets, a) {
			violations = append(violations,
				fmt.Sprintf("secondary asset %s not valid for strategy %s", a, p.StrategyType))
		}
	}

	if !containsRisk(rule.Risks, p.RiskLevel) {
		violations = append(violations,
			fmt.Sprintf("risk level %s incompatible with strategy %s", p.RiskLevel, p.StrategyType))
	}

	if p.ConfidenceScore < rule.MinConfidence {
		violations = append(violations,
			fmt.Sprintf("confidence %.2f below required threshold %.2f for strategy %s",
				p.ConfidenceScore, rule.MinConfidence, p.StrategyType))
	}

	return strategy.CompatReport{
		Compatible: len(violations) == 0,
		Violations: violations,
	}
}

func containsAsset(list []strategy.Asset, a strategy.Asset) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

func containsRisk(list []strategy.RiskLevel, r strategy.RiskLevel) bool {
	for _, x := range list {
		if x == r {
			return true
		}
	}
	return false
}
