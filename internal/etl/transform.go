package etl

import (
	"sort"
	"strconv"

	"github.com/samber/lo"

	"strata/internal/rules"
	"strata/internal/strategy"
)

// MinStrategyActivation is the cumulative pattern weight a strategy type
// must reach before it is trusted; below it the output stays unknown
// rather than guessing from a single loose keyword.
const MinStrategyActivation = 2.0

// Confidence shares per field. A field resolved from a signal
// contributes its share (scaled by signal strength for strategy and
// assets); a defaulted field contributes zero. Shares sum to 1.0.
const (
	shareStrategy = 0.40
	shareAssets   = 0.25
	shareRisk     = 0.15
	shareAPY      = 0.10
	shareDuration = 0.10

	// fullSignalWeight is the cumulative weight at which the strategy
	// and asset shares saturate.
	fullSignalWeight = 4.0
)

// Transform assembles a TransformedPrompt from one sweep of each mapper
// category. It is a pure function: identical text yields an identical
// result. It never fails; empty or signal-free text produces a fully
// defaulted output with confidence 0.
func Transform(m *rules.Mapper, raw *strategy.RawPrompt) *strategy.TransformedPrompt {
	text := strategy.StripMarkdown(raw.Text)

	out := &strategy.TransformedPrompt{
		StrategyType:    strategy.TypeUnknown,
		PrimaryAsset:    strategy.AssetUnknown,
		SecondaryAssets: []strategy.Asset{},
		RiskLevel:       strategy.RiskMedium,
		PromptID:        raw.ID,
	}

	confidence := 0.0

	// Strategy type: sum weights per type, highest sum wins, ties break
	// by declaration order of the pattern table.
	if winner, ok := resolveStrategy(m.DetectStrategy(text)); ok {
		out.StrategyType = winner.Type
		out.Signals = append(out.Signals, strategy.Signal{
			Field:  strategy.FieldStrategyType,
			Value:  string(winner.Type),
			Rule:   winner.Rule,
			Weight: winner.Weight,
		})
		confidence += shareStrategy * saturate(winner.Weight)
	}

	// Assets: heaviest signal is primary, native-equivalent symbols win
	// ties; the rest are secondary, ordered by weight then alphabetically.
	// The confidence share scales with the combined weight of every
	// detected asset, so a well-specified pair counts for more than a
	// lone ticker.
	assetMatches := m.DetectAssets(text)
	if primary, secondary, weight, rule, ok := resolveAssets(assetMatches); ok {
		out.PrimaryAsset = primary
		out.SecondaryAssets = secondary
		out.Signals = append(out.Signals, strategy.Signal{
			Field:  strategy.FieldPrimaryAsset,
			Value:  string(primary),
			Rule:   rule,
			Weight: weight,
		})
		total := lo.SumBy(assetMatches, func(m rules.AssetMatch) float64 { return m.Weight })
		confidence += shareAssets * saturate(total)
	}

	if risk, ok := m.DetectRisk(text); ok {
		out.RiskLevel = risk.Level
		out.Signals = append(out.Signals, strategy.Signal{
			Field:  strategy.FieldRiskLevel,
			Value:  string(risk.Level),
			Rule:   risk.Rule,
			Weight: risk.Weight,
		})
		confidence += shareRisk
	}

	targets := m.ExtractNumericTargets(text)
	if targets.APY != nil && *targets.APY >= 0 {
		out.TargetAPY = targets.APY
		out.Signals = append(out.Signals, strategy.Signal{
			Field:  strategy.FieldTargetAPY,
			Value:  strconv.FormatFloat(*targets.APY, 'f', -1, 64),
			Rule:   targets.APYRule,
			Weight: 1,
		})
		confidence += shareAPY
	}
	if targets.DurationDays != nil && *targets.DurationDays > 0 {
		out.DurationDays = targets.DurationDays
		out.Signals = append(out.Signals, strategy.Signal{
			Field:  strategy.FieldDurationDays,
			Value:  strconv.Itoa(*targets.DurationDays),
			Rule:   targets.DurationRule,
			Weight: 1,
		})
		confidence += shareDuration
	}

	if cue, ok := m.DetectAutoCompound(text); ok {
		out.AutoCompound = true
		out.Signals = append(out.Signals, strategy.Signal{
			Field:  strategy.FieldAutoCompound,
			Value:  "true",
			Rule:   cue.Rule,
			Weight: cue.Weight,
		})
	}

	out.ConfidenceScore = clamp01(confidence)
	return out
}

// strategyWinner is the aggregated result of the strategy sweep.
type strategyWinner struct {
	Type   strategy.Type
	Rule   string // first pattern that voted for the winner, in table order
	Weight float64
}

// resolveStrategy sums match weights per type and returns the winner, or
// false when no type reaches the activation threshold.
func resolveStrategy(matches []rules.StrategyMatch) (strategyWinner, bool) {
	if len(matches) == 0 {
		return strategyWinner{}, false
	}

	order := map[strategy.Type]int{}
	var winners []strategyWinner
	for _, m := range matches {
		if i, ok := order[m.Type]; ok {
			winners[i].Weight += m.Weight
			continue
		}
		order[m.Type] = len(winners)
		winners = append(winners, strategyWinner{Type: m.Type, Rule: m.Rule, Weight: m.Weight})
	}

	// MaxBy keeps the earlier entry on equal weights, preserving the
	// documented first-declared tie-break.
	best := lo.MaxBy(winners, func(a, b strategyWinner) bool { return a.Weight > b.Weight })
	if best.Weight < MinStrategyActivation {
		return strategyWinner{}, false
	}
	return best, true
}

// resolveAssets splits detections into a primary asset and the ordered
// secondary set. Ties on weight go to native-equivalent symbols, then to
// alias-table declaration order.
func resolveAssets(matches []rules.AssetMatch) (strategy.Asset, []strategy.Asset, float64, string, bool) {
	if len(matches) == 0 {
		return strategy.AssetUnknown, nil, 0, "", false
	}

	best := 0
	for i := 1; i < len(matches); i++ {
		switch {
		case matches[i].Weight > matches[best].Weight:
			best = i
		case matches[i].Weight == matches[best].Weight &&
			strategy.IsNativeEquivalent(matches[i].Symbol) &&
			!strategy.IsNativeEquivalent(matches[best].Symbol):
			best = i
		}
	}
	primary := matches[best]

	rest := lo.Filter(matches, func(m rules.AssetMatch, _ int) bool {
		return m.Symbol != primary.Symbol
	})
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].Weight != rest[j].Weight {
			return rest[i].Weight > rest[j].Weight
		}
		return rest[i].Symbol < rest[j].Symbol
	})
	secondary := lo.Map(rest, func(m rules.AssetMatch, _ int) strategy.Asset { return m.Symbol })

	return primary.Symbol, secondary, primary.Weight, primary.Rule, true
}

// saturate scales a cumulative signal weight into [0,1].
func saturate(weight float64) float64 {
	if weight >= fullSignalWeight {
		return 1
	}
	return weight / fullSignalWeight
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
