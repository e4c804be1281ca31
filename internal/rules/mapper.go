package rules

import (
	"github.com/samber/lo"

	"strata/internal/strategy"
)

// Mapper is the frozen rule engine. It holds read-only pattern tables
// and exposes one sweep per field category. All methods are pure
// functions of the input text and the static tables, so a single Mapper
// is safe for concurrent use.
type Mapper struct {
	strategies []Rule
	assets     []Rule
	risks      []Rule
	compounds  []Rule
}

// Default builds a Mapper from the built-in tables.
func Default() *Mapper {
	m, err := DefaultRegistry().Build()
	if err != nil {
		panic("rules: default registry build failed: " + err.Error())
	}
	return m
}

// StrategyMatch is one strategy-table hit.
type StrategyMatch struct {
	Type   strategy.Type
	Rule   string
	Weight float64
}

// AssetMatch is one asset detection, aggregated per symbol.
type AssetMatch struct {
	Symbol strategy.Asset
	Rule   string // first alias that matched
	Weight float64
}

// RiskMatch is the winning risk-level detection.
type RiskMatch struct {
	Level  strategy.RiskLevel
	Rule   string
	Weight float64
}

// CompoundMatch is an explicit reinvestment cue hit.
type CompoundMatch struct {
	Rule   string
	Weight float64
}

// DetectStrategy returns every strategy pattern that matches, in table
// declaration order. The caller sums weights per type and picks the
// winner; ties break by declaration order.
func (m *Mapper) DetectStrategy(text string) []StrategyMatch {
	text = strategy.Normalize(text)

	var matches []StrategyMatch
	for _, r := range m.strategies {
		if r.re.MatchString(text) {
			matches = append(matches, StrategyMatch{
				Type:   strategy.ParseType(r.Key),
				Rule:   r.Pattern,
				Weight: r.Weight,
			})
		}
	}
	return matches
}

// DetectAssets returns all detected assets, deduplicated by symbol, in
// alias-table declaration order. Weights of multiple matching aliases
// for the same symbol are summed.
func (m *Mapper) DetectAssets(text string) []AssetMatch {
	text = strategy.Normalize(text)

	bySymbol := map[strategy.Asset]int{} // symbol -> index in result
	var result []AssetMatch
	for _, r := range m.assets {
		if !r.re.MatchString(text) {
			continue
		}
		sym := strategy.ParseAsset(r.Key)
		if i, ok := bySymbol[sym]; ok {
			result[i].Weight += r.Weight
			continue
		}
		bySymbol[sym] = len(result)
		result = append(result, AssetMatch{Symbol: sym, Rule: r.Pattern, Weight: r.Weight})
	}
	return result
}

// DetectRisk returns the winning risk level and true, or the zero match
// and false when no cue word is present (the caller defaults to medium).
func (m *Mapper) DetectRisk(text string) (RiskMatch, bool) {
	text = strategy.Normalize(text)

	type tally struct {
		level  strategy.RiskLevel
		rule   string
		weight float64
	}
	order := map[strategy.RiskLevel]int{}
	var tallies []tally
	for _, r := range m.risks {
		if !r.re.MatchString(text) {
			continue
		}
		level := strategy.ParseRiskLevel(r.Key)
		if i, ok := order[level]; ok {
			tallies[i].weight += r.Weight
			continue
		}
		order[level] = len(tallies)
		tallies = append(tallies, tally{level: level, rule: r.Pattern, weight: r.Weight})
	}

	if len(tallies) == 0 {
		return RiskMatch{}, false
	}

	// Highest cumulative weight wins; MaxBy keeps the earlier entry on
	// ties, which preserves declaration order.
	best := lo.MaxBy(tallies, func(a, b tally) bool { return a.weight > b.weight })
	return RiskMatch{Level: best.level, Rule: best.rule, Weight: best.weight}, true
}

// DetectAutoCompound reports whether the text carries an explicit
// reinvestment cue. Only these cues flip auto_compound; strategy type
// alone never does.
func (m *Mapper) DetectAutoCompound(text string) (CompoundMatch, bool) {
	text = strategy.Normalize(text)

	for _, r := range m.compounds {
		if r.re.MatchString(text) {
			return CompoundMatch{Rule: r.Pattern, Weight: r.Weight}, true
		}
	}
	return CompoundMatch{}, false
}
