package rules

import (
	"fmt"
	"regexp"

	"strata/internal/strategy"
)

// Category names a pattern table in the registry.
type Category string

const (
	CategoryStrategy Category = "strategy"
	CategoryAsset    Category = "asset"
	CategoryRisk     Category = "risk"
	CategoryCompound Category = "compound"
)

// ParseCategory maps a category name to its Category, or errors for an
// unknown name.
func ParseCategory(name string) (Category, error) {
	switch Category(name) {
	case CategoryStrategy, CategoryAsset, CategoryRisk, CategoryCompound:
		return Category(name), nil
	}
	return "", fmt.Errorf("rules: unknown category %q", name)
}

// Rule is one compiled pattern: the key it votes for, the regexp it
// matches, and the weight of the vote. Weights reflect specificity: an
// exact phrase outranks a loose keyword.
type Rule struct {
	Key     string
	Pattern string
	Weight  float64

	re *regexp.Regexp
}

// Registry accumulates pattern rules before first use. Declaration order
// is preserved per category and is the documented tie-breaker: when two
// keys end up with equal weight, the first-declared key wins.
//
// Register must only be called before Build; Build freezes the tables
// into an immutable Mapper that is safe for concurrent use.
type Registry struct {
	tables map[Category][]Rule
	frozen bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: map[Category][]Rule{}}
}

// DefaultRegistry returns a registry preloaded with the built-in pattern
// tables for strategies, assets, risk cues, and compounding cues.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range defaultTable {
		// Built-in entries are vetted; a failure here is a programming error.
		if err := r.Register(e.category, e.key, e.pattern, e.weight); err != nil {
			panic(fmt.Sprintf("rules: bad built-in pattern %q: %v", e.pattern, err))
		}
	}
	return r
}

// Register appends a pattern rule to the named category table. The key
// must be valid for the category (a strategy type, asset symbol, or risk
// level; compound cues take a free-form key). Returns an error for an
// unknown category, an invalid key, a non-positive weight, a pattern
// that does not compile, or a registry that has already been built.
func (r *Registry) Register(cat Category, key, pattern string, weight float64) error {
	if r.frozen {
		return fmt.Errorf("rules: registry is frozen; register patterns before first use")
	}
	if weight <= 0 {
		return fmt.Errorf("rules: weight must be positive, got %g", weight)
	}

	switch cat {
	case CategoryStrategy:
		if strategy.ParseType(key) == strategy.TypeUnknown {
			return fmt.Errorf("rules: unknown strategy type %q", key)
		}
	case CategoryAsset:
		if strategy.ParseAsset(key) == strategy.AssetUnknown {
			return fmt.Errorf("rules: unknown asset symbol %q", key)
		}
	case CategoryRisk:
		if key != string(strategy.RiskLow) && key != string(strategy.RiskMedium) && key != string(strategy.RiskHigh) {
			return fmt.Errorf("rules: unknown risk level %q", key)
		}
	case CategoryCompound:
		if key == "" {
			return fmt.Errorf("rules: compound cue key must not be empty")
		}
	default:
		return fmt.Errorf("rules: unknown category %q", cat)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("rules: invalid pattern %q: %w", pattern, err)
	}

	r.tables[cat] = append(r.tables[cat], Rule{
		Key:     key,
		Pattern: pattern,
		Weight:  weight,
		re:      re,
	})
	return nil
}

// Build freezes the registry and returns the immutable Mapper. Further
// Register calls fail. Build may be called once; the returned Mapper
// holds read-only tables and is safe for concurrent use.
func (r *Registry) Build() (*Mapper, error) {
	if r.frozen {
		return nil, fmt.Errorf("rules: registry already built")
	}
	r.frozen = true

	return &Mapper{
		strategies: r.tables[CategoryStrategy],
		assets:     r.tables[CategoryAsset],
		risks:      r.tables[CategoryRisk],
		compounds:  r.tables[CategoryCompound],
	}, nil
}
