package rules

import (
	"testing"

	"strata/internal/strategy"
)

func TestDetectStrategy(t *testing.T) {
	m := Default()

	tests := []struct {
		name     string
		text     string
		wantType strategy.Type
		wantSum  float64
	}{
		{"exact phrase", "I want to do yield farming", strategy.TypeYieldFarming, 3},
		{"phrase plus keyword", "yield farming with 25% apy", strategy.TypeYieldFarming, 4},
		{"staking stem", "staked NEAR with a validator", strategy.TypeStaking, 5},
		{"arbitrage", "cross exchange arbitrage opportunities", strategy.TypeArbitrage, 5},
		{"case insensitive", "PROVIDE LIQUIDITY", strategy.TypeLiquidityProviding, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := m.DetectStrategy(tt.text)
			if len(matches) == 0 {
				t.Fatal("no matches")
			}
			var sum float64
			for _, match := range matches {
				if match.Type == tt.wantType {
					sum += match.Weight
				}
			}
			if sum != tt.wantSum {
				t.Errorf("weight sum for %v = %v, want %v (matches: %+v)", tt.wantType, sum, tt.wantSum, matches)
			}
		})
	}
}

func TestDetectStrategy_NoSignal(t *testing.T) {
	m := Default()
	if matches := m.DetectStrategy("hello there"); len(matches) != 0 {
		t.Errorf("matches = %+v, want none", matches)
	}
}

func TestDetectAssets_DedupAndOrder(t *testing.T) {
	m := Default()

	// "usdc" and "usd coin" are aliases for the same symbol; weights sum.
	matches := m.DetectAssets("swap USDC (usd coin) for NEAR")
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2: %+v", len(matches), matches)
	}
	// Declaration order: NEAR's alias row precedes USDC's.
	if matches[0].Symbol != strategy.AssetNEAR || matches[0].Weight != 2 {
		t.Errorf("matches[0] = %+v, want NEAR weight 2", matches[0])
	}
	if matches[1].Symbol != strategy.AssetUSDC || matches[1].Weight != 4 {
		t.Errorf("matches[1] = %+v, want USDC weight 4", matches[1])
	}
}

func TestDetectAssets_StakedVariants(t *testing.T) {
	m := Default()

	matches := m.DetectAssets("stake with stNEAR or LINEAR")
	got := map[strategy.Asset]bool{}
	for _, match := range matches {
		got[match.Symbol] = true
	}
	if !got[strategy.AssetStNEAR] || !got[strategy.AssetLINEAR] {
		t.Errorf("matches = %+v, want stNEAR and LINEAR", matches)
	}
}

func TestDetectRisk(t *testing.T) {
	m := Default()

	tests := []struct {
		name   string
		text   string
		want   strategy.RiskLevel
		wantOK bool
	}{
		{"explicit low", "low risk please", strategy.RiskLow, true},
		{"cumulative low beats lone high cue", "low risk, stable, volatile market", strategy.RiskLow, true},
		{"high", "aggressive and speculative", strategy.RiskHigh, true},
		{"medium", "balanced approach", strategy.RiskMedium, true},
		{"no cue", "stake NEAR", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := m.DetectRisk(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && match.Level != tt.want {
				t.Errorf("level = %v, want %v", match.Level, tt.want)
			}
		})
	}
}

func TestDetectAutoCompound(t *testing.T) {
	m := Default()

	if _, ok := m.DetectAutoCompound("auto-compound my rewards"); !ok {
		t.Error("expected auto-compound cue to match")
	}
	if _, ok := m.DetectAutoCompound("reinvest everything"); !ok {
		t.Error("expected reinvest cue to match")
	}
	// Strategy words alone never flip the flag.
	if _, ok := m.DetectAutoCompound("yield farming on NEAR"); ok {
		t.Error("no explicit cue, got a match")
	}
}
