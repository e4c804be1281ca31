package strategy

// Type is a canonical category of DeFi activity. It routes validation
// rules and is stored as its exact string value.
type Type string

const (
	TypeYieldFarming       Type = "yield_farming"
	TypeLiquidityProviding Type = "liquidity_providing"
	TypeStaking            Type = "staking"
	TypeLending            Type = "lending"
	TypeBorrowing          Type = "borrowing"
	TypeSwapping           Type = "swapping"
	TypeArbitrage          Type = "arbitrage"
	TypeCompounding        Type = "compounding"
	TypeUnknown            Type = "unknown"
)

// Types lists all classifiable strategy types in declaration order.
// The order is load-bearing: pattern tables and tie-breaking follow it.
var Types = []Type{
	TypeYieldFarming,
	TypeLiquidityProviding,
	TypeStaking,
	TypeLending,
	TypeBorrowing,
	TypeSwapping,
	TypeArbitrage,
	TypeCompounding,
}

// ParseType returns the Type for s, or TypeUnknown if unrecognized.
func ParseType(s string) Type {
	for _, t := range Types {
		if string(t) == s {
			return t
		}
	}
	return TypeUnknown
}

// Asset is a canonical ticker for a token supported by the target
// protocol ecosystem.
type Asset string

const (
	AssetNEAR    Asset = "NEAR"
	AssetUSDC    Asset = "USDC"
	AssetUSDT    Asset = "USDT"
	AssetDAI     Asset = "DAI"
	AssetWBTC    Asset = "WBTC"
	AssetETH     Asset = "ETH"
	AssetSHADE   Asset = "SHADE"
	AssetStNEAR  Asset = "stNEAR"
	AssetLINEAR  Asset = "LINEAR"
	AssetMETA    Asset = "META"
	AssetUnknown Asset = "unknown"
)

// Assets lists all known asset symbols in declaration order.
var Assets = []Asset{
	AssetNEAR,
	AssetUSDC,
	AssetUSDT,
	AssetDAI,
	AssetWBTC,
	AssetETH,
	AssetSHADE,
	AssetStNEAR,
	AssetLINEAR,
	AssetMETA,
}

// ParseAsset returns the Asset for s, or AssetUnknown if unrecognized.
func ParseAsset(s string) Asset {
	for _, a := range Assets {
		if string(a) == s {
			return a
		}
	}
	return AssetUnknown
}

// IsNativeEquivalent reports whether a is the ecosystem's native asset
// or one of its staked derivatives. Native-equivalent assets win primary
// asset ties.
func IsNativeEquivalent(a Asset) bool {
	return a == AssetNEAR || a == AssetStNEAR || a == AssetLINEAR
}

// RiskLevel is a coarse risk bucket for a strategy.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevels lists all risk levels in declaration order.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// ParseRiskLevel returns the RiskLevel for s, or RiskMedium (the default
// bucket) if unrecognized.
func ParseRiskLevel(s string) RiskLevel {
	for _, r := range RiskLevels {
		if string(r) == s {
			return r
		}
	}
	return RiskMedium
}
