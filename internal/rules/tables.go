package rules

// tableEntry is one row of the built-in pattern table.
type tableEntry struct {
	category Category
	key      string
	pattern  string
	weight   float64
}

// defaultTable is the built-in rule set. Order within each category is
// significant: equal-weight ties resolve to the first-declared key.
// Weights encode specificity: 3 exact phrase, 2 strong cue, 1 loose keyword.
var defaultTable = []tableEntry{
	// Strategy signatures
	{CategoryStrategy, "yield_farming", `\byield\s*farm\w*`, 3},
	{CategoryStrategy, "yield_farming", `\bfarm\w*\s+yield`, 2},
	{CategoryStrategy, "yield_farming", `\bharvest\w*\b`, 1},
	{CategoryStrategy, "yield_farming", `\bapy\b`, 1},
	{CategoryStrategy, "yield_farming", `\bapr\b`, 1},
	{CategoryStrategy, "yield_farming", `\breturns?\b`, 1},
	{CategoryStrategy, "yield_farming", `\bprofit\w*\b`, 1},

	{CategoryStrategy, "liquidity_providing", `\bprovide\s+liquidity\b`, 3},
	{CategoryStrategy, "liquidity_providing", `\bliquidity\s*provi\w*`, 3},
	{CategoryStrategy, "liquidity_providing", `\bliquidity\s*pool\w*`, 3},
	{CategoryStrategy, "liquidity_providing", `\blp\b`, 2},
	{CategoryStrategy, "liquidity_providing", `\bamm\b`, 2},
	{CategoryStrategy, "liquidity_providing", `\bpool\w*\b`, 1},
	{CategoryStrategy, "liquidity_providing", `\bdex\b`, 1},

	{CategoryStrategy, "staking", `\bproof\s*of\s*stake\b`, 3},
	{CategoryStrategy, "staking", `\bstak\w*\b`, 3},
	{CategoryStrategy, "staking", `\bdelegat\w*\b`, 2},
	{CategoryStrategy, "staking", `\bvalidator\w*\b`, 2},
	{CategoryStrategy, "staking", `\bpos\b`, 1},

	{CategoryStrategy, "lending", `\blend\w*\b`, 3},
	{CategoryStrategy, "lending", `\bdeposit\w*\b`, 1},
	{CategoryStrategy, "lending", `\binterest\b`, 1},
	{CategoryStrategy, "lending", `\bcredit\b`, 1},
	{CategoryStrategy, "lending", `\bsavings\b`, 1},

	{CategoryStrategy, "borrowing", `\bborrow\w*\b`, 3},
	{CategoryStrategy, "borrowing", `\bloan\w*\b`, 2},
	{CategoryStrategy, "borrowing", `\bdebt\b`, 1},
	{CategoryStrategy, "borrowing", `\bleverage\w*\b`, 1},
	{CategoryStrategy, "borrowing", `\bcollateral\b`, 1},

	{CategoryStrategy, "swapping", `\bswap\w*\b`, 3},
	{CategoryStrategy, "swapping", `\btrade\w*\b`, 1},
	{CategoryStrategy, "swapping", `\bconvert\w*\b`, 1},
	{CategoryStrategy, "swapping", `\bexchange\w*\b`, 1},
	{CategoryStrategy, "swapping", `\bbuy\w*\b`, 1},
	{CategoryStrategy, "swapping", `\bsell\w*\b`, 1},

	{CategoryStrategy, "arbitrage", `\barbitrage\w*\b`, 3},
	{CategoryStrategy, "arbitrage", `\barb\b`, 2},
	{CategoryStrategy, "arbitrage", `\bprice\s*difference\b`, 2},
	{CategoryStrategy, "arbitrage", `\bcross\s*exchange\b`, 2},

	{CategoryStrategy, "compounding", `\bauto\s*compound\w*`, 3},
	{CategoryStrategy, "compounding", `\bcompound\w*\b`, 3},
	{CategoryStrategy, "compounding", `\breinvest\w*\b`, 3},
	{CategoryStrategy, "compounding", `\broll\w*\s+over\b`, 1},
	{CategoryStrategy, "compounding", `\baccumulat\w*\b`, 1},

	// Asset aliases: ticker, full name, staked-variant names
	{CategoryAsset, "NEAR", `\bnear\b`, 2},
	{CategoryAsset, "USDC", `\busdc\b`, 2},
	{CategoryAsset, "USDC", `\busd\s*coin\b`, 2},
	{CategoryAsset, "USDT", `\busdt\b`, 2},
	{CategoryAsset, "USDT", `\btether\b`, 2},
	{CategoryAsset, "DAI", `\bdai\b`, 2},
	{CategoryAsset, "WBTC", `\bwbtc\b`, 2},
	{CategoryAsset, "WBTC", `\bwrapped\s*bitcoin\b`, 2},
	{CategoryAsset, "WBTC", `\bbtc\b`, 1.5},
	{CategoryAsset, "ETH", `\beth\b`, 2},
	{CategoryAsset, "ETH", `\bethereum\b`, 2},
	{CategoryAsset, "SHADE", `\bshade\b`, 2},
	{CategoryAsset, "SHADE", `\bshd\b`, 2},
	{CategoryAsset, "stNEAR", `\bstnear\b`, 2},
	{CategoryAsset, "stNEAR", `\bstaked\s*near\b`, 2},
	{CategoryAsset, "LINEAR", `\blinear\b`, 2},
	{CategoryAsset, "META", `\bmeta\b`, 2},

	// Risk cues
	{CategoryRisk, "low", `\blow\s*risk\b`, 2},
	{CategoryRisk, "low", `\bsafe\b`, 1},
	{CategoryRisk, "low", `\bconservative\b`, 1},
	{CategoryRisk, "low", `\bstable\b`, 1},
	{CategoryRisk, "low", `\bblue\s*chip\b`, 1},
	{CategoryRisk, "low", `\bestablished\b`, 1},
	{CategoryRisk, "medium", `\bmedium\s*risk\b`, 2},
	{CategoryRisk, "medium", `\bmoderate\b`, 1},
	{CategoryRisk, "medium", `\bbalanced\b`, 1},
	{CategoryRisk, "high", `\bhigh\s*risk\b`, 2},
	{CategoryRisk, "high", `\baggressive\b`, 1},
	{CategoryRisk, "high", `\bvolatile\b`, 1},
	{CategoryRisk, "high", `\bspeculative\b`, 1},
	{CategoryRisk, "high", `\brisky\b`, 1},
	{CategoryRisk, "high", `\bextreme\b`, 1},

	// Explicit reinvestment cues; these alone flip auto_compound
	{CategoryCompound, "auto-compound", `\bauto\s*compound\w*`, 3},
	{CategoryCompound, "compound", `\bcompound\w*\b`, 2},
	{CategoryCompound, "reinvest", `\breinvest\w*\b`, 2},
}
