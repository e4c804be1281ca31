package strategy

// Record is the persisted form of one processed prompt: the raw
// submission, the transformed parameters, and both validation verdicts,
// flattened into a single row.
type Record struct {
	ID        string            `json:"id"`
	RawText   string            `json:"raw_text"`
	Submitter *string           `json:"submitter,omitempty"`
	Source    *string           `json:"source,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`

	StrategyType    Type      `json:"strategy_type"`
	PrimaryAsset    Asset     `json:"primary_asset"`
	SecondaryAssets []Asset   `json:"secondary_assets"`
	RiskLevel       RiskLevel `json:"risk_level"`
	TargetAPY       *float64  `json:"target_apy,omitempty"`
	DurationDays    *int      `json:"duration_days,omitempty"`
	AutoCompound    bool      `json:"auto_compound"`
	Confidence      float64   `json:"confidence"`
	Signals         []Signal  `json:"signals,omitempty"`

	Compatible      bool     `json:"compatible"`
	Violations      []string `json:"violations,omitempty"`
	QualityScore    int      `json:"quality_score"`
	Recommendations []string `json:"recommendations,omitempty"`

	CreatedAt int64  `json:"created_at"`
	DeletedAt *int64 `json:"deleted_at,omitempty"`
}
