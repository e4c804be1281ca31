package strategy

// RawPrompt is the original user input plus optional submitter identity
// and a reserved extension map. Immutable once created; persistence is
// the caller's concern.
type RawPrompt struct {
	// ID is a ULID that uniquely identifies this prompt
	ID string `json:"id"`

	// Text is the original input, untouched
	Text string `json:"text"`

	// Submitter is an optional identifier for whoever sent the prompt
	Submitter *string `json:"submitter,omitempty"`

	// Source indicates where the prompt originated (e.g., "cli", "mcp")
	Source *string `json:"source,omitempty"`

	// Extra is a reserved extension map for caller-supplied scalars
	Extra map[string]string `json:"extra,omitempty"`

	// CreatedAt is the Unix timestamp when the prompt was captured
	CreatedAt int64 `json:"created_at"`
}

// Field names a slot of the transformed output that a signal can fill.
type Field string

const (
	FieldStrategyType Field = "strategy_type"
	FieldPrimaryAsset Field = "primary_asset"
	FieldRiskLevel    Field = "risk_level"
	FieldTargetAPY    Field = "target_apy"
	FieldDurationDays Field = "duration_days"
	FieldAutoCompound Field = "auto_compound"
)

// QualityFields lists the fields the quality validator scores, in the
// fixed order recommendations are emitted.
var QualityFields = []Field{
	FieldStrategyType,
	FieldPrimaryAsset,
	FieldRiskLevel,
	FieldTargetAPY,
	FieldDurationDays,
}

// Signal records how one field of the transformed output was resolved:
// the winning value, the rule that matched, and the weight it carried.
// Carrying winning signals on the output keeps the confidence score
// derivable and lets the quality validator distinguish detected values
// from defaults without extra state.
type Signal struct {
	Field  Field   `json:"field"`
	Value  string  `json:"value"`
	Rule   string  `json:"rule"`
	Weight float64 `json:"weight"`
}

// TransformedPrompt is the canonical structured output of the pipeline.
// Every field is always populated: enumerated fields fall back to their
// documented defaults (unknown / medium / false) so even empty input
// yields a complete value.
type TransformedPrompt struct {
	StrategyType Type `json:"strategy_type"`

	PrimaryAsset Asset `json:"primary_asset"`

	// SecondaryAssets is ordered by descending match weight, then
	// alphabetically. Never contains PrimaryAsset, never has duplicates.
	SecondaryAssets []Asset `json:"secondary_assets"`

	RiskLevel RiskLevel `json:"risk_level"`

	// TargetAPY is a percentage; nil when not stated
	TargetAPY *float64 `json:"target_apy,omitempty"`

	// DurationDays is normalized to days; nil when not stated
	DurationDays *int `json:"duration_days,omitempty"`

	// AutoCompound is true only on an explicit reinvestment cue
	AutoCompound bool `json:"auto_compound"`

	// ConfidenceScore is in [0,1]: how much of the extraction came from
	// explicit textual signal versus default fallback
	ConfidenceScore float64 `json:"confidence_score"`

	// PromptID back-references the originating RawPrompt (identity only)
	PromptID string `json:"prompt_id"`

	// Signals are the winning per-field signals, in field declaration order
	Signals []Signal `json:"signals,omitempty"`
}

// Resolved reports whether the named field was filled from a signal
// rather than a default.
func (t *TransformedPrompt) Resolved(f Field) bool {
	for _, s := range t.Signals {
		if s.Field == f {
			return true
		}
	}
	return false
}

// CompatReport is the compatibility validator's verdict: compatible only
// when zero violations. Derived, never stored as authoritative state.
type CompatReport struct {
	Compatible bool     `json:"compatible"`
	Violations []string `json:"violations"`
}

// QualityReport is the quality validator's heuristic score out of 100
// plus per-field recommendations in declaration order.
type QualityReport struct {
	Score           int      `json:"score"`
	Recommendations []string `json:"recommendations"`
}
