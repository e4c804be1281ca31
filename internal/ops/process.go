package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"strata/internal/db"
	"strata/internal/errors"
	"strata/internal/etl"
	"strata/internal/strategy"
)

// ProcessInput contains parameters for the Process operation.
type ProcessInput struct {
	Text      string            // required
	Submitter *string           // optional
	Source    *string           // optional
	Extra     map[string]string // optional free-form metadata
	DryRun    bool              // when true, the result is not persisted
}

// ProcessOutput contains the result of the Process operation.
type ProcessOutput struct {
	Record *strategy.Record `json:"record"`
	Stored bool             `json:"stored"`
}

// Process runs one prompt through the pipeline and stores the result.
// Blank input is rejected before the pipeline runs.
func Process(ctx context.Context, database *sql.DB, pipe *etl.Pipeline, input ProcessInput) (*ProcessOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.NewInvalidInput("text is required")
	}

	input.Submitter = cleanOptionalString(input.Submitter)
	input.Source = cleanOptionalString(input.Source)

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	raw := &strategy.RawPrompt{
		ID:        id,
		Text:      input.Text,
		Submitter: input.Submitter,
		Source:    input.Source,
		Extra:     input.Extra,
		CreatedAt: time.Now().Unix(),
	}

	result, err := pipe.Process(raw)
	if err != nil {
		return nil, err
	}

	record := buildRecord(result)
	if input.DryRun {
		return &ProcessOutput{Record: record, Stored: false}, nil
	}

	if err := db.Insert(database, record); err != nil {
		return nil, err
	}

	return &ProcessOutput{Record: record, Stored: true}, nil
}

// buildRecord flattens a pipeline result into its persisted form.
func buildRecord(res *etl.Result) *strategy.Record {
	t := res.Transformed
	return &strategy.Record{
		ID:        res.Raw.ID,
		RawText:   res.Raw.Text,
		Submitter: res.Raw.Submitter,
		Source:    res.Raw.Source,
		Extra:     res.Raw.Extra,

		StrategyType:    t.StrategyType,
		PrimaryAsset:    t.PrimaryAsset,
		SecondaryAssets: t.SecondaryAssets,
		RiskLevel:       t.RiskLevel,
		TargetAPY:       t.TargetAPY,
		DurationDays:    t.DurationDays,
		AutoCompound:    t.AutoCompound,
		Confidence:      t.ConfidenceScore,
		Signals:         t.Signals,

		Compatible:      res.Compatibility.Compatible,
		Violations:      res.Compatibility.Violations,
		QualityScore:    res.Quality.Score,
		Recommendations: res.Quality.Recommendations,

		CreatedAt: res.Raw.CreatedAt,
	}
}
