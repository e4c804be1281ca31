package ops

import (
	"context"
	"database/sql"
	"strings"

	"strata/internal/db"
	"strata/internal/errors"
	"strata/internal/strategy"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	StrategyType   string // optional filter
	PrimaryAsset   string // optional filter
	Submitter      string // optional filter
	CompatibleOnly bool
	Limit          int // default DefaultListLimit, capped at MaxListLimit
	Offset         int
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Records []*strategy.Record `json:"records"`
	Total   int                `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
}

// List returns a page of active records, newest-first.
func List(ctx context.Context, database *sql.DB, input ListInput) (*ListOutput, error) {
	if input.Offset < 0 {
		return nil, errors.NewInvalidRequest("offset must not be negative")
	}

	typ := strings.TrimSpace(input.StrategyType)
	if typ != "" && !validStrategyType(typ) {
		return nil, errors.NewInvalidRequest("unknown strategy type: " + typ)
	}
	asset := strings.TrimSpace(input.PrimaryAsset)

	limit := clampLimit(input.Limit)
	records, total, err := db.List(database, db.ListFilter{
		StrategyType:   typ,
		PrimaryAsset:   asset,
		Submitter:      strings.TrimSpace(input.Submitter),
		CompatibleOnly: input.CompatibleOnly,
		Limit:          limit,
		Offset:         input.Offset,
	})
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*strategy.Record{}
	}

	return &ListOutput{
		Records: records,
		Total:   total,
		Limit:   limit,
		Offset:  input.Offset,
	}, nil
}

// validStrategyType reports whether typ names a known strategy type.
func validStrategyType(typ string) bool {
	for _, t := range strategy.Types {
		if string(t) == typ {
			return true
		}
	}
	return false
}
