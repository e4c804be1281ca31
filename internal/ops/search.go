package ops

import (
	"context"
	"database/sql"
	"strings"

	"strata/internal/db"
	"strata/internal/errors"
	"strata/internal/strategy"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // required
	Limit int    // default DefaultListLimit, capped at MaxListLimit
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Records []*strategy.Record `json:"records"`
	Query   string             `json:"query"`
}

// Search finds active records whose raw text contains the query.
func Search(ctx context.Context, database *sql.DB, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	records, err := db.Search(database, query, clampLimit(input.Limit))
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*strategy.Record{}
	}

	return &SearchOutput{Records: records, Query: query}, nil
}
