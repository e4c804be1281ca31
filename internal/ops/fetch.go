package ops

import (
	"context"
	"database/sql"
	"strings"

	"strata/internal/db"
	"strata/internal/errors"
	"strata/internal/strategy"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID             string // required
	IncludeDeleted bool
}

// Fetch retrieves a single record by ID.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*strategy.Record, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	return db.GetByID(database, id, input.IncludeDeleted)
}
