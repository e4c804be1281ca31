package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"strata/internal/db"
	"strata/internal/errors"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string // required
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Delete soft-deletes a record. The row stays recoverable until purged.
func Delete(ctx context.Context, database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	if err := db.SoftDelete(database, id); err != nil {
		return nil, err
	}

	return &DeleteOutput{ID: id, Deleted: true}, nil
}

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	// OlderThanDays limits purging to records soft-deleted at least this
	// many days ago. Zero purges all soft-deleted records.
	OlderThanDays int
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Purged int64 `json:"purged"`
}

// Purge permanently removes soft-deleted records.
func Purge(ctx context.Context, database *sql.DB, input PurgeInput) (*PurgeOutput, error) {
	if input.OlderThanDays < 0 {
		return nil, errors.NewInvalidRequest("older_than_days must not be negative")
	}

	var cutoff int64
	if input.OlderThanDays > 0 {
		cutoff = time.Now().Add(-time.Duration(input.OlderThanDays) * 24 * time.Hour).Unix()
	}

	purged, err := db.PurgeDeleted(database, cutoff)
	if err != nil {
		return nil, err
	}

	return &PurgeOutput{Purged: purged}, nil
}
