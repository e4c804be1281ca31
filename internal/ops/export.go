package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"time"

	"strata/internal/db"
	"strata/internal/errors"
)

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Exported int `json:"exported"`
}

// exportHeader is the first JSONL line, identifying the dump format.
type exportHeader struct {
	Format     string `json:"format"`
	Version    int    `json:"version"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// Export writes every active record to w as JSON Lines, oldest-first.
// The first line is a header object; each following line is one record.
func Export(ctx context.Context, database *sql.DB, w io.Writer) (*ExportOutput, error) {
	records, err := db.AllActive(database)
	if err != nil {
		return nil, err
	}

	enc := json.NewEncoder(w)
	header := exportHeader{
		Format:     "strata-records",
		Version:    1,
		Count:      len(records),
		ExportedAt: time.Now().Unix(),
	}
	if err := enc.Encode(header); err != nil {
		return nil, errors.NewInternal(err)
	}
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	return &ExportOutput{Exported: len(records)}, nil
}

// GetStats summarizes the stored records.
func GetStats(ctx context.Context, database *sql.DB) (*db.Stats, error) {
	return db.GetStats(database)
}
