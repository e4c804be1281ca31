package db

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"strata/internal/errors"
	"strata/internal/strategy"
)

// Insert stores a new record in the database.
func Insert(db *sql.DB, r *strategy.Record) error {
	extraJSON, err := toNullJSON(r.Extra, len(r.Extra) > 0)
	if err != nil {
		return err
	}
	secondaryJSON, err := toNullJSON(r.SecondaryAssets, len(r.SecondaryAssets) > 0)
	if err != nil {
		return err
	}
	signalsJSON, err := toNullJSON(r.Signals, len(r.Signals) > 0)
	if err != nil {
		return err
	}
	violationsJSON, err := toNullJSON(r.Violations, len(r.Violations) > 0)
	if err != nil {
		return err
	}
	recsJSON, err := toNullJSON(r.Recommendations, len(r.Recommendations) > 0)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO records (
			id, raw_text, submitter, source, extra_json,
			strategy_type, primary_asset, secondary_assets, risk_level,
			target_apy, duration_days, auto_compound, confidence, signals_json,
			compatible, violations_json, quality_score, recommendations_json,
			created_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`

	_, err = db.Exec(query,
		r.ID, r.RawText, toNullString(r.Submitter), toNullString(r.Source), extraJSON,
		string(r.StrategyType), string(r.PrimaryAsset), secondaryJSON, string(r.RiskLevel),
		toNullFloat(r.TargetAPY), toNullIntPtr(r.DurationDays), boolToInt(r.AutoCompound), r.Confidence, signalsJSON,
		boolToInt(r.Compatible), violationsJSON, r.QualityScore, recsJSON,
		r.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return errors.NewConflict("record already exists: " + r.ID)
		}
		return errors.NewInternal(err)
	}

	return nil
}

const recordColumns = `id, raw_text, submitter, source, extra_json,
	strategy_type, primary_asset, secondary_assets, risk_level,
	target_apy, duration_days, auto_compound, confidence, signals_json,
	compatible, violations_json, quality_score, recommendations_json,
	created_at, deleted_at`

// GetByID retrieves a record by its ULID.
// If includeDeleted is false, soft-deleted records are excluded.
func GetByID(db *sql.DB, id string, includeDeleted bool) (*strategy.Record, error) {
	query := "SELECT " + recordColumns + " FROM records WHERE id = ?"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	row := db.QueryRow(query, id)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return r, nil
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	StrategyType   string
	PrimaryAsset   string
	Submitter      string
	CompatibleOnly bool
	Limit          int
	Offset         int
}

// List returns active records newest-first, plus the total count matching
// the filter (before pagination).
func List(db *sql.DB, f ListFilter) ([]*strategy.Record, int, error) {
	where := "deleted_at IS NULL"
	var args []any
	if f.StrategyType != "" {
		where += " AND strategy_type = ?"
		args = append(args, f.StrategyType)
	}
	if f.PrimaryAsset != "" {
		where += " AND primary_asset = ?"
		args = append(args, f.PrimaryAsset)
	}
	if f.Submitter != "" {
		where += " AND submitter = ?"
		args = append(args, f.Submitter)
	}
	if f.CompatibleOnly {
		where += " AND compatible = 1"
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM records WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := "SELECT " + recordColumns + " FROM records WHERE " + where +
		" ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	return records, total, nil
}

// Search returns active records whose raw text matches the query string,
// newest-first. Matching is a case-insensitive substring scan; LIKE
// metacharacters in the query are escaped.
func Search(db *sql.DB, text string, limit int) ([]*strategy.Record, error) {
	pattern := "%" + escapeLike(text) + "%"

	query := "SELECT " + recordColumns + ` FROM records
		WHERE deleted_at IS NULL AND raw_text LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id DESC`
	args := []any{pattern}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return records, nil
}

// escapeLike escapes LIKE metacharacters so user input is matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// SoftDelete marks a record as deleted by setting deleted_at.
func SoftDelete(db *sql.DB, id string) error {
	now := time.Now().Unix()

	result, err := db.Exec(
		"UPDATE records SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		now, id,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// PurgeDeleted permanently removes soft-deleted records older than the
// given cutoff. A zero cutoff purges all soft-deleted records.
func PurgeDeleted(db *sql.DB, olderThan int64) (int64, error) {
	query := "DELETE FROM records WHERE deleted_at IS NOT NULL"
	var args []any
	if olderThan > 0 {
		query += " AND deleted_at < ?"
		args = append(args, olderThan)
	}

	result, err := db.Exec(query, args...)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return purged, nil
}

// AllActive returns every active record oldest-first, for export.
func AllActive(db *sql.DB) ([]*strategy.Record, error) {
	query := "SELECT " + recordColumns + ` FROM records
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC, id ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return records, nil
}

// Stats summarizes the stored records.
type Stats struct {
	TotalActive   int            `json:"total_active"`
	TotalDeleted  int            `json:"total_deleted"`
	Compatible    int            `json:"compatible"`
	ByStrategy    map[string]int `json:"by_strategy"`
	AvgConfidence float64        `json:"avg_confidence"`
	AvgQuality    float64        `json:"avg_quality"`
}

// GetStats computes aggregate statistics over active records.
func GetStats(db *sql.DB) (*Stats, error) {
	s := &Stats{ByStrategy: map[string]int{}}

	err := db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(compatible), 0),
			COALESCE(AVG(confidence), 0),
			COALESCE(AVG(quality_score), 0)
		FROM records WHERE deleted_at IS NULL
	`).Scan(&s.TotalActive, &s.Compatible, &s.AvgConfidence, &s.AvgQuality)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	err = db.QueryRow(
		"SELECT COUNT(*) FROM records WHERE deleted_at IS NOT NULL",
	).Scan(&s.TotalDeleted)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	rows, err := db.Query(`
		SELECT strategy_type, COUNT(*) FROM records
		WHERE deleted_at IS NULL
		GROUP BY strategy_type
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, errors.NewInternal(err)
		}
		s.ByStrategy[typ] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return s, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a single row into a Record struct.
func scanRecord(row scanner) (*strategy.Record, error) {
	var (
		r              strategy.Record
		submitter      sql.NullString
		source         sql.NullString
		extraJSON      sql.NullString
		strategyType   string
		primaryAsset   string
		secondaryJSON  sql.NullString
		riskLevel      string
		targetAPY      sql.NullFloat64
		durationDays   sql.NullInt64
		autoCompound   int
		signalsJSON    sql.NullString
		compatible     int
		violationsJSON sql.NullString
		recsJSON       sql.NullString
		deletedAt      sql.NullInt64
	)

	err := row.Scan(
		&r.ID, &r.RawText, &submitter, &source, &extraJSON,
		&strategyType, &primaryAsset, &secondaryJSON, &riskLevel,
		&targetAPY, &durationDays, &autoCompound, &r.Confidence, &signalsJSON,
		&compatible, &violationsJSON, &r.QualityScore, &recsJSON,
		&r.CreatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Submitter = fromNullString(submitter)
	r.Source = fromNullString(source)
	r.StrategyType = strategy.Type(strategyType)
	r.PrimaryAsset = strategy.Asset(primaryAsset)
	r.RiskLevel = strategy.RiskLevel(riskLevel)
	r.AutoCompound = autoCompound != 0
	r.Compatible = compatible != 0

	if targetAPY.Valid {
		r.TargetAPY = &targetAPY.Float64
	}
	if durationDays.Valid {
		days := int(durationDays.Int64)
		r.DurationDays = &days
	}
	if deletedAt.Valid {
		r.DeletedAt = &deletedAt.Int64
	}

	if err := fromNullJSON(extraJSON, &r.Extra); err != nil {
		return nil, err
	}
	if err := fromNullJSON(secondaryJSON, &r.SecondaryAssets); err != nil {
		return nil, err
	}
	if r.SecondaryAssets == nil {
		r.SecondaryAssets = []strategy.Asset{}
	}
	if err := fromNullJSON(signalsJSON, &r.Signals); err != nil {
		return nil, err
	}
	if err := fromNullJSON(violationsJSON, &r.Violations); err != nil {
		return nil, err
	}
	if err := fromNullJSON(recsJSON, &r.Recommendations); err != nil {
		return nil, err
	}

	return &r, nil
}

// scanRecords drains a result set into a slice.
func scanRecords(rows *sql.Rows) ([]*strategy.Record, error) {
	var records []*strategy.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// toNullJSON marshals v when present, NULL otherwise.
func toNullJSON(v any, present bool) (sql.NullString, error) {
	if !present {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, errors.NewInternal(err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// fromNullJSON unmarshals a nullable JSON column into dest.
func fromNullJSON(ns sql.NullString, dest any) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), dest)
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// toNullFloat converts a *float64 to sql.NullFloat64.
func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// toNullIntPtr converts a *int to sql.NullInt64.
func toNullIntPtr(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
