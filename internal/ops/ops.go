// Package ops implements the operation layer shared by the CLI and the
// MCP server. Each operation validates its input, calls the pipeline or
// database, and returns a JSON-friendly output struct.
package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultListLimit caps List and Search results when the caller does not
// ask for a specific page size.
const DefaultListLimit = 20

// MaxListLimit is the hard ceiling on page size.
const MaxListLimit = 200

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// cleanOptionalString trims an optional string and drops it when empty.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// clampLimit normalizes a requested page size into [1, MaxListLimit].
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
