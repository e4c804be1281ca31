package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// PatternRule is a user-supplied detection pattern layered on top of the
// built-in tables at startup.
type PatternRule struct {
	// Category is one of "strategy", "asset", "risk", "compound".
	Category string `json:"category"`

	// Key is the value the pattern votes for: a strategy type, an asset
	// symbol, or a risk level. Ignored for the compound category.
	Key string `json:"key,omitempty"`

	// Pattern is a regular expression matched against normalized
	// (lowercased, whitespace-collapsed) prompt text.
	Pattern string `json:"pattern"`

	// Weight is the vote strength. Must be positive.
	Weight float64 `json:"weight"`
}

// Config holds application configuration.
type Config struct {
	// TargetConfidence is the confidence score the quality heuristic
	// rewards with a bonus. Defaults to 0.70.
	TargetConfidence float64 `json:"target_confidence,omitempty"`

	// ExtraPatterns are user-defined detection patterns registered after
	// the built-in tables. They never replace built-in patterns; they add
	// votes of their own.
	ExtraPatterns []PatternRule `json:"extra_patterns,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited). Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// All tools are enabled by default. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TargetConfidence: 0.70,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.strata.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.TargetConfidence = overlay.TargetConfidence
	if result.TargetConfidence == 0 {
		result.TargetConfidence = base.TargetConfidence
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	// Pattern rules are ordered; base rules run before overlay rules.
	result.ExtraPatterns = append(result.ExtraPatterns, base.ExtraPatterns...)
	result.ExtraPatterns = append(result.ExtraPatterns, overlay.ExtraPatterns...)
	if len(result.ExtraPatterns) == 0 {
		result.ExtraPatterns = nil
	}

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
