package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TargetConfidence != 0.70 {
		t.Errorf("TargetConfidence = %v, want 0.70", cfg.TargetConfidence)
	}
	if len(cfg.ExtraPatterns) != 0 {
		t.Errorf("ExtraPatterns = %v, want none", cfg.ExtraPatterns)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"target_confidence": 0.5,
		"db_max_open_conns": 1,
		"disabled_tools": ["strategy_purge"],
		"extra_patterns": [
			{"category": "strategy", "key": "staking", "pattern": "\\bhodl\\b", "weight": 2}
		]
	}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TargetConfidence != 0.5 {
		t.Errorf("TargetConfidence = %v, want 0.5", cfg.TargetConfidence)
	}
	if cfg.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %v, want 1", cfg.DBMaxOpenConns)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "strategy_purge" {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
	if len(cfg.ExtraPatterns) != 1 || cfg.ExtraPatterns[0].Key != "staking" {
		t.Errorf("ExtraPatterns = %v", cfg.ExtraPatterns)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load() succeeded on invalid JSON, want error")
	}
}

func TestMerge(t *testing.T) {
	base := &Config{
		TargetConfidence: 0.70,
		DBMaxOpenConns:   2,
		DisabledTools:    []string{"strategy_purge"},
		ExtraPatterns:    []PatternRule{{Category: "risk", Key: "high", Pattern: `\byolo\b`, Weight: 1}},
	}
	overlay := &Config{
		DBMaxOpenConns: 1,
		DisabledTools:  []string{"strategy_purge", "strategy_delete"},
		ExtraPatterns:  []PatternRule{{Category: "strategy", Key: "staking", Pattern: `\bhodl\b`, Weight: 2}},
	}

	merged := Merge(base, overlay)

	// Scalars: overlay wins when non-zero, base otherwise.
	if merged.TargetConfidence != 0.70 {
		t.Errorf("TargetConfidence = %v, want base 0.70", merged.TargetConfidence)
	}
	if merged.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %v, want overlay 1", merged.DBMaxOpenConns)
	}

	// Tool lists deduplicate.
	if len(merged.DisabledTools) != 2 {
		t.Errorf("DisabledTools = %v, want 2 deduplicated entries", merged.DisabledTools)
	}

	// Pattern rules concatenate, base first.
	if len(merged.ExtraPatterns) != 2 || merged.ExtraPatterns[0].Key != "high" {
		t.Errorf("ExtraPatterns = %v", merged.ExtraPatterns)
	}
}
