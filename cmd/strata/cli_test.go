package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"strata/internal/db"
	"strata/internal/etl"
	"strata/internal/ops"
	"strata/internal/strategy"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	cleanup := func() {
		database.Close()
	}
	return database, cleanup
}

// seedRecord processes a prompt directly through ops so CLI tests have data.
func seedRecord(t *testing.T, database *sql.DB, text string) *strategy.Record {
	t.Helper()
	out, err := ops.Process(context.Background(), database, etl.Default(), ops.ProcessInput{Text: text})
	if err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	return out.Record
}

// captureStdout runs fn while capturing everything written to stdout.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), runErr
}

// TestParseExtra tests the parseExtra helper function.
func TestParseExtra(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		expected    map[string]string
		expectError bool
	}{
		{
			name:     "empty list",
			input:    nil,
			expected: nil,
		},
		{
			name:     "single pair",
			input:    []string{"channel=cli"},
			expected: map[string]string{"channel": "cli"},
		},
		{
			name:     "multiple pairs",
			input:    []string{"channel=cli", "priority=high"},
			expected: map[string]string{"channel": "cli", "priority": "high"},
		},
		{
			name:     "value containing equals",
			input:    []string{"note=a=b"},
			expected: map[string]string{"note": "a=b"},
		},
		{
			name:     "whitespace trimmed",
			input:    []string{" channel = cli "},
			expected: map[string]string{"channel": "cli"},
		},
		{
			name:     "empty value allowed",
			input:    []string{"flag="},
			expected: map[string]string{"flag": ""},
		},
		{
			name:        "missing separator",
			input:       []string{"channel"},
			expectError: true,
		},
		{
			name:        "empty key",
			input:       []string{"=cli"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseExtra(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if len(result) != len(tt.expected) {
				t.Errorf("expected %d entries, got %d", len(tt.expected), len(result))
				return
			}
			for k, v := range tt.expected {
				if result[k] != v {
					t.Errorf("expected %s=%q, got %q", k, v, result[k])
				}
			}
		})
	}
}

// TestCLIProcess tests the process command.
func TestCLIProcess(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	app := newCLIApp(database, etl.Default())

	stdout, err := captureStdout(t, func() error {
		return app.Run([]string{"strata", "process", "--submitter=alice", "--extra=channel=cli",
			"yield", "farming", "on", "NEAR", "with", "25%", "apy"})
	})
	if err != nil {
		t.Fatalf("process command failed: %v", err)
	}

	var output ops.ProcessOutput
	if err := json.Unmarshal([]byte(stdout), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, stdout)
	}

	if !output.Stored {
		t.Error("expected stored=true")
	}
	if output.Record.ID == "" {
		t.Error("expected non-empty record ID")
	}
	if output.Record.StrategyType != strategy.TypeYieldFarming {
		t.Errorf("expected strategy_type=yield_farming, got %s", output.Record.StrategyType)
	}
	if output.Record.Submitter == nil || *output.Record.Submitter != "alice" {
		t.Error("expected submitter=alice")
	}
	if output.Record.Extra["channel"] != "cli" {
		t.Errorf("expected extra channel=cli, got %v", output.Record.Extra)
	}
}

// TestCLIProcessDryRun tests that --dry-run skips storage.
func TestCLIProcessDryRun(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	app := newCLIApp(database, etl.Default())

	stdout, err := captureStdout(t, func() error {
		return app.Run([]string{"strata", "process", "--dry-run", "stake", "NEAR"})
	})
	if err != nil {
		t.Fatalf("process command failed: %v", err)
	}

	var output ops.ProcessOutput
	if err := json.Unmarshal([]byte(stdout), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output.Stored {
		t.Error("expected stored=false for dry run")
	}

	// Nothing should have been persisted
	_, err = ops.Fetch(context.Background(), database, ops.FetchInput{ID: output.Record.ID})
	if err == nil {
		t.Error("dry-run record should not be fetchable")
	}
}

// TestCLIProcessStdin tests reading the prompt from stdin.
func TestCLIProcessStdin(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	app := newCLIApp(database, etl.Default())

	oldStdin := os.Stdin
	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdin = stdinR
	defer func() { os.Stdin = oldStdin }()

	go func() {
		_, _ = stdinW.WriteString("provide liquidity to the NEAR-USDC pool")
		stdinW.Close()
	}()

	stdout, runErr := captureStdout(t, func() error {
		return app.Run([]string{"strata", "process"})
	})
	if runErr != nil {
		t.Fatalf("process command failed: %v", runErr)
	}

	var output ops.ProcessOutput
	if err := json.Unmarshal([]byte(stdout), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output.Record.StrategyType != strategy.TypeLiquidityProviding {
		t.Errorf("expected strategy_type=liquidity_providing, got %s", output.Record.StrategyType)
	}
}

// TestCLIFetch tests the fetch command.
func TestCLIFetch(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	rec := seedRecord(t, database, "stake NEAR with a validator")
	app := newCLIApp(database, etl.Default())

	stdout, err := captureStdout(t, func() error {
		return app.Run([]string{"strata", "fetch", rec.ID})
	})
	if err != nil {
		t.Fatalf("fetch command failed: %v", err)
	}

	var output strategy.Record
	if err := json.Unmarshal([]byte(stdout), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output.ID != rec.ID {
		t.Errorf("expected ID=%s, got %s", rec.ID, output.ID)
	}
}

// TestCLIList tests the list command.
func TestCLIList(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	seedRecord(t, database, "yield farming on NEAR, 25% apy")
	seedRecord(t, database, "stake NEAR with a validator")
	seedRecord(t, database, "provide liquidity to the NEAR-USDC pool")

	app := newCLIApp(database, etl.Default())

	t.Run("all records", func(t *testing.T) {
		stdout, err := captureStdout(t, func() error {
			return app.Run([]string{"strata", "list"})
		})
		if err != nil {
			t.Fatalf("list command failed: %v", err)
		}

		var output ops.ListOutput
		if err := json.Unmarshal([]byte(stdout), &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if len(output.Records) != 3 {
			t.Errorf("expected 3 records, got %d", len(output.Records))
		}
		if output.Total != 3 {
			t.Errorf("expected total=3, got %d", output.Total)
		}
	})

	t.Run("filter by type", func(t *testing.T) {
		stdout, err := captureStdout(t, func() error {
			return app.Run([]string{"strata", "list", "--type=staking"})
		})
		if err != nil {
			t.Fatalf("list command failed: %v", err)
		}

		var output ops.ListOutput
		if err := json.Unmarshal([]byte(stdout), &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if len(output.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(output.Records))
		}
		if output.Records[0].StrategyType != strategy.TypeStaking {
			t.Errorf("expected staking, got %s", output.Records[0].StrategyType)
		}
	})
}

// TestCLISearch tests the search command.
func TestCLISearch(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	seedRecord(t, database, "yield farming on NEAR, 25% apy")
	app := newCLIApp(database, etl.Default())

	stdout, err := captureStdout(t, func() error {
		return app.Run([]string{"strata", "search", "yield", "farming"})
	})
	if err != nil {
		t.Fatalf("search command failed: %v", err)
	}

	var output ops.SearchOutput
	if err := json.Unmarshal([]byte(stdout), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if len(output.Records) != 1 {
		t.Errorf("expected 1 record, got %d", len(output.Records))
	}
	if output.Query != "yield farming" {
		t.Errorf("expected query=%q, got %q", "yield farming", output.Query)
	}
}

// TestCLIDeletePurge tests the delete and purge commands.
func TestCLIDeletePurge(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	rec := seedRecord(t, database, "stake NEAR with a validator")
	app := newCLIApp(database, etl.Default())

	stdout, err := captureStdout(t, func() error {
		return app.Run([]string{"strata", "delete", rec.ID})
	})
	if err != nil {
		t.Fatalf("delete command failed: %v", err)
	}

	var deleteOutput ops.DeleteOutput
	if err := json.Unmarshal([]byte(stdout), &deleteOutput); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if !deleteOutput.Deleted {
		t.Error("expected deleted=true")
	}

	stdout, err = captureStdout(t, func() error {
		return app.Run([]string{"strata", "purge"})
	})
	if err != nil {
		t.Fatalf("purge command failed: %v", err)
	}

	var purgeOutput ops.PurgeOutput
	if err := json.Unmarshal([]byte(stdout), &purgeOutput); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if purgeOutput.Purged != 1 {
		t.Errorf("expected purged=1, got %d", purgeOutput.Purged)
	}
}

// TestCLIExport tests the export command writing to a file.
func TestCLIExport(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	seedRecord(t, database, "yield farming on NEAR, 25% apy")
	seedRecord(t, database, "stake NEAR with a validator")

	app := newCLIApp(database, etl.Default())
	exportPath := filepath.Join(t.TempDir(), "export.jsonl")

	if _, err := captureStdout(t, func() error {
		return app.Run([]string{"strata", "export", exportPath})
	}); err != nil {
		t.Fatalf("export command failed: %v", err)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("failed to read export file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header + 2 records), got %d", len(lines))
	}

	var header map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &header); err != nil {
		t.Fatalf("failed to parse header line: %v", err)
	}
	if header["format"] != "strata-records" {
		t.Errorf("expected format=strata-records, got %v", header["format"])
	}
}

// TestCLIStats tests the stats command.
func TestCLIStats(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	seedRecord(t, database, "yield farming on NEAR, 25% apy")
	app := newCLIApp(database, etl.Default())

	stdout, err := captureStdout(t, func() error {
		return app.Run([]string{"strata", "stats"})
	})
	if err != nil {
		t.Fatalf("stats command failed: %v", err)
	}

	var output db.Stats
	if err := json.Unmarshal([]byte(stdout), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output.TotalActive != 1 {
		t.Errorf("expected total_active=1, got %d", output.TotalActive)
	}
	if output.ByStrategy["yield_farming"] != 1 {
		t.Errorf("expected by_strategy[yield_farming]=1, got %d", output.ByStrategy["yield_farming"])
	}
}

// TestCLIErrorHandling tests error handling in CLI commands.
func TestCLIErrorHandling(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	app := newCLIApp(database, etl.Default())

	t.Run("fetch not found returns error", func(t *testing.T) {
		// cli.Exit writes to stderr, so just verify the error is returned
		err := app.Run([]string{"strata", "fetch", "01MISSING"})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("delete without id returns error", func(t *testing.T) {
		err := app.Run([]string{"strata", "delete"})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("list with unknown type returns error", func(t *testing.T) {
		err := app.Run([]string{"strata", "list", "--type=gardening"})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("process invalid extra returns error", func(t *testing.T) {
		err := app.Run([]string{"strata", "process", "--extra=broken", "stake", "NEAR"})
		if err == nil {
			t.Error("expected error, got nil")
		}
	})
}

// TestIsCLIMode tests the isCLIMode function.
func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{
			name:     "no args",
			args:     []string{"strata"},
			expected: false,
		},
		{
			name:     "process command",
			args:     []string{"strata", "process"},
			expected: true,
		},
		{
			name:     "list command",
			args:     []string{"strata", "list"},
			expected: true,
		},
		{
			name:     "help flag",
			args:     []string{"strata", "--help"},
			expected: true,
		},
		{
			name:     "version flag",
			args:     []string{"strata", "--version"},
			expected: true,
		},
		{
			name:     "short help flag",
			args:     []string{"strata", "-h"},
			expected: true,
		},
		{
			name:     "unknown arg defaults to MCP",
			args:     []string{"strata", "--unknown"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			result := isCLIMode()

			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

// TestIsHelpOrVersion tests the isHelpOrVersion function.
func TestIsHelpOrVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{
			name:     "no args",
			args:     []string{"strata"},
			expected: false,
		},
		{
			name:     "help flag",
			args:     []string{"strata", "--help"},
			expected: true,
		},
		{
			name:     "version flag",
			args:     []string{"strata", "--version"},
			expected: true,
		},
		{
			name:     "help subcommand",
			args:     []string{"strata", "help"},
			expected: true,
		},
		{
			name:     "process command is not help",
			args:     []string{"strata", "process"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			result := isHelpOrVersion()

			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}
