package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"strata/internal/errors"
	"strata/internal/etl"
	"strata/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db   *sql.DB
	pipe *etl.Pipeline
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, pipe *etl.Pipeline) *Handlers {
	return &Handlers{db: db, pipe: pipe}
}

// Request types for each tool

// ProcessRequest represents the arguments for process.
type ProcessRequest struct {
	Text      string            `json:"text"`
	Submitter *string           `json:"submitter,omitempty"`
	Source    *string           `json:"source,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
	DryRun    bool              `json:"dry_run,omitempty"`
}

// FetchRequest represents the arguments for fetch.
type FetchRequest struct {
	ID             string `json:"id"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

// ListRequest represents the arguments for list.
type ListRequest struct {
	StrategyType   string `json:"strategy_type,omitempty"`
	PrimaryAsset   string `json:"primary_asset,omitempty"`
	Submitter      string `json:"submitter,omitempty"`
	CompatibleOnly bool   `json:"compatible_only,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	Offset         int    `json:"offset,omitempty"`
}

// SearchRequest represents the arguments for search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// DeleteRequest represents the arguments for delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// PurgeRequest represents the arguments for purge.
type PurgeRequest struct {
	OlderThanDays int `json:"older_than_days,omitempty"`
}

// Handler implementations

// HandleProcess handles the process tool call.
func (h *Handlers) HandleProcess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProcessRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Process(ctx, h.db, h.pipe, ops.ProcessInput{
		Text:      input.Text,
		Submitter: input.Submitter,
		Source:    input.Source,
		Extra:     input.Extra,
		DryRun:    input.DryRun,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(ctx, h.db, ops.FetchInput{
		ID:             input.ID,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.db, ops.ListInput{
		StrategyType:   input.StrategyType,
		PrimaryAsset:   input.PrimaryAsset,
		Submitter:      input.Submitter,
		CompatibleOnly: input.CompatibleOnly,
		Limit:          input.Limit,
		Offset:         input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearch handles the search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(ctx, h.db, ops.SearchInput{
		Query: input.Query,
		Limit: input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.db, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePurge handles the purge tool call.
func (h *Handlers) HandlePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PurgeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Purge(ctx, h.db, ops.PurgeInput{OlderThanDays: input.OlderThanDays})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the export tool call. The JSONL dump is returned
// as plain text rather than a JSON object.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf strings.Builder
	if _, err := ops.Export(ctx, h.db, &buf); err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}

// HandleStats handles the stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.GetStats(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if opErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    opErr.Code,
			"message": opErr.Message,
			"status":  opErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if opErr.Code != errors.ErrInternal && opErr.Details != nil {
			errorObj["details"] = opErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
