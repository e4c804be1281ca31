package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Names follow the "strategy_action" pattern.

var processToolDef = mcp.NewTool("strategy_process",
	mcp.WithDescription("Process a free-text DeFi strategy prompt into structured parameters. Returns the extracted strategy type, assets, risk level, numeric targets, confidence score, compatibility verdict, and quality assessment. The result is stored unless dry_run is set."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The raw strategy prompt to process."),
	),
	mcp.WithString("submitter",
		mcp.Description("Who submitted the prompt."),
	),
	mcp.WithString("source",
		mcp.Description("Where the prompt came from (e.g. 'discord', 'web')."),
	),
	mcp.WithBoolean("dry_run",
		mcp.Description("When true, return the result without storing it."),
	),
	mcp.WithObject("extra",
		mcp.Description("Extra string key/value metadata stored alongside the record."),
	),
)

var fetchToolDef = mcp.NewTool("strategy_fetch",
	mcp.WithDescription("Fetch a processed strategy record by its ID."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Record ULID."),
	),
	mcp.WithBoolean("include_deleted",
		mcp.Description("Include soft-deleted records."),
	),
)

var listToolDef = mcp.NewTool("strategy_list",
	mcp.WithDescription("List processed strategy records, newest-first, with optional filters and pagination."),
	mcp.WithString("strategy_type",
		mcp.Description("Filter by strategy type (e.g. 'yield_farming')."),
	),
	mcp.WithString("primary_asset",
		mcp.Description("Filter by primary asset symbol (e.g. 'NEAR')."),
	),
	mcp.WithString("submitter",
		mcp.Description("Filter by submitter."),
	),
	mcp.WithBoolean("compatible_only",
		mcp.Description("Only return records that passed compatibility validation."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Page size (default 20, max 200)."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Pagination offset."),
	),
)

var searchToolDef = mcp.NewTool("strategy_search",
	mcp.WithDescription("Search processed strategy records by raw prompt text (case-insensitive substring match)."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Text to search for."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum results (default 20, max 200)."),
	),
)

var deleteToolDef = mcp.NewTool("strategy_delete",
	mcp.WithDescription("Soft-delete a strategy record. The record stays recoverable until purged."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Record ULID."),
	),
)

var purgeToolDef = mcp.NewTool("strategy_purge",
	mcp.WithDescription("Permanently remove soft-deleted strategy records."),
	mcp.WithNumber("older_than_days",
		mcp.Description("Only purge records deleted at least this many days ago. 0 purges all."),
	),
)

var exportToolDef = mcp.NewTool("strategy_export",
	mcp.WithDescription("Export all active strategy records as JSON Lines. The first line is a header object; each following line is one record."),
)

var statsToolDef = mcp.NewTool("strategy_stats",
	mcp.WithDescription("Summarize stored strategy records: counts per strategy type, compatibility rate, and average confidence and quality scores."),
)
