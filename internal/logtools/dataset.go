package logtools

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"learnlog/internal/journal"
)

// ─── ExportTool ─────────────────────────────────────────────────────────────

// ExportTool handles the log_export MCP tool: a whole-journal JSON dump.
type ExportTool struct {
	entries    *journal.EntryRepo
	categories *journal.CategoryRepo
	settings   *journal.SettingsRepo
}

// NewExportTool creates an ExportTool.
func NewExportTool(entries *journal.EntryRepo, categories *journal.CategoryRepo, settings *journal.SettingsRepo) *ExportTool {
	return &ExportTool{entries: entries, categories: categories, settings: settings}
}

// Definition returns the MCP tool definition for log_export.
func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("log_export",
		mcp.WithDescription(
			"Export the whole journal (entries, categories, settings) as JSON, "+
				"optionally writing it to a file.",
		),
		mcp.WithString("path",
			mcp.Description("File path to write the dump to; omitted, the JSON is returned inline"),
		),
	)
}

// Handle processes the log_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := journal.Export(t.entries, t.categories, t.settings)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}

	if path := req.GetString("path", ""); path != "" {
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to write %s: %v", path, err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Journal exported to %s (%d bytes)", path, len(data))), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ─── RestoreTool ────────────────────────────────────────────────────────────

// RestoreTool handles the log_restore MCP tool: the inverse of log_export.
type RestoreTool struct {
	entries    *journal.EntryRepo
	categories *journal.CategoryRepo
	settings   *journal.SettingsRepo
}

// NewRestoreTool creates a RestoreTool.
func NewRestoreTool(entries *journal.EntryRepo, categories *journal.CategoryRepo, settings *journal.SettingsRepo) *RestoreTool {
	return &RestoreTool{entries: entries, categories: categories, settings: settings}
}

// Definition returns the MCP tool definition for log_restore.
func (t *RestoreTool) Definition() mcp.Tool {
	return mcp.NewTool("log_restore",
		mcp.WithDescription(
			"Restore a journal from a JSON dump produced by log_export. Each "+
				"collection present in the dump replaces the stored one wholesale.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the dump file"),
		),
	)
}

// Handle processes the log_restore tool call.
func (t *RestoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read %s: %v", path, err)), nil
	}

	if err := journal.Import(data, t.entries, t.categories, t.settings); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("restore failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Journal restored from %s", path)), nil
}
