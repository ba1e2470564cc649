package logtools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"learnlog/internal/importer"
	"learnlog/internal/journal"
)

// SessionHolder owns the single in-flight import session. Starting a
// new import replaces whatever was there — only one wizard runs at a
// time, and abandoning one has no persisted side effects.
type SessionHolder struct {
	session *importer.Session
}

// NewSessionHolder creates an empty holder.
func NewSessionHolder() *SessionHolder {
	return &SessionHolder{}
}

// Start discards any prior session and returns a fresh one.
func (h *SessionHolder) Start() *importer.Session {
	h.session = importer.NewSession()
	return h.session
}

// Current returns the in-flight session, or nil when none exists.
func (h *SessionHolder) Current() *importer.Session {
	return h.session
}

// Reset drops the in-flight session.
func (h *SessionHolder) Reset() {
	h.session = nil
}

// columnName renders a mapped column for display.
func columnName(headers []string, col int) string {
	if col < 0 {
		return "—"
	}
	if col < len(headers) && strings.TrimSpace(headers[col]) != "" {
		return fmt.Sprintf("%d (%s)", col, strings.TrimSpace(headers[col]))
	}
	return fmt.Sprintf("%d", col)
}

// describeMapping renders the session's sheet, headers and column map.
func describeMapping(s *importer.Session) string {
	grid, _ := s.Workbook.Rows(s.Sheet)
	var headers []string
	if len(grid) > 0 {
		headers = grid[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sheet: %s (%d rows)\n\n", s.Sheet, len(grid))
	if len(s.Workbook.SheetNames) > 1 {
		fmt.Fprintf(&b, "Other sheets: %s\n\n", strings.Join(s.Workbook.SheetNames, ", "))
	}
	b.WriteString("Column mapping:\n")
	fmt.Fprintf(&b, "- title: %s\n", columnName(headers, s.Columns.Title))
	fmt.Fprintf(&b, "- content: %s\n", columnName(headers, s.Columns.Content))
	fmt.Fprintf(&b, "- date: %s\n", columnName(headers, s.Columns.Date))
	fmt.Fprintf(&b, "- category: %s\n", columnName(headers, s.Columns.Category))
	fmt.Fprintf(&b, "- tags: %s\n", columnName(headers, s.Columns.Tags))
	return b.String()
}

// ─── ImportFileTool ─────────────────────────────────────────────────────────

// ImportFileTool handles the import_file MCP tool: step 1 of the wizard.
type ImportFileTool struct {
	holder *SessionHolder
}

// NewImportFileTool creates an ImportFileTool.
func NewImportFileTool(holder *SessionHolder) *ImportFileTool {
	return &ImportFileTool{holder: holder}
}

// Definition returns the MCP tool definition for import_file.
func (t *ImportFileTool) Definition() mcp.Tool {
	return mcp.NewTool("import_file",
		mcp.WithDescription(
			"Start a spreadsheet import: decode an .xlsx/.csv/.tsv file, pick the "+
				"first sheet and auto-detect which columns hold title, content, date, "+
				"category and tags. Replaces any import already in progress.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the spreadsheet file to import"),
		),
	)
}

// Handle processes the import_file tool call.
func (t *ImportFileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read %s: %v", path, err)), nil
	}

	session := t.holder.Start()
	if err := session.Upload(data, filepath.Base(path)); err != nil {
		t.holder.Reset()
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(
		fmt.Sprintf("File decoded: %s\n\n%s\nAdjust with import_configure, then run import_preview.",
			session.Filename, describeMapping(session)),
	), nil
}

// ─── ImportConfigureTool ────────────────────────────────────────────────────

// ImportConfigureTool handles the import_configure MCP tool: sheet
// selection, column-map edits and categorization mode.
type ImportConfigureTool struct {
	holder     *SessionHolder
	categories *journal.CategoryRepo
}

// NewImportConfigureTool creates an ImportConfigureTool.
func NewImportConfigureTool(holder *SessionHolder, categories *journal.CategoryRepo) *ImportConfigureTool {
	return &ImportConfigureTool{holder: holder, categories: categories}
}

// Definition returns the MCP tool definition for import_configure.
func (t *ImportConfigureTool) Definition() mcp.Tool {
	return mcp.NewTool("import_configure",
		mcp.WithDescription(
			"Adjust the import in progress: switch sheets, override detected column "+
				"indexes (-1 = column absent), toggle the header row, and choose how "+
				"rows get categorized.",
		),
		mcp.WithString("sheet",
			mcp.Description("Sheet name to import from (re-detects columns)"),
		),
		mcp.WithNumber("title_column", mcp.Description("Column index for titles")),
		mcp.WithNumber("content_column", mcp.Description("Column index for content")),
		mcp.WithNumber("date_column", mcp.Description("Column index for dates, -1 if absent")),
		mcp.WithNumber("category_column", mcp.Description("Column index for categories, -1 if absent")),
		mcp.WithNumber("tags_column", mcp.Description("Column index for tags, -1 if absent")),
		mcp.WithBoolean("has_headers",
			mcp.Description("Whether row 0 is a header row (default: true)"),
		),
		mcp.WithString("mode",
			mcp.Description("Categorization: 'auto' (keyword scoring), 'column' (trust the sheet), 'manual' (one category for all)"),
		),
		mcp.WithString("default_category",
			mcp.Description("Category id applied in 'manual' mode or when 'column' finds nothing"),
		),
	)
}

// Handle processes the import_configure tool call.
func (t *ImportConfigureTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session := t.holder.Current()
	if session == nil {
		return mcp.NewToolResultError("no import in progress — run import_file first"), nil
	}

	if sheet := req.GetString("sheet", ""); sheet != "" && sheet != session.Sheet {
		if err := session.SelectSheet(sheet); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	cols := session.Columns
	args := req.GetArguments()
	override := func(key string, dst *int) {
		if v, ok := args[key].(float64); ok {
			*dst = int(v)
		}
	}
	override("title_column", &cols.Title)
	override("content_column", &cols.Content)
	override("date_column", &cols.Date)
	override("category_column", &cols.Category)
	override("tags_column", &cols.Tags)
	session.SetColumnMap(cols)

	if v, ok := boolArg(req, "has_headers"); ok {
		session.Options.HasHeaders = v
	}

	if mode := req.GetString("mode", ""); mode != "" {
		if err := session.SetMode(mode, req.GetString("default_category", "")); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	// Matching against existing categories happens during the row
	// transform, so refresh the snapshot the session carries.
	categories, err := t.categories.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load categories: %v", err)), nil
	}
	session.Options.Categories = categories

	return mcp.NewToolResultText(describeMapping(session) + "\nRun import_preview when the mapping looks right."), nil
}

// ─── ImportPreviewTool ──────────────────────────────────────────────────────

// ImportPreviewTool handles the import_preview MCP tool.
type ImportPreviewTool struct {
	holder  *SessionHolder
	entries *journal.EntryRepo
}

// NewImportPreviewTool creates an ImportPreviewTool.
func NewImportPreviewTool(holder *SessionHolder, entries *journal.EntryRepo) *ImportPreviewTool {
	return &ImportPreviewTool{holder: holder, entries: entries}
}

// Definition returns the MCP tool definition for import_preview.
func (t *ImportPreviewTool) Definition() mcp.Tool {
	return mcp.NewTool("import_preview",
		mcp.WithDescription(
			"Transform the mapped sheet into candidate entries and preview the first "+
				"few, with counts of how many are new versus duplicate titles. Nothing "+
				"is persisted yet.",
		),
	)
}

// Handle processes the import_preview tool call.
func (t *ImportPreviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session := t.holder.Current()
	if session == nil {
		return mcp.NewToolResultError("no import in progress — run import_file first"), nil
	}

	candidates, err := session.Preview()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	existing, err := t.entries.ListAll()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load entries: %v", err)), nil
	}
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[strings.ToLower(e.Title)] = true
	}

	duplicates := 0
	for _, c := range candidates {
		key := strings.ToLower(c.Title)
		if seen[key] {
			duplicates++
		}
		seen[key] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d candidate entries: %d new, %d duplicate titles (will be skipped)\n\n",
		len(candidates), len(candidates)-duplicates, duplicates)

	const previewCount = 5
	for i, c := range candidates {
		if i == previewCount {
			fmt.Fprintf(&b, "... and %d more\n", len(candidates)-previewCount)
			break
		}
		fmt.Fprintf(&b, "[%d] %s (%s, %s)\n", i+1, c.Title, c.Category, c.CreatedAt.Format("2006-01-02"))
		if c.Content != "" {
			snippet := c.Content
			if len(snippet) > 120 {
				snippet = snippet[:117] + "..."
			}
			fmt.Fprintf(&b, "    %s\n", snippet)
		}
	}
	b.WriteString("\nRun import_commit to write the new entries.")

	return mcp.NewToolResultText(b.String()), nil
}

// ─── ImportCommitTool ───────────────────────────────────────────────────────

// ImportCommitTool handles the import_commit MCP tool: the only step
// that writes to the journal.
type ImportCommitTool struct {
	holder  *SessionHolder
	entries *journal.EntryRepo
}

// NewImportCommitTool creates an ImportCommitTool.
func NewImportCommitTool(holder *SessionHolder, entries *journal.EntryRepo) *ImportCommitTool {
	return &ImportCommitTool{holder: holder, entries: entries}
}

// Definition returns the MCP tool definition for import_commit.
func (t *ImportCommitTool) Definition() mcp.Tool {
	return mcp.NewTool("import_commit",
		mcp.WithDescription(
			"Write the previewed candidates into the journal, skipping entries whose "+
				"title already exists (case-insensitive). Closes the import session.",
		),
	)
}

// Handle processes the import_commit tool call.
func (t *ImportCommitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session := t.holder.Current()
	if session == nil {
		return mcp.NewToolResultError("no import in progress — run import_file first"), nil
	}

	res, err := session.Commit(t.entries)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import failed: %v", err)), nil
	}
	t.holder.Reset()

	return mcp.NewToolResultText(fmt.Sprintf(
		"Import complete: %d imported, %d skipped as duplicates, %d total.",
		res.Imported, res.Skipped, res.Total,
	)), nil
}
