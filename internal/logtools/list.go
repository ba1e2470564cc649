package logtools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"learnlog/internal/journal"
)

// ListTool handles the log_list MCP tool: the browse/search/filter
// surface, rendered grouped by calendar day the way the tracker's feed is.
type ListTool struct {
	entries    *journal.EntryRepo
	categories *journal.CategoryRepo
}

// NewListTool creates a ListTool.
func NewListTool(entries *journal.EntryRepo, categories *journal.CategoryRepo) *ListTool {
	return &ListTool{entries: entries, categories: categories}
}

// Definition returns the MCP tool definition for log_list.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("log_list",
		mcp.WithDescription(
			"Browse journal entries grouped by date, optionally narrowed by a search "+
				"query, a category, and a creation date range. All filters combine with AND.",
		),
		mcp.WithString("query",
			mcp.Description("Case-insensitive substring match over title, content and tags"),
		),
		mcp.WithString("category",
			mcp.Description("Category id to filter by ('all' or omitted: no filter)"),
		),
		mcp.WithString("date_from",
			mcp.Description("Earliest creation date, yyyy-mm-dd (inclusive)"),
		),
		mcp.WithString("date_to",
			mcp.Description("Latest creation date, yyyy-mm-dd (inclusive through end of day)"),
		),
	)
}

// Handle processes the log_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := t.entries.ListAll()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load entries: %v", err)), nil
	}

	from, err := dateArg(req, "date_from")
	if err != nil {
		return mcp.NewToolResultError("'date_from' must be yyyy-mm-dd"), nil
	}
	to, err := dateArg(req, "date_to")
	if err != nil {
		return mcp.NewToolResultError("'date_to' must be yyyy-mm-dd"), nil
	}

	query := req.GetString("query", "")
	results := journal.Search(entries, query, journal.Filters{
		Category: req.GetString("category", ""),
		DateFrom: from,
		DateTo:   to,
	})

	if len(results) == 0 {
		if strings.TrimSpace(query) != "" {
			return mcp.NewToolResultText("No entries match your search."), nil
		}
		return mcp.NewToolResultText("No entries yet. Use log_add to record your first learning."), nil
	}

	icons := t.categoryIcons()
	now := time.Now()

	var b strings.Builder
	fmt.Fprintf(&b, "%d entries\n", len(results))
	for _, group := range journal.GroupByDate(results) {
		fmt.Fprintf(&b, "\n## %s (%s)\n\n", journal.FormatGroupTitle(group.Date, now), group.Date)
		for _, e := range group.Entries {
			icon := icons[e.Category]
			if icon == "" {
				icon = icons[journal.CategoryOther]
			}
			fmt.Fprintf(&b, "- %s **%s**", icon, e.Title)
			if len(e.Tags) > 0 {
				fmt.Fprintf(&b, " [%s]", strings.Join(e.Tags, ", "))
			}
			fmt.Fprintf(&b, "\n  ID: %s\n", e.ID)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (t *ListTool) categoryIcons() map[string]string {
	icons := make(map[string]string)
	categories, err := t.categories.List()
	if err != nil {
		return icons
	}
	for _, c := range categories {
		icons[c.ID] = c.Icon
	}
	return icons
}
