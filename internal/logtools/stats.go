package logtools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"learnlog/internal/journal"
)

// StatsTool handles the log_stats MCP tool.
type StatsTool struct {
	entries    *journal.EntryRepo
	categories *journal.CategoryRepo
	settings   *journal.SettingsRepo
}

// NewStatsTool creates a StatsTool.
func NewStatsTool(entries *journal.EntryRepo, categories *journal.CategoryRepo, settings *journal.SettingsRepo) *StatsTool {
	return &StatsTool{entries: entries, categories: categories, settings: settings}
}

// Definition returns the MCP tool definition for log_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("log_stats",
		mcp.WithDescription(
			"Show journal statistics — day streak, today/this-week/total counts, "+
				"the last 7 days and the per-category breakdown.",
		),
	)
}

// Handle processes the log_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := t.entries.ListAll()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load entries: %v", err)), nil
	}
	categories, err := t.categories.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load categories: %v", err)), nil
	}
	settings, err := t.settings.Get()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load settings: %v", err)), nil
	}

	stats := journal.ComputeStats(entries, categories, time.Now())

	var b strings.Builder
	b.WriteString("## Learning Statistics\n\n")
	fmt.Fprintf(&b, "- **Streak**: %d day(s)\n", stats.Streak)
	fmt.Fprintf(&b, "- **Today**: %d\n", stats.TodayCount)
	fmt.Fprintf(&b, "- **This week**: %d (goal: %d)\n", stats.WeekCount, settings.WeeklyGoal)
	fmt.Fprintf(&b, "- **Total**: %d\n", stats.TotalCount)

	b.WriteString("\n### Last 7 days\n\n")
	for _, day := range stats.WeeklyBreakdown {
		marker := ""
		if day.IsToday {
			marker = " ← today"
		}
		fmt.Fprintf(&b, "%s %s  %s%s\n", day.Day, day.Date, bar(day.Count), marker)
	}

	b.WriteString("\n### By category\n\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s %s: %d\n", c.Icon, c.Name, stats.CategoryBreakdown[c.ID])
	}

	return mcp.NewToolResultText(b.String()), nil
}

// bar renders a count as a small block graph, capped so a bulk-import
// day doesn't blow out the layout.
func bar(count int) string {
	const max = 20
	n := count
	if n > max {
		n = max
	}
	if n == 0 {
		return "·"
	}
	return strings.Repeat("█", n) + fmt.Sprintf(" %d", count)
}
