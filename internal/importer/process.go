package importer

import (
	"strings"
	"time"

	"learnlog/internal/journal"
)

// nowFunc is a package-level var to allow test injection of the clock.
var nowFunc = time.Now

// Options steers the row transform.
type Options struct {
	// HasHeaders skips row 0 of the grid.
	HasHeaders bool
	// AutoCategorize falls back to keyword scoring when the category
	// column is absent or unresolvable.
	AutoCategorize bool
	// DefaultCategory is used when auto-categorization is off.
	DefaultCategory string
	// CategoryMapping maps lower-cased cell values to category ids,
	// checked before any name/id matching.
	CategoryMapping map[string]string
	// Categories are the known categories to match cell values against.
	Categories []journal.Category
}

// DefaultOptions mirror the import wizard's initial state.
func DefaultOptions() Options {
	return Options{
		HasHeaders:      true,
		AutoCategorize:  true,
		DefaultCategory: journal.CategoryOther,
	}
}

// Process transforms a sheet grid into candidate entries. Rows whose
// trimmed title and content are both empty are dropped. Rows without a
// parseable date each get their own current timestamp — deliberately
// not one shared batch time, so successive rows land in creation order
// when grouped by date later.
func Process(grid [][]string, cols ColumnMap, opts Options) []journal.Entry {
	start := 0
	if opts.HasHeaders {
		start = 1
	}

	var candidates []journal.Entry
	for i := start; i < len(grid); i++ {
		row := grid[i]
		if len(row) == 0 {
			continue
		}

		title := strings.TrimSpace(cell(row, cols.Title))
		content := strings.TrimSpace(cell(row, cols.Content))
		if title == "" && content == "" {
			continue
		}

		createdAt := nowFunc()
		if cols.Date >= 0 {
			if parsed, ok := parseDate(cell(row, cols.Date)); ok {
				createdAt = parsed
			}
		}

		candidates = append(candidates, journal.Entry{
			Title:     title,
			Content:   content,
			Category:  resolveCategory(row, cols, opts, title, content),
			Tags:      splitTags(cell(row, cols.Tags)),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		})
	}
	return candidates
}

// resolveCategory applies the chain: explicit mapping table, existing
// category name/id match, keyword scoring, configured default.
func resolveCategory(row []string, cols ColumnMap, opts Options, title, content string) string {
	fallback := func() string {
		if opts.AutoCategorize {
			return AutoCategorize(title + " " + content)
		}
		return opts.DefaultCategory
	}

	if cols.Category < 0 {
		return fallback()
	}
	raw := strings.ToLower(strings.TrimSpace(cell(row, cols.Category)))
	if raw == "" {
		return fallback()
	}

	if mapped, ok := opts.CategoryMapping[raw]; ok {
		return mapped
	}
	for _, c := range opts.Categories {
		if strings.ToLower(c.Name) == raw || c.ID == raw {
			return c.ID
		}
	}
	return fallback()
}

// cell reads a column from a row, tolerating short rows and unmapped
// (-1) columns.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// splitTags breaks a tags cell on comma, semicolon or pipe, dropping
// empty pieces.
func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// dateFormats covers the shapes third-party sheets actually contain:
// ISO timestamps, plain dates and the slash conventions spreadsheet
// tools emit for date-typed cells.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06 15:04",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
