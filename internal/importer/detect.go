package importer

import (
	"regexp"
	"strings"
)

// ColumnMap records which column index feeds each entry field.
// -1 means "not present in this sheet" — valid for date, category and
// tags; title and content always end up assigned.
type ColumnMap struct {
	Title    int `json:"title"`
	Content  int `json:"content"`
	Date     int `json:"date"`
	Category int `json:"category"`
	Tags     int `json:"tags"`
}

// Header patterns per field, matched anchored and case-insensitively.
// The serial-number spellings under date (S.No, Sr.No, ...) come from
// DPR-style report sheets where the first column numbers the rows.
var columnPatterns = []struct {
	field   string
	pattern *regexp.Regexp
}{
	{"title", regexp.MustCompile(`(?i)^(title|topic|subject|learning|what|name|heading|activity|task|work|item|dpr|report|learnings?|daily)$`)},
	{"content", regexp.MustCompile(`(?i)^(content|description|details|notes|body|text|summary|learned|insight|remarks|comments?|observation|findings?|progress|status|update)$`)},
	{"date", regexp.MustCompile(`(?i)^(date|created|time|timestamp|when|day|s\.?no\.?|sr\.?no\.?|sl\.?no\.?|serial|no\.?)$`)},
	{"category", regexp.MustCompile(`(?i)^(category|type|group|classification|area|domain|field|module|section|phase)$`)},
	{"tags", regexp.MustCompile(`(?i)^(tags|keywords|labels|hashtags|skills?)$`)},
}

// DetectColumns guesses the column map from a header row.
//
// Pass 1 tries the anchored patterns; the first unassigned header to
// match a field keeps it. Pass 2 relaxes to substring hints when title
// or content is still missing. Finally title falls back to column 0 and
// content to the column after title (or title's own column when title
// is last).
func DetectColumns(headers []string) ColumnMap {
	cols := ColumnMap{Title: -1, Content: -1, Date: -1, Category: -1, Tags: -1}

	assign := func(field string, index int) {
		switch field {
		case "title":
			if cols.Title < 0 {
				cols.Title = index
			}
		case "content":
			if cols.Content < 0 {
				cols.Content = index
			}
		case "date":
			if cols.Date < 0 {
				cols.Date = index
			}
		case "category":
			if cols.Category < 0 {
				cols.Category = index
			}
		case "tags":
			if cols.Tags < 0 {
				cols.Tags = index
			}
		}
	}

	for i, header := range headers {
		h := strings.TrimSpace(header)
		if h == "" {
			continue
		}
		for _, p := range columnPatterns {
			if p.pattern.MatchString(h) {
				assign(p.field, i)
			}
		}
	}

	// Substring fallbacks when exact matching left the two required
	// fields open.
	if cols.Title < 0 || cols.Content < 0 {
		for i, header := range headers {
			h := strings.ToLower(header)
			if h == "" {
				continue
			}
			if cols.Title < 0 && containsAny(h, "learn", "topic", "title", "activity", "task", "work") {
				cols.Title = i
			}
			if cols.Content < 0 && containsAny(h, "detail", "desc", "note", "summary", "remark", "comment") {
				cols.Content = i
			}
			if cols.Date < 0 && containsAny(h, "date", "day", "time") {
				cols.Date = i
			}
		}
	}

	if cols.Title < 0 {
		cols.Title = 0
	}
	if cols.Content < 0 {
		if next := cols.Title + 1; next < len(headers) {
			cols.Content = next
		} else {
			cols.Content = cols.Title
		}
	}

	return cols
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
