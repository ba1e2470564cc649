package journal

import (
	"strings"
	"time"
)

// Filters narrows a search. Zero values (and the category sentinel
// "all") mean "no constraint" for their field.
type Filters struct {
	Category string
	DateFrom time.Time // inclusive, midnight of the first day
	DateTo   time.Time // inclusive through end of that day
}

// Search filters entries by category, creation date range and a
// case-insensitive substring query over title, content and tags. All
// filters are conjunctive and the input order is preserved.
func Search(entries []Entry, query string, f Filters) []Entry {
	out := entries

	if f.Category != "" && f.Category != "all" {
		out = filter(out, func(e Entry) bool { return e.Category == f.Category })
	}

	if !f.DateFrom.IsZero() {
		out = filter(out, func(e Entry) bool { return !e.CreatedAt.Before(f.DateFrom) })
	}

	if !f.DateTo.IsZero() {
		// DateTo is a day bound: include everything through 23:59:59.999.
		end := dateOnly(f.DateTo).AddDate(0, 0, 1).Add(-time.Millisecond)
		out = filter(out, func(e Entry) bool { return !e.CreatedAt.After(end) })
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q != "" {
		out = filter(out, func(e Entry) bool {
			if strings.Contains(strings.ToLower(e.Title), q) ||
				strings.Contains(strings.ToLower(e.Content), q) {
				return true
			}
			for _, tag := range e.Tags {
				if strings.Contains(strings.ToLower(tag), q) {
					return true
				}
			}
			return false
		})
	}

	return out
}

func filter(entries []Entry, keep func(Entry) bool) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
