package journal

import (
	"sort"
	"time"
)

// DateGroup is one calendar day's worth of entries for display.
type DateGroup struct {
	Date    string // yyyy-mm-dd
	Entries []Entry
}

// GroupByDate buckets entries by creation date, newest date first.
// Relative order within a day follows the input.
func GroupByDate(entries []Entry) []DateGroup {
	buckets := make(map[string][]Entry)
	for _, e := range entries {
		key := dateOnly(e.CreatedAt).Format("2006-01-02")
		buckets[key] = append(buckets[key], e)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	groups := make([]DateGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, DateGroup{Date: k, Entries: buckets[k]})
	}
	return groups
}

// FormatGroupTitle renders a group date as a human heading: "Today",
// "Yesterday", the weekday within the last week, or a long form beyond.
func FormatGroupTitle(date string, now time.Time) string {
	d, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return date
	}

	diff := int(dateOnly(now).Sub(d).Hours() / 24)
	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Yesterday"
	case diff > 1 && diff < 7:
		return d.Format("Monday")
	default:
		return d.Format("Monday, January 2")
	}
}
