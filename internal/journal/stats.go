package journal

import (
	"sort"
	"time"
)

// Stats holds the aggregates derived from the current entry set. It is
// recomputed from scratch on every request — there is no cached or
// incremental state, so correctness depends only on the entries and the
// clock. Cheap at personal-journal scale; revisit with incremental
// aggregation only if entry volume ever makes it measurable.
type Stats struct {
	TodayCount        int            `json:"todayCount"`
	Streak            int            `json:"streak"`
	WeekCount         int            `json:"weekCount"`
	TotalCount        int            `json:"totalCount"`
	WeeklyBreakdown   []DayBucket    `json:"weeklyBreakdown"`
	CategoryBreakdown map[string]int `json:"categoryBreakdown"`
}

// DayBucket is one calendar day in the weekly breakdown.
type DayBucket struct {
	Day     string `json:"day"`  // weekday abbreviation, e.g. "Tue"
	Date    string `json:"date"` // yyyy-mm-dd
	Count   int    `json:"count"`
	IsToday bool   `json:"isToday"`
}

// ComputeStats derives all aggregates from the entry set. All date
// comparisons use calendar-day granularity in the location of now.
func ComputeStats(entries []Entry, categories []Category, now time.Time) Stats {
	today := dateOnly(now)

	todayCount := 0
	for _, e := range entries {
		if dateOnly(e.CreatedAt.In(now.Location())).Equal(today) {
			todayCount++
		}
	}

	// Week starts on the most recent Sunday. Fixed convention, not
	// configurable.
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	weekCount := 0
	for _, e := range entries {
		if !e.CreatedAt.Before(weekStart) {
			weekCount++
		}
	}

	return Stats{
		TodayCount:        todayCount,
		Streak:            Streak(entries, now),
		WeekCount:         weekCount,
		TotalCount:        len(entries),
		WeeklyBreakdown:   weeklyBreakdown(entries, now),
		CategoryBreakdown: categoryBreakdown(entries, categories),
	}
}

// Streak counts consecutive calendar days with at least one entry,
// walking backwards from the most recent such day. A streak is alive
// only if that day is today or yesterday; otherwise it is 0.
func Streak(entries []Entry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	seen := make(map[string]time.Time)
	for _, e := range entries {
		d := dateOnly(e.CreatedAt.In(now.Location()))
		seen[d.Format("2006-01-02")] = d
	}

	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	today := dateOnly(now)
	yesterday := today.AddDate(0, 0, -1)
	if !dates[0].Equal(today) && !dates[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	current := dates[0]
	for _, d := range dates[1:] {
		prev := current.AddDate(0, 0, -1)
		if !d.Equal(prev) {
			break
		}
		streak++
		current = prev
	}
	return streak
}

// weeklyBreakdown returns exactly 7 buckets for the last 7 calendar
// days, oldest first, today last.
func weeklyBreakdown(entries []Entry, now time.Time) []DayBucket {
	counts := make(map[string]int)
	for _, e := range entries {
		key := dateOnly(e.CreatedAt.In(now.Location())).Format("2006-01-02")
		counts[key]++
	}

	today := dateOnly(now)
	breakdown := make([]DayBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		key := d.Format("2006-01-02")
		breakdown = append(breakdown, DayBucket{
			Day:     d.Format("Mon"),
			Date:    key,
			Count:   counts[key],
			IsToday: i == 0,
		})
	}
	return breakdown
}

// categoryBreakdown counts entries per known category id. Entries whose
// category matches no known id fold into the "other" bucket when one
// exists; without an "other" bucket they go uncounted, matching the
// original tracker (so the column sums may fall short of TotalCount).
func categoryBreakdown(entries []Entry, categories []Category) map[string]int {
	breakdown := make(map[string]int, len(categories))
	for _, c := range categories {
		breakdown[c.ID] = 0
	}
	for _, e := range entries {
		if _, known := breakdown[e.Category]; known {
			breakdown[e.Category]++
		} else if _, hasOther := breakdown[CategoryOther]; hasOther {
			breakdown[CategoryOther]++
		}
	}
	return breakdown
}

// dateOnly truncates t to local midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
