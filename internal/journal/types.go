// Package journal implements the data layer of the daily learning log:
// entry, category and settings repositories over a kv.Store, plus the
// statistics and search engines derived from the entry set.
//
// Field names in the JSON tags match the browser export format of the
// original tracker, so a dataset dumped from the PWA round-trips.
package journal

import "time"

// Storage keys. Each repository exclusively owns its key.
const (
	KeyEntries    = "dlt_learnings"
	KeyCategories = "dlt_categories"
	KeySettings   = "dlt_settings"
)

// CategoryOther is the fallback category id for uncategorized entries.
const CategoryOther = "other"

// Entry is one learning record.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Category is a tag-like classification with display hints.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Settings is the single flat settings record.
type Settings struct {
	Theme             string `json:"theme"` // light, dark or system
	ShowInstallBanner bool   `json:"showInstallBanner"`
	WeeklyGoal        int    `json:"weeklyGoal"`
}

// DefaultCategories are seeded on first run. They are ordinary mutable
// records afterwards — even "other" can be renamed or deleted.
func DefaultCategories() []Category {
	return []Category{
		{ID: "coding", Name: "Coding", Color: "#6366f1", Icon: "💻"},
		{ID: "design", Name: "Design", Color: "#ec4899", Icon: "🎨"},
		{ID: "reading", Name: "Reading", Color: "#14b8a6", Icon: "📚"},
		{ID: "course", Name: "Course", Color: "#f97316", Icon: "🎓"},
		{ID: "project", Name: "Project", Color: "#8b5cf6", Icon: "🚀"},
		{ID: CategoryOther, Name: "Other", Color: "#64748b", Icon: "📝"},
	}
}

// DefaultSettings are seeded on first run.
func DefaultSettings() Settings {
	return Settings{
		Theme:             "system",
		ShowInstallBanner: true,
		WeeklyGoal:        7,
	}
}
