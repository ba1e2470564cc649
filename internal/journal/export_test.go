package journal

import (
	"encoding/json"
	"testing"
	"time"
)

func testRepos(t *testing.T) (*EntryRepo, *CategoryRepo, *SettingsRepo) {
	t.Helper()
	store := newTestStore(t)
	return NewEntryRepo(store), NewCategoryRepo(store), NewSettingsRepo(store)
}

func TestExport_ProducesTheFullDataset(t *testing.T) {
	entries, categories, settings := testRepos(t)
	withFixedNow(t, time.Date(2026, 3, 11, 12, 0, 0, 0, time.Local))

	if _, err := entries.Create(CreateEntryParams{Title: "exported entry", Tags: []string{"go"}}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	data, err := Export(entries, categories, settings)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(ds.Learnings) != 1 || ds.Learnings[0].Title != "exported entry" {
		t.Errorf("Learnings = %v, want the one created entry", ds.Learnings)
	}
	if len(ds.Categories) != 6 {
		t.Errorf("Categories = %d, want the 6 seeded defaults", len(ds.Categories))
	}
	if ds.Settings.WeeklyGoal != 7 {
		t.Errorf("Settings.WeeklyGoal = %d, want the default 7", ds.Settings.WeeklyGoal)
	}
	if ds.ExportedAt.IsZero() {
		t.Error("ExportedAt should be stamped")
	}
}

func TestExport_UsesBrowserFieldNames(t *testing.T) {
	entries, categories, settings := testRepos(t)

	if _, err := entries.Create(CreateEntryParams{Title: "entry"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	data, err := Export(entries, categories, settings)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// The dump must round-trip with the original tracker's export
	// format: "learnings", camelCase timestamps.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"learnings", "categories", "settings", "exportedAt"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("export is missing top-level key %q", key)
		}
	}

	var learnings []map[string]json.RawMessage
	if err := json.Unmarshal(raw["learnings"], &learnings); err != nil {
		t.Fatalf("Unmarshal learnings failed: %v", err)
	}
	for _, key := range []string{"id", "title", "createdAt", "updatedAt"} {
		if _, ok := learnings[0][key]; !ok {
			t.Errorf("entry is missing field %q", key)
		}
	}
}

func TestImport_RoundTripsAnExport(t *testing.T) {
	entries, categories, settings := testRepos(t)

	if _, err := entries.Create(CreateEntryParams{Title: "original", Category: "coding"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := settings.Update(SettingsPatch{WeeklyGoal: intPtr(14)}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	data, err := Export(entries, categories, settings)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// Restore into a fresh journal.
	entries2, categories2, settings2 := testRepos(t)
	if err := Import(data, entries2, categories2, settings2); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	got, err := entries2.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "original" {
		t.Errorf("restored entries = %v, want the exported one", got)
	}
	s, err := settings2.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if s.WeeklyGoal != 14 {
		t.Errorf("restored WeeklyGoal = %d, want 14", s.WeeklyGoal)
	}
}

func TestImport_ReplacesOnlyCollectionsPresentInTheDump(t *testing.T) {
	entries, categories, settings := testRepos(t)

	if _, err := entries.Create(CreateEntryParams{Title: "survivor"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A dump carrying only settings leaves entries alone.
	dump := []byte(`{"settings":{"theme":"dark","showInstallBanner":false,"weeklyGoal":3}}`)
	if err := Import(dump, entries, categories, settings); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	got, err := entries.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "survivor" {
		t.Error("a partial dump must not clear collections it does not carry")
	}
	s, err := settings.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if s.Theme != "dark" || s.WeeklyGoal != 3 {
		t.Errorf("settings = %+v, want the imported values", s)
	}
}

func TestImport_RejectsInvalidJSON(t *testing.T) {
	entries, categories, settings := testRepos(t)

	if err := Import([]byte("not json {{{"), entries, categories, settings); err == nil {
		t.Fatal("Import should fail on invalid JSON")
	}
}
