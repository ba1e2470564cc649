package journal

import (
	"testing"
	"time"

	"learnlog/internal/kv"
)

// newTestStore creates a file-backed kv.Store in a temp directory.
func newTestStore(t *testing.T) kv.Store {
	t.Helper()
	store, err := kv.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// withFixedNow pins the package clock for the duration of a test.
func withFixedNow(t *testing.T, now time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = orig })
}

func strPtr(s string) *string { return &s }

// ─── Create ─────────────────────────────────────────────────────────────────

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	withFixedNow(t, fixed)

	id, err := repo.Create(CreateEntryParams{Title: "Go interfaces"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	entry, ok, err := repo.GetByID(id)
	if err != nil || !ok {
		t.Fatalf("GetByID failed: ok=%t err=%v", ok, err)
	}
	if !entry.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", entry.CreatedAt, fixed)
	}
	if !entry.UpdatedAt.Equal(fixed) {
		t.Errorf("UpdatedAt = %v, want CreatedAt on a fresh entry", entry.UpdatedAt)
	}
}

func TestCreate_DefaultsCategoryAndTags(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	id, err := repo.Create(CreateEntryParams{Title: "No category given"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	entry, _, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if entry.Category != CategoryOther {
		t.Errorf("Category = %q, want %q", entry.Category, CategoryOther)
	}
	if entry.Tags == nil {
		t.Error("Tags should default to an empty slice, not nil")
	}
	if len(entry.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", entry.Tags)
	}
}

func TestCreate_PrependsNewestFirst(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	if _, err := repo.Create(CreateEntryParams{Title: "first"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.Create(CreateEntryParams{Title: "second"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	entries, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListAll returned %d entries, want 2", len(entries))
	}
	if entries[0].Title != "second" {
		t.Errorf("entries[0].Title = %q, want the most recent entry first", entries[0].Title)
	}
}

func TestCreate_IDsAreUnique(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := repo.Create(CreateEntryParams{Title: "entry"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s after %d creates", id, i+1)
		}
		seen[id] = true
	}
}

func TestCreateAt_UsesProvidedTime(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))
	imported := time.Date(2025, 11, 2, 0, 0, 0, 0, time.Local)

	id, err := repo.CreateAt(CreateEntryParams{Title: "from a spreadsheet"}, imported)
	if err != nil {
		t.Fatalf("CreateAt failed: %v", err)
	}

	entry, _, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !entry.CreatedAt.Equal(imported) {
		t.Errorf("CreatedAt = %v, want the provided time %v", entry.CreatedAt, imported)
	}
	if !entry.UpdatedAt.Equal(imported) {
		t.Errorf("UpdatedAt = %v, want the provided time %v", entry.UpdatedAt, imported)
	}
}

// ─── ListAll / GetByID ──────────────────────────────────────────────────────

func TestListAll_EmptyStoreReturnsEmptySlice(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	entries, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if entries == nil {
		t.Error("ListAll should return an empty slice, not nil")
	}
	if len(entries) != 0 {
		t.Errorf("ListAll returned %d entries, want 0", len(entries))
	}
}

func TestGetByID_UnknownIDReturnsNotOK(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	_, ok, err := repo.GetByID("no-such-id")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if ok {
		t.Error("GetByID should report ok=false for an unknown id")
	}
}

// ─── Update ─────────────────────────────────────────────────────────────────

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	id, err := repo.Create(CreateEntryParams{
		Title:    "original title",
		Content:  "original content",
		Category: "coding",
		Tags:     []string{"go"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := repo.Update(id, UpdateEntryParams{Title: strPtr("new title")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !ok {
		t.Fatal("Update should report ok=true for an existing id")
	}

	entry, _, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if entry.Title != "new title" {
		t.Errorf("Title = %q, want %q", entry.Title, "new title")
	}
	if entry.Content != "original content" {
		t.Errorf("Content = %q, should be untouched", entry.Content)
	}
	if entry.Category != "coding" {
		t.Errorf("Category = %q, should be untouched", entry.Category)
	}
	if len(entry.Tags) != 1 || entry.Tags[0] != "go" {
		t.Errorf("Tags = %v, should be untouched", entry.Tags)
	}
}

func TestUpdate_BumpsUpdatedAtNotCreatedAt(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	withFixedNow(t, created)
	id, err := repo.Create(CreateEntryParams{Title: "entry"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	later := created.Add(48 * time.Hour)
	withFixedNow(t, later)
	if _, err := repo.Update(id, UpdateEntryParams{Content: strPtr("more notes")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	entry, _, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !entry.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, must never move (want %v)", entry.CreatedAt, created)
	}
	if !entry.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", entry.UpdatedAt, later)
	}
}

func TestUpdate_UnknownIDIsNoOp(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	if _, err := repo.Create(CreateEntryParams{Title: "keep me"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := repo.Update("no-such-id", UpdateEntryParams{Title: strPtr("ignored")})
	if err != nil {
		t.Fatalf("Update should not error on unknown id: %v", err)
	}
	if ok {
		t.Error("Update should report ok=false for an unknown id")
	}

	entries, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "keep me" {
		t.Error("Update of unknown id must leave the collection untouched")
	}
}

// ─── Delete ─────────────────────────────────────────────────────────────────

func TestDelete_RemovesOnlyTheTarget(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	keepID, err := repo.Create(CreateEntryParams{Title: "keep"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	dropID, err := repo.Create(CreateEntryParams{Title: "drop"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(dropID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	entries, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ListAll returned %d entries, want 1", len(entries))
	}
	if entries[0].ID != keepID {
		t.Errorf("surviving entry = %s, want %s", entries[0].ID, keepID)
	}
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	if _, err := repo.Create(CreateEntryParams{Title: "entry"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Delete("no-such-id"); err != nil {
		t.Fatalf("Delete of unknown id should be a no-op, got: %v", err)
	}

	entries, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("ListAll returned %d entries, want 1", len(entries))
	}
}

func TestDelete_IsIdempotent(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	id, err := repo.Create(CreateEntryParams{Title: "entry"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Delete(id); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	if err := repo.Delete(id); err != nil {
		t.Fatalf("second Delete should still succeed: %v", err)
	}
}

// ─── Replace / persistence ──────────────────────────────────────────────────

func TestReplace_OverwritesCollection(t *testing.T) {
	repo := NewEntryRepo(newTestStore(t))

	if _, err := repo.Create(CreateEntryParams{Title: "old"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	now := time.Now()
	restored := []Entry{{ID: "r1", Title: "restored", Category: "coding", Tags: []string{}, CreatedAt: now, UpdatedAt: now}}
	if err := repo.Replace(restored); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	entries, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "r1" {
		t.Errorf("ListAll = %v, want only the restored entry", entries)
	}
}

func TestEntries_SurviveRepoRecreation(t *testing.T) {
	store := newTestStore(t)

	id, err := NewEntryRepo(store).Create(CreateEntryParams{Title: "durable"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Fresh repo over the same store sees the same data.
	entry, ok, err := NewEntryRepo(store).GetByID(id)
	if err != nil || !ok {
		t.Fatalf("GetByID via new repo failed: ok=%t err=%v", ok, err)
	}
	if entry.Title != "durable" {
		t.Errorf("Title = %q, want %q", entry.Title, "durable")
	}
}
