package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"learnlog/internal/kv"
)

// nowFunc is a package-level var to allow test injection of the clock.
var nowFunc = time.Now

// EntryRepo persists learning entries under KeyEntries.
//
// The collection is stored newest-first: Create prepends. Every mutation
// rewrites the whole collection — there are no partial writes.
type EntryRepo struct {
	store kv.Store
}

// NewEntryRepo creates an EntryRepo over the given store.
func NewEntryRepo(store kv.Store) *EntryRepo {
	return &EntryRepo{store: store}
}

// CreateEntryParams holds the input for a new entry. Title must be
// non-empty; the caller validates at the boundary, the repository trusts it.
type CreateEntryParams struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

// UpdateEntryParams holds partial update fields. Nil fields are left alone.
type UpdateEntryParams struct {
	Title    *string
	Content  *string
	Category *string
	Tags     *[]string
}

// ListAll returns all entries in store order (newest first).
func (r *EntryRepo) ListAll() ([]Entry, error) {
	data, ok, err := r.store.Get(KeyEntries)
	if err != nil {
		return nil, fmt.Errorf("journal: load entries: %w", err)
	}
	if !ok {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("journal: parse entries: %w", err)
	}
	return entries, nil
}

// GetByID returns the entry with the given id, or ok=false if absent.
func (r *EntryRepo) GetByID(id string) (Entry, bool, error) {
	entries, err := r.ListAll()
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

// Create assigns a fresh id, stamps both timestamps with the current
// time, fills category/tags defaults and prepends the entry.
func (r *EntryRepo) Create(p CreateEntryParams) (string, error) {
	now := nowFunc()
	return r.createAt(p, now)
}

// CreateAt is the import path: the caller supplies the creation time,
// which becomes both createdAt and updatedAt.
func (r *EntryRepo) CreateAt(p CreateEntryParams, createdAt time.Time) (string, error) {
	return r.createAt(p, createdAt)
}

func (r *EntryRepo) createAt(p CreateEntryParams, createdAt time.Time) (string, error) {
	entries, err := r.ListAll()
	if err != nil {
		return "", err
	}

	category := p.Category
	if category == "" {
		category = CategoryOther
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	entry := Entry{
		ID:        uuid.New().String(),
		Title:     p.Title,
		Content:   p.Content,
		Category:  category,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	entries = append([]Entry{entry}, entries...)
	if err := r.save(entries); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// Update shallow-merges the given fields into the entry and bumps
// updatedAt. Returns ok=false without touching the store when id is
// unknown — a benign no-op, not an error.
func (r *EntryRepo) Update(id string, p UpdateEntryParams) (bool, error) {
	entries, err := r.ListAll()
	if err != nil {
		return false, err
	}

	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		if p.Title != nil {
			entries[i].Title = *p.Title
		}
		if p.Content != nil {
			entries[i].Content = *p.Content
		}
		if p.Category != nil {
			entries[i].Category = *p.Category
		}
		if p.Tags != nil {
			entries[i].Tags = *p.Tags
		}
		entries[i].UpdatedAt = nowFunc()
		if err := r.save(entries); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Delete removes the entry with the given id. Deleting an unknown id is
// a no-op.
func (r *EntryRepo) Delete(id string) error {
	entries, err := r.ListAll()
	if err != nil {
		return err
	}

	filtered := entries[:0:0]
	for _, e := range entries {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == len(entries) {
		return nil
	}
	return r.save(filtered)
}

// Replace overwrites the whole collection. Used by dataset restore.
func (r *EntryRepo) Replace(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	return r.save(entries)
}

func (r *EntryRepo) save(entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("journal: marshal entries: %w", err)
	}
	if err := r.store.Set(KeyEntries, data); err != nil {
		return fmt.Errorf("journal: save entries: %w", err)
	}
	return nil
}
