package journal

import (
	"encoding/json"
	"fmt"
	"strings"

	"learnlog/internal/kv"
)

// CategoryRepo persists category definitions under KeyCategories.
// Defaults are seeded exactly once: on the first access that finds no
// stored value.
type CategoryRepo struct {
	store kv.Store
}

// NewCategoryRepo creates a CategoryRepo over the given store.
func NewCategoryRepo(store kv.Store) *CategoryRepo {
	return &CategoryRepo{store: store}
}

// SaveCategoryParams holds the input for creating or updating a category.
// With an empty ID a new category is created and its id derived from the
// name; otherwise the matching record is shallow-merged.
type SaveCategoryParams struct {
	ID    string
	Name  string
	Color string
	Icon  string
}

// List returns all categories, seeding the defaults on first run.
func (r *CategoryRepo) List() ([]Category, error) {
	data, ok, err := r.store.Get(KeyCategories)
	if err != nil {
		return nil, fmt.Errorf("journal: load categories: %w", err)
	}
	if !ok {
		defaults := DefaultCategories()
		if err := r.save(defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("journal: parse categories: %w", err)
	}
	return categories, nil
}

// GetByID returns the category with the given id, or ok=false if absent.
func (r *CategoryRepo) GetByID(id string) (Category, bool, error) {
	categories, err := r.List()
	if err != nil {
		return Category{}, false, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, true, nil
		}
	}
	return Category{}, false, nil
}

// Save creates or updates a category and returns its id.
func (r *CategoryRepo) Save(p SaveCategoryParams) (string, error) {
	categories, err := r.List()
	if err != nil {
		return "", err
	}

	if p.ID != "" {
		for i := range categories {
			if categories[i].ID != p.ID {
				continue
			}
			if p.Name != "" {
				categories[i].Name = p.Name
			}
			if p.Color != "" {
				categories[i].Color = p.Color
			}
			if p.Icon != "" {
				categories[i].Icon = p.Icon
			}
			return p.ID, r.save(categories)
		}
		return "", fmt.Errorf("journal: category %q not found", p.ID)
	}

	cat := Category{
		ID:    Slugify(p.Name),
		Name:  p.Name,
		Color: p.Color,
		Icon:  p.Icon,
	}
	if cat.Color == "" {
		cat.Color = "#64748b"
	}
	if cat.Icon == "" {
		cat.Icon = "📝"
	}
	categories = append(categories, cat)
	return cat.ID, r.save(categories)
}

// Delete removes the category with the given id. No special-casing:
// deleting "other" is allowed, and entries referencing a deleted
// category resolve to "other" at read time.
func (r *CategoryRepo) Delete(id string) error {
	categories, err := r.List()
	if err != nil {
		return err
	}
	filtered := categories[:0:0]
	for _, c := range categories {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == len(categories) {
		return nil
	}
	return r.save(filtered)
}

// Replace overwrites the whole collection. Used by dataset restore.
func (r *CategoryRepo) Replace(categories []Category) error {
	if categories == nil {
		categories = []Category{}
	}
	return r.save(categories)
}

func (r *CategoryRepo) save(categories []Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("journal: marshal categories: %w", err)
	}
	if err := r.store.Set(KeyCategories, data); err != nil {
		return fmt.Errorf("journal: save categories: %w", err)
	}
	return nil
}

// Slugify derives a category id from a display name: lower-cased, with
// runs of spaces replaced by a hyphen.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
