package journal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Dataset is the full serializable dump of the journal.
type Dataset struct {
	Learnings  []Entry    `json:"learnings"`
	Categories []Category `json:"categories"`
	Settings   Settings   `json:"settings"`
	ExportedAt time.Time  `json:"exportedAt"`
}

// Export collects the whole journal into an indented JSON dump.
func Export(entries *EntryRepo, categories *CategoryRepo, settings *SettingsRepo) ([]byte, error) {
	es, err := entries.ListAll()
	if err != nil {
		return nil, err
	}
	cs, err := categories.List()
	if err != nil {
		return nil, err
	}
	s, err := settings.Get()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(Dataset{
		Learnings:  es,
		Categories: cs,
		Settings:   s,
		ExportedAt: nowFunc(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("journal: marshal dataset: %w", err)
	}
	return data, nil
}

// Import restores a dataset dump, replacing each collection that is
// present in the dump and leaving absent ones untouched.
func Import(data []byte, entries *EntryRepo, categories *CategoryRepo, settings *SettingsRepo) error {
	var ds struct {
		Learnings  []Entry    `json:"learnings"`
		Categories []Category `json:"categories"`
		Settings   *Settings  `json:"settings"`
	}
	if err := json.Unmarshal(data, &ds); err != nil {
		return fmt.Errorf("journal: parse dataset: %w", err)
	}

	if ds.Learnings != nil {
		if err := entries.Replace(ds.Learnings); err != nil {
			return err
		}
	}
	if ds.Categories != nil {
		if err := categories.Replace(ds.Categories); err != nil {
			return err
		}
	}
	if ds.Settings != nil {
		if err := settings.Replace(*ds.Settings); err != nil {
			return err
		}
	}
	return nil
}
