package journal

import (
	"encoding/json"
	"fmt"

	"learnlog/internal/kv"
)

// SettingsRepo persists the settings record under KeySettings.
// The record is seeded with defaults on first access, merge-updated
// afterwards, never deleted.
type SettingsRepo struct {
	store kv.Store
}

// NewSettingsRepo creates a SettingsRepo over the given store.
func NewSettingsRepo(store kv.Store) *SettingsRepo {
	return &SettingsRepo{store: store}
}

// SettingsPatch holds a shallow settings update. Nil fields are left alone.
type SettingsPatch struct {
	Theme             *string
	ShowInstallBanner *bool
	WeeklyGoal        *int
}

// Get returns the current settings, seeding defaults on first run.
func (r *SettingsRepo) Get() (Settings, error) {
	data, ok, err := r.store.Get(KeySettings)
	if err != nil {
		return Settings{}, fmt.Errorf("journal: load settings: %w", err)
	}
	if !ok {
		defaults := DefaultSettings()
		if err := r.save(defaults); err != nil {
			return Settings{}, err
		}
		return defaults, nil
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("journal: parse settings: %w", err)
	}
	return s, nil
}

// Update merges the patch into the stored settings and returns the result.
func (r *SettingsRepo) Update(p SettingsPatch) (Settings, error) {
	s, err := r.Get()
	if err != nil {
		return Settings{}, err
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.ShowInstallBanner != nil {
		s.ShowInstallBanner = *p.ShowInstallBanner
	}
	if p.WeeklyGoal != nil {
		s.WeeklyGoal = *p.WeeklyGoal
	}
	if err := r.save(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Replace overwrites the stored settings. Used by dataset restore.
func (r *SettingsRepo) Replace(s Settings) error {
	return r.save(s)
}

func (r *SettingsRepo) save(s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("journal: marshal settings: %w", err)
	}
	if err := r.store.Set(KeySettings, data); err != nil {
		return fmt.Errorf("journal: save settings: %w", err)
	}
	return nil
}
