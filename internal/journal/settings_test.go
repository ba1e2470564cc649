package journal

import "testing"

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestGet_SeedsDefaultsOnFirstAccess(t *testing.T) {
	repo := NewSettingsRepo(newTestStore(t))

	s, err := repo.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if s.Theme != "system" {
		t.Errorf("Theme = %q, want %q", s.Theme, "system")
	}
	if !s.ShowInstallBanner {
		t.Error("ShowInstallBanner should default to true")
	}
	if s.WeeklyGoal != 7 {
		t.Errorf("WeeklyGoal = %d, want 7", s.WeeklyGoal)
	}
}

func TestUpdate_MergesOnlyProvidedSettings(t *testing.T) {
	repo := NewSettingsRepo(newTestStore(t))

	s, err := repo.Update(SettingsPatch{Theme: strPtr("dark")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if s.Theme != "dark" {
		t.Errorf("Theme = %q, want %q", s.Theme, "dark")
	}
	if s.WeeklyGoal != 7 {
		t.Errorf("WeeklyGoal = %d, should be untouched", s.WeeklyGoal)
	}
	if !s.ShowInstallBanner {
		t.Error("ShowInstallBanner should be untouched")
	}
}

func TestUpdate_PersistsAcrossReads(t *testing.T) {
	store := newTestStore(t)

	if _, err := NewSettingsRepo(store).Update(SettingsPatch{
		ShowInstallBanner: boolPtr(false),
		WeeklyGoal:        intPtr(10),
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	s, err := NewSettingsRepo(store).Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if s.ShowInstallBanner {
		t.Error("ShowInstallBanner = true, want false after update")
	}
	if s.WeeklyGoal != 10 {
		t.Errorf("WeeklyGoal = %d, want 10", s.WeeklyGoal)
	}
}

func TestReplace_OverwritesSettings(t *testing.T) {
	repo := NewSettingsRepo(newTestStore(t))

	if err := repo.Replace(Settings{Theme: "light", ShowInstallBanner: false, WeeklyGoal: 3}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	s, err := repo.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if s.Theme != "light" || s.ShowInstallBanner || s.WeeklyGoal != 3 {
		t.Errorf("Get = %+v, want the replaced settings", s)
	}
}
