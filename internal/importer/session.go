package importer

import (
	"fmt"
	"strings"

	"learnlog/internal/journal"
)

// Wizard steps, in order. A session can be abandoned at any step before
// StepDone with no persisted side effects.
const (
	StepUpload = iota + 1
	StepMap
	StepPreview
	StepDone
)

// Result holds the outcome of a committed import.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// Session is the transient working state of one import: the decoded
// workbook, the selected sheet, the editable column map and the
// candidate entries awaiting confirmation. Nothing here touches the
// persistent store until Commit.
type Session struct {
	decoder Decoder

	Step       int
	Filename   string
	Workbook   *Workbook
	Sheet      string
	Columns    ColumnMap
	Options    Options
	Candidates []journal.Entry
}

// NewSession starts an import session with the default decoder and
// wizard options. Starting a new session discards any prior one — the
// caller holds at most a single session at a time.
func NewSession() *Session {
	return &Session{
		decoder: NewDecoder(),
		Step:    StepUpload,
		Options: DefaultOptions(),
	}
}

// Upload decodes the file bytes, selects the first sheet, and detects
// its column map. A decode failure leaves the session at the upload
// step with nothing mutated.
func (s *Session) Upload(data []byte, filename string) error {
	wb, err := s.decoder.Decode(data, filename)
	if err != nil {
		return err
	}

	s.Filename = filename
	s.Workbook = wb
	s.Candidates = nil
	if err := s.SelectSheet(wb.SheetNames[0]); err != nil {
		return err
	}
	s.Step = StepMap
	return nil
}

// SelectSheet switches the session to the named sheet and re-detects
// its columns, discarding any manual edits to the previous sheet's map.
func (s *Session) SelectSheet(name string) error {
	if s.Workbook == nil {
		return fmt.Errorf("importer: no file uploaded")
	}
	grid, ok := s.Workbook.Rows(name)
	if !ok {
		return fmt.Errorf("importer: sheet %q not found", name)
	}

	s.Sheet = name
	var headers []string
	if len(grid) > 0 {
		headers = grid[0]
	}
	s.Columns = DetectColumns(headers)
	s.Candidates = nil
	return nil
}

// SetColumnMap replaces the detected map with a manual edit.
func (s *Session) SetColumnMap(cols ColumnMap) {
	s.Columns = cols
	s.Candidates = nil
}

// SetMode configures categorization: "auto" scores keywords, "column"
// trusts the sheet's category column, "manual" stamps every row with
// defaultCategory.
func (s *Session) SetMode(mode, defaultCategory string) error {
	switch mode {
	case "auto":
		s.Options.AutoCategorize = true
		s.Options.DefaultCategory = journal.CategoryOther
	case "column", "manual":
		s.Options.AutoCategorize = false
		s.Options.DefaultCategory = defaultCategory
		if s.Options.DefaultCategory == "" {
			s.Options.DefaultCategory = journal.CategoryOther
		}
	default:
		return fmt.Errorf("importer: unknown categorization mode %q", mode)
	}
	s.Candidates = nil
	return nil
}

// Preview transforms the selected sheet into candidate entries. A sheet
// that produces none fails with ErrNoEntries and the session stays at
// the mapping step.
func (s *Session) Preview() ([]journal.Entry, error) {
	if s.Workbook == nil {
		return nil, fmt.Errorf("importer: no file uploaded")
	}
	grid, _ := s.Workbook.Rows(s.Sheet)

	candidates := Process(grid, s.Columns, s.Options)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w — check the column mapping", ErrNoEntries)
	}
	s.Candidates = candidates
	s.Step = StepPreview
	return candidates, nil
}

// Commit persists the previewed candidates. Once started it runs to
// completion; entries written before any error stay written.
func (s *Session) Commit(repo *journal.EntryRepo) (Result, error) {
	if len(s.Candidates) == 0 {
		return Result{}, fmt.Errorf("%w — nothing previewed to import", ErrNoEntries)
	}
	res, err := Commit(s.Candidates, repo)
	if err != nil {
		return res, err
	}
	s.Step = StepDone
	return res, nil
}

// Commit merges candidates into the repository, skipping any whose
// lower-cased title already exists — among pre-existing entries or
// earlier candidates in this same batch. Matching is exact-title only.
func Commit(candidates []journal.Entry, repo *journal.EntryRepo) (Result, error) {
	existing, err := repo.ListAll()
	if err != nil {
		return Result{}, err
	}
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[strings.ToLower(e.Title)] = true
	}

	res := Result{Total: len(candidates)}
	for _, c := range candidates {
		key := strings.ToLower(c.Title)
		if seen[key] {
			res.Skipped++
			continue
		}
		if _, err := repo.CreateAt(journal.CreateEntryParams{
			Title:    c.Title,
			Content:  c.Content,
			Category: c.Category,
			Tags:     c.Tags,
		}, c.CreatedAt); err != nil {
			return res, err
		}
		seen[key] = true
		res.Imported++
	}
	return res, nil
}
