// Package server wires the journal components and creates the MCP
// server instance.
//
// This is the composition root: it opens the store, builds the
// repositories and injects them into the tool handlers. No business
// logic lives here — only wiring.
package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"learnlog/internal/journal"
	"learnlog/internal/kv"
	"learnlog/internal/logtools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// DefaultDataDir returns the default location of the journal database.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".learnlog")
}

// New creates and configures the MCP server with all tools registered.
//
// The returned cleanup function closes the store and must be called on
// shutdown (typically via defer). The store is load-bearing for every
// tool, so a failure to open it is fatal rather than a degraded mode.
func New(dataDir string) (*server.MCPServer, func(), error) {
	store, err := kv.NewSQLiteStore(dataDir)
	if err != nil {
		return nil, noop, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() { _ = store.Close() }

	s := server.NewMCPServer(
		"learnlog",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	registerTools(s, store)
	return s, cleanup, nil
}

func noop() {}

func registerTools(s *server.MCPServer, store kv.Store) {
	entries := journal.NewEntryRepo(store)
	categories := journal.NewCategoryRepo(store)
	settings := journal.NewSettingsRepo(store)

	// --- Journal tools ---

	addTool := logtools.NewAddTool(entries)
	s.AddTool(addTool.Definition(), addTool.Handle)

	updateTool := logtools.NewUpdateTool(entries)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	deleteTool := logtools.NewDeleteTool(entries)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	getTool := logtools.NewGetTool(entries, categories)
	s.AddTool(getTool.Definition(), getTool.Handle)

	listTool := logtools.NewListTool(entries, categories)
	s.AddTool(listTool.Definition(), listTool.Handle)

	statsTool := logtools.NewStatsTool(entries, categories, settings)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	// --- Category and settings tools ---

	categoriesTool := logtools.NewCategoriesTool(categories)
	s.AddTool(categoriesTool.Definition(), categoriesTool.Handle)

	categorySaveTool := logtools.NewCategorySaveTool(categories)
	s.AddTool(categorySaveTool.Definition(), categorySaveTool.Handle)

	categoryDeleteTool := logtools.NewCategoryDeleteTool(categories)
	s.AddTool(categoryDeleteTool.Definition(), categoryDeleteTool.Handle)

	settingsTool := logtools.NewSettingsTool(settings)
	s.AddTool(settingsTool.Definition(), settingsTool.Handle)

	settingsUpdateTool := logtools.NewSettingsUpdateTool(settings)
	s.AddTool(settingsUpdateTool.Definition(), settingsUpdateTool.Handle)

	// --- Dataset tools ---

	exportTool := logtools.NewExportTool(entries, categories, settings)
	s.AddTool(exportTool.Definition(), exportTool.Handle)

	restoreTool := logtools.NewRestoreTool(entries, categories, settings)
	s.AddTool(restoreTool.Definition(), restoreTool.Handle)

	// --- Spreadsheet import wizard ---
	//
	// The wizard's working state is a single in-flight session held by
	// the holder; nothing reaches the store before import_commit.

	holder := logtools.NewSessionHolder()

	importFileTool := logtools.NewImportFileTool(holder)
	s.AddTool(importFileTool.Definition(), importFileTool.Handle)

	importConfigureTool := logtools.NewImportConfigureTool(holder, categories)
	s.AddTool(importConfigureTool.Definition(), importConfigureTool.Handle)

	importPreviewTool := logtools.NewImportPreviewTool(holder, entries)
	s.AddTool(importPreviewTool.Definition(), importPreviewTool.Handle)

	importCommitTool := logtools.NewImportCommitTool(holder, entries)
	s.AddTool(importCommitTool.Definition(), importCommitTool.Handle)
}

// serverInstructions returns the system instructions that tell the AI
// client how to drive the journal.
func serverInstructions() string {
	return `You have access to learnlog, a single-user daily learning journal.

Record what the user learned with log_add (title required; category and
tags optional). Browse and search with log_list — query, category and
date filters combine with AND. Show progress with log_stats: day
streak, today/this-week/total counts, the last 7 days and the
per-category breakdown.

Categories and settings have their own tools (log_categories,
log_category_save, log_category_delete, log_settings,
log_settings_update). log_export and log_restore dump and restore the
whole journal as JSON.

To bulk-import from a spreadsheet, walk the wizard in order:
import_file → import_configure (optional) → import_preview →
import_commit. The wizard holds one session at a time and writes
nothing until commit; duplicate titles are skipped automatically.`
}
