package logtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"learnlog/internal/journal"
)

// ─── AddTool ────────────────────────────────────────────────────────────────

// AddTool handles the log_add MCP tool.
type AddTool struct {
	entries *journal.EntryRepo
}

// NewAddTool creates an AddTool with the given entry repository.
func NewAddTool(entries *journal.EntryRepo) *AddTool {
	return &AddTool{entries: entries}
}

// Definition returns the MCP tool definition for log_add.
func (t *AddTool) Definition() mcp.Tool {
	return mcp.NewTool("log_add",
		mcp.WithDescription(
			"Record something learned today. Creates a journal entry with a title, "+
				"optional free-text content, a category and tags.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short title of what was learned (e.g. 'Go table-driven tests')"),
		),
		mcp.WithString("content",
			mcp.Description("Longer notes about the learning"),
		),
		mcp.WithString("category",
			mcp.Description("Category id: coding, design, reading, course, project, other (default: other)"),
		),
		mcp.WithArray("tags",
			mcp.Description("Free-form tags, order preserved"),
		),
	)
}

// Handle processes the log_add tool call.
func (t *AddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := strings.TrimSpace(req.GetString("title", ""))
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	tags, _ := tagsArg(req, "tags")

	id, err := t.entries.Create(journal.CreateEntryParams{
		Title:    title,
		Content:  req.GetString("content", ""),
		Category: req.GetString("category", ""),
		Tags:     tags,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save entry: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Learning added: %q\nID: %s", title, id)), nil
}

// ─── UpdateTool ─────────────────────────────────────────────────────────────

// UpdateTool handles the log_update MCP tool.
type UpdateTool struct {
	entries *journal.EntryRepo
}

// NewUpdateTool creates an UpdateTool with the given entry repository.
func NewUpdateTool(entries *journal.EntryRepo) *UpdateTool {
	return &UpdateTool{entries: entries}
}

// Definition returns the MCP tool definition for log_update.
func (t *UpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("log_update",
		mcp.WithDescription(
			"Update an existing entry by ID. Only provided fields are changed; "+
				"createdAt never moves.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry ID to update"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("content",
			mcp.Description("New content"),
		),
		mcp.WithString("category",
			mcp.Description("New category id"),
		),
		mcp.WithArray("tags",
			mcp.Description("Replacement tag list"),
		),
	)
}

// Handle processes the log_update tool call.
func (t *UpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	params := journal.UpdateEntryParams{}
	hasUpdates := false

	if v := req.GetString("title", ""); v != "" {
		if strings.TrimSpace(v) == "" {
			return mcp.NewToolResultError("title cannot be blank"), nil
		}
		params.Title = &v
		hasUpdates = true
	}
	if v := req.GetString("content", ""); v != "" {
		params.Content = &v
		hasUpdates = true
	}
	if v := req.GetString("category", ""); v != "" {
		params.Category = &v
		hasUpdates = true
	}
	if tags, ok := tagsArg(req, "tags"); ok {
		params.Tags = &tags
		hasUpdates = true
	}

	if !hasUpdates {
		return mcp.NewToolResultError("at least one field to update is required"), nil
	}

	ok, err := t.entries.Update(id, params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update entry: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("No entry with ID %s — nothing changed.", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Entry %s updated", id)), nil
}

// ─── DeleteTool ─────────────────────────────────────────────────────────────

// DeleteTool handles the log_delete MCP tool.
type DeleteTool struct {
	entries *journal.EntryRepo
}

// NewDeleteTool creates a DeleteTool with the given entry repository.
func NewDeleteTool(entries *journal.EntryRepo) *DeleteTool {
	return &DeleteTool{entries: entries}
}

// Definition returns the MCP tool definition for log_delete.
func (t *DeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("log_delete",
		mcp.WithDescription(
			"Delete an entry by ID. Deleting an unknown ID is a no-op.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry ID to delete"),
		),
	)
}

// Handle processes the log_delete tool call.
func (t *DeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	if err := t.entries.Delete(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete entry: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Entry %s deleted", id)), nil
}

// ─── GetTool ────────────────────────────────────────────────────────────────

// GetTool handles the log_get MCP tool.
type GetTool struct {
	entries    *journal.EntryRepo
	categories *journal.CategoryRepo
}

// NewGetTool creates a GetTool.
func NewGetTool(entries *journal.EntryRepo, categories *journal.CategoryRepo) *GetTool {
	return &GetTool{entries: entries, categories: categories}
}

// Definition returns the MCP tool definition for log_get.
func (t *GetTool) Definition() mcp.Tool {
	return mcp.NewTool("log_get",
		mcp.WithDescription("Show one entry in full by ID."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry ID"),
		),
	)
}

// Handle processes the log_get tool call.
func (t *GetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	entry, ok, err := t.entries.GetByID(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load entry: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("entry %s not found", id)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", entry.Title)
	if entry.Content != "" {
		fmt.Fprintf(&b, "%s\n\n", entry.Content)
	}
	fmt.Fprintf(&b, "- Category: %s\n", t.categoryLabel(entry.Category))
	if len(entry.Tags) > 0 {
		fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(entry.Tags, ", "))
	}
	fmt.Fprintf(&b, "- Created: %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- Updated: %s\n", entry.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- ID: %s\n", entry.ID)

	return mcp.NewToolResultText(b.String()), nil
}

// categoryLabel resolves a category id for display, falling back to
// "other" when the referent is gone.
func (t *GetTool) categoryLabel(id string) string {
	cat, ok, err := t.categories.GetByID(id)
	if err != nil || !ok {
		return journal.CategoryOther
	}
	return fmt.Sprintf("%s %s", cat.Icon, cat.Name)
}
