package logtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"learnlog/internal/journal"
)

// ─── CategoriesTool ─────────────────────────────────────────────────────────

// CategoriesTool handles the log_categories MCP tool.
type CategoriesTool struct {
	categories *journal.CategoryRepo
}

// NewCategoriesTool creates a CategoriesTool.
func NewCategoriesTool(categories *journal.CategoryRepo) *CategoriesTool {
	return &CategoriesTool{categories: categories}
}

// Definition returns the MCP tool definition for log_categories.
func (t *CategoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("log_categories",
		mcp.WithDescription("List all categories with their ids, colors and icons."),
	)
}

// Handle processes the log_categories tool call.
func (t *CategoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := t.categories.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load categories: %v", err)), nil
	}

	var b strings.Builder
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s %s (id: %s, color: %s)\n", c.Icon, c.Name, c.ID, c.Color)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ─── CategorySaveTool ───────────────────────────────────────────────────────

// CategorySaveTool handles the log_category_save MCP tool.
type CategorySaveTool struct {
	categories *journal.CategoryRepo
}

// NewCategorySaveTool creates a CategorySaveTool.
func NewCategorySaveTool(categories *journal.CategoryRepo) *CategorySaveTool {
	return &CategorySaveTool{categories: categories}
}

// Definition returns the MCP tool definition for log_category_save.
func (t *CategorySaveTool) Definition() mcp.Tool {
	return mcp.NewTool("log_category_save",
		mcp.WithDescription(
			"Create a category (omit id; the id is derived from the name) or update "+
				"an existing one (pass its id; only provided fields change).",
		),
		mcp.WithString("id",
			mcp.Description("Existing category id to update"),
		),
		mcp.WithString("name",
			mcp.Description("Display name (required when creating)"),
		),
		mcp.WithString("color",
			mcp.Description("Display color, e.g. #6366f1"),
		),
		mcp.WithString("icon",
			mcp.Description("Display icon, e.g. an emoji"),
		),
	)
}

// Handle processes the log_category_save tool call.
func (t *CategorySaveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	name := strings.TrimSpace(req.GetString("name", ""))
	if id == "" && name == "" {
		return mcp.NewToolResultError("'name' is required when creating a category"), nil
	}

	savedID, err := t.categories.Save(journal.SaveCategoryParams{
		ID:    id,
		Name:  name,
		Color: req.GetString("color", ""),
		Icon:  req.GetString("icon", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save category: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Category saved (id: %s)", savedID)), nil
}

// ─── CategoryDeleteTool ─────────────────────────────────────────────────────

// CategoryDeleteTool handles the log_category_delete MCP tool.
type CategoryDeleteTool struct {
	categories *journal.CategoryRepo
}

// NewCategoryDeleteTool creates a CategoryDeleteTool.
func NewCategoryDeleteTool(categories *journal.CategoryRepo) *CategoryDeleteTool {
	return &CategoryDeleteTool{categories: categories}
}

// Definition returns the MCP tool definition for log_category_delete.
func (t *CategoryDeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("log_category_delete",
		mcp.WithDescription(
			"Delete a category by id. Entries referencing it fall back to 'other' "+
				"for display and aggregation.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Category id to delete"),
		),
	)
}

// Handle processes the log_category_delete tool call.
func (t *CategoryDeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	if err := t.categories.Delete(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete category: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Category %s deleted", id)), nil
}
