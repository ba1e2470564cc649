package logtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"learnlog/internal/journal"
)

// ─── SettingsTool ───────────────────────────────────────────────────────────

// SettingsTool handles the log_settings MCP tool.
type SettingsTool struct {
	settings *journal.SettingsRepo
}

// NewSettingsTool creates a SettingsTool.
func NewSettingsTool(settings *journal.SettingsRepo) *SettingsTool {
	return &SettingsTool{settings: settings}
}

// Definition returns the MCP tool definition for log_settings.
func (t *SettingsTool) Definition() mcp.Tool {
	return mcp.NewTool("log_settings",
		mcp.WithDescription("Show the current settings."),
	)
}

// Handle processes the log_settings tool call.
func (t *SettingsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := t.settings.Get()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load settings: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"- theme: %s\n- showInstallBanner: %t\n- weeklyGoal: %d\n",
		s.Theme, s.ShowInstallBanner, s.WeeklyGoal,
	)), nil
}

// ─── SettingsUpdateTool ─────────────────────────────────────────────────────

// SettingsUpdateTool handles the log_settings_update MCP tool.
type SettingsUpdateTool struct {
	settings *journal.SettingsRepo
}

// NewSettingsUpdateTool creates a SettingsUpdateTool.
func NewSettingsUpdateTool(settings *journal.SettingsRepo) *SettingsUpdateTool {
	return &SettingsUpdateTool{settings: settings}
}

// Definition returns the MCP tool definition for log_settings_update.
func (t *SettingsUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("log_settings_update",
		mcp.WithDescription("Merge-update settings. Only provided fields change."),
		mcp.WithString("theme",
			mcp.Description("light, dark or system"),
		),
		mcp.WithBoolean("show_install_banner",
			mcp.Description("Whether the install banner is shown"),
		),
		mcp.WithNumber("weekly_goal",
			mcp.Description("Entries-per-week target, a positive integer"),
		),
	)
}

// Handle processes the log_settings_update tool call.
func (t *SettingsUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	patch := journal.SettingsPatch{}
	hasUpdates := false

	if v := req.GetString("theme", ""); v != "" {
		if v != "light" && v != "dark" && v != "system" {
			return mcp.NewToolResultError("'theme' must be light, dark or system"), nil
		}
		patch.Theme = &v
		hasUpdates = true
	}
	if v, ok := boolArg(req, "show_install_banner"); ok {
		patch.ShowInstallBanner = &v
		hasUpdates = true
	}
	if v := intArg(req, "weekly_goal", 0); v != 0 {
		if v < 1 {
			return mcp.NewToolResultError("'weekly_goal' must be a positive integer"), nil
		}
		patch.WeeklyGoal = &v
		hasUpdates = true
	}

	if !hasUpdates {
		return mcp.NewToolResultError("at least one setting to update is required"), nil
	}

	s, err := t.settings.Update(patch)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update settings: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Settings updated:\n- theme: %s\n- showInstallBanner: %t\n- weeklyGoal: %d\n",
		s.Theme, s.ShowInstallBanner, s.WeeklyGoal,
	)), nil
}
