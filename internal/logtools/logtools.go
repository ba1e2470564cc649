// Package logtools provides the MCP tool handlers for the daily
// learning log. Each presentation intent is one tool:
//
//   - A struct with dependencies (repositories, import session) injected
//     via constructor
//   - Definition() returns the mcp.Tool schema
//   - Handle() processes the request and returns a result
//
// Handlers never fail the server: errors become tool error results.
package logtools

import (
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request. The second
// result reports whether the key was present at all.
func boolArg(req mcp.CallToolRequest, key string) (bool, bool) {
	v, ok := req.GetArguments()[key].(bool)
	return v, ok
}

// dateArg parses a yyyy-mm-dd argument; the zero time means absent.
func dateArg(req mcp.CallToolRequest, key string) (time.Time, error) {
	s := req.GetString(key, "")
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// tagsArg extracts a string-array argument ("tags": ["go", "testing"]).
func tagsArg(req mcp.CallToolRequest, key string) ([]string, bool) {
	raw, ok := req.GetArguments()[key].([]any)
	if !ok {
		return nil, false
	}
	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			tags = append(tags, s)
		}
	}
	return tags, true
}
