// Package tools implements the MCP tool handlers for roadmap-skill.
//
// Each tool handler follows the same pattern:
// - A struct with its dependencies injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a JSON result
//
// Every result body is {"success": true, "data": ...} or
// {"success": false, "error": {"code": ..., "message": ...}}; failures are
// also flagged as tool errors so hosts can tell them apart.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/mark3labs/mcp-go/mcp"
)

type envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *roadmap.Error `json:"error,omitempty"`
}

// success wraps data in a success envelope.
func success(data any) (*mcp.CallToolResult, error) {
	body, err := json.MarshalIndent(envelope{Success: true, Data: data}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return mcp.NewToolResultText(string(body)), nil
}

// failure converts err into an error envelope. Errors that did not come
// from the domain layer are reported as INTERNAL_ERROR.
func failure(err error) (*mcp.CallToolResult, error) {
	body, merr := json.MarshalIndent(envelope{Error: roadmap.AsError(err)}, "", "  ")
	if merr != nil {
		return nil, fmt.Errorf("marshaling error result: %w", merr)
	}
	return mcp.NewToolResultError(string(body)), nil
}
