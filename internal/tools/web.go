package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// WebController starts and stops the web interface.
type WebController interface {
	Start(port int) (url string, alreadyRunning bool, err error)
	Stop(ctx context.Context) (stopped bool, err error)
}

// OpenWebInterfaceTool handles the open_web_interface MCP tool.
type OpenWebInterfaceTool struct {
	web         WebController
	defaultPort int
}

// NewOpenWebInterfaceTool creates an OpenWebInterfaceTool.
func NewOpenWebInterfaceTool(web WebController, defaultPort int) *OpenWebInterfaceTool {
	return &OpenWebInterfaceTool{web: web, defaultPort: defaultPort}
}

// Definition returns the MCP tool definition for open_web_interface.
func (t *OpenWebInterfaceTool) Definition() mcp.Tool {
	return mcp.NewTool("open_web_interface",
		mcp.WithDescription("Start the local web interface for browsing and editing projects, and open it in a browser."),
		mcp.WithNumber("port", mcp.Description("Port to listen on (default from configuration)")),
	)
}

// Handle processes the open_web_interface tool call.
func (t *OpenWebInterfaceTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	port := intArg(req, "port", t.defaultPort)
	url, already, err := t.web.Start(port)
	if err != nil {
		return failure(err)
	}
	msg := "Web interface started"
	if already {
		msg = "Web interface is already running"
	}
	return success(map[string]any{
		"url":            url,
		"alreadyRunning": already,
		"message":        msg,
	})
}

// CloseWebInterfaceTool handles the close_web_interface MCP tool.
type CloseWebInterfaceTool struct {
	web WebController
}

// NewCloseWebInterfaceTool creates a CloseWebInterfaceTool.
func NewCloseWebInterfaceTool(web WebController) *CloseWebInterfaceTool {
	return &CloseWebInterfaceTool{web: web}
}

// Definition returns the MCP tool definition for close_web_interface.
func (t *CloseWebInterfaceTool) Definition() mcp.Tool {
	return mcp.NewTool("close_web_interface",
		mcp.WithDescription("Stop the local web interface if it is running."),
	)
}

// Handle processes the close_web_interface tool call.
func (t *CloseWebInterfaceTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stopped, err := t.web.Stop(ctx)
	if err != nil {
		return failure(err)
	}
	msg := "Web interface stopped"
	if !stopped {
		msg = "Web interface was not running"
	}
	return success(map[string]any{"stopped": stopped, "message": msg})
}
