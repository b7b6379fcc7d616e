// Roadmap Skill: project roadmaps and task boards for AI assistants.
//
// Usage:
//
//	roadmap-skill serve     # Start the MCP server (stdio transport)
//	roadmap-skill web       # Serve the web interface in the foreground
//	roadmap-skill projects  # List projects
//	roadmap-skill update    # Update to the latest version
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
