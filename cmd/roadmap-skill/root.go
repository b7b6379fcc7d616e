package main

import (
	"fmt"

	"github.com/HendryAvila/roadmap-skill/internal/config"
	"github.com/HendryAvila/roadmap-skill/internal/server"
	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "roadmap-skill",
	Short: "Project roadmaps and task boards for AI assistants",
	Long: `Roadmap Skill keeps one JSON document per project and exposes it to
AI coding tools over MCP, to the browser through a local web board and
to the terminal through this CLI.

Add it to your AI tool's MCP config:

  {
    "mcpServers": {
      "roadmap": {
        "command": "roadmap-skill",
        "args": ["serve"]
      }
    }
  }`,
	Version:      server.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default $ROADMAP_DATA_DIR or ~/.roadmap-skill)")
}

// Execute runs the root command.
func Execute() error {
	mtp.WithDescribe(rootCmd, &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"serve": {
				Stdout: &mtp.IODescriptor{
					ContentType: "application/json",
					Description: "MCP JSON-RPC messages over stdio",
				},
				Examples: []mtp.Example{
					{Description: "Start the MCP server", Command: "roadmap-skill serve"},
				},
			},
			"projects": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of projects, most recently updated first",
				},
				Examples: []mtp.Example{
					{Description: "List projects", Command: "roadmap-skill projects"},
				},
			},
			"show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Progress report, tags and open tasks of one project",
				},
				Examples: []mtp.Example{
					{Description: "Show a project", Command: "roadmap-skill show proj_1700000000000_ab12cd3"},
				},
			},
			"export": {
				Stdout: &mtp.IODescriptor{
					ContentType: "application/json",
					Description: "Backup document containing every project",
				},
				Examples: []mtp.Example{
					{Description: "Write a backup file", Command: "roadmap-skill export -o backup.json"},
				},
			},
			"import": {
				Stdin: &mtp.IODescriptor{
					ContentType: "application/json",
					Description: "Backup document when the file argument is -",
				},
				Examples: []mtp.Example{
					{Description: "Restore a backup, replacing existing projects", Command: "roadmap-skill import backup.json --overwrite --yes"},
				},
			},
			"web": {
				Examples: []mtp.Example{
					{Description: "Serve the board on port 8080 and open it", Command: "roadmap-skill web --port 8080 --open"},
				},
			},
		},
	})
	return rootCmd.Execute()
}
