package main

import (
	"fmt"
	"time"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/HendryAvila/roadmap-skill/internal/server"
	"github.com/spf13/cobra"
)

// openRepo opens the configured store for a one-shot command.
func openRepo() (*roadmap.Repository, func(), error) {
	app, cleanup, err := server.Open(cfg)
	if err != nil {
		return nil, cleanup, err
	}
	return app.Repo, cleanup, nil
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, cleanup, err := openRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		projects, err := repo.List()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderProjectTable(projects))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <projectId>",
	Short: "Show a project's progress, tags and open tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		repo, cleanup, err := openRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		doc, err := repo.Require(args[0])
		if err != nil {
			return err
		}
		md := projectMarkdown(doc, roadmap.ComputeProgress(doc, time.Now()))
		if raw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		out, err := renderMarkdown(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "print markdown without terminal styling")
	rootCmd.AddCommand(projectsCmd, showCmd)
}
