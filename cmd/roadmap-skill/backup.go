package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup of every project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		repo, cleanup, err := openRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		backup, err := repo.Export()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(backup, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding backup: %w", err)
		}
		data = append(data, '\n')

		if output == "" || output == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("writing backup: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d project(s) to %s\n", len(backup.Projects), output)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore projects from a backup file (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		yes, _ := cmd.Flags().GetBool("yes")

		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		backup, err := roadmap.ParseBackup(data)
		if err != nil {
			return err
		}

		if !yes {
			msg := fmt.Sprintf("Import %d project(s)?", len(backup.Projects))
			if overwrite {
				msg = fmt.Sprintf("Import %d project(s), replacing existing ones with the same ID?", len(backup.Projects))
			}
			var confirm bool
			if err := huh.NewConfirm().Title(msg).Value(&confirm).Run(); err != nil || !confirm {
				return fmt.Errorf("import cancelled")
			}
		}

		repo, cleanup, err := openRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := repo.Import(backup, overwrite)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d, skipped %d\n", result.Imported, result.Skipped)
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  %s: %s\n", e.ProjectID, e.Message)
		}
		return nil
	},
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	return data, nil
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "file to write (default stdout)")
	importCmd.Flags().Bool("overwrite", false, "replace projects that already exist")
	importCmd.Flags().BoolP("yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(exportCmd, importCmd)
}
