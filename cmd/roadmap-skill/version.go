package main

import (
	"fmt"
	"os"

	"github.com/HendryAvila/roadmap-skill/internal/server"
	"github.com/HendryAvila/roadmap-skill/internal/updater"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		check, _ := cmd.Flags().GetBool("check")
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "roadmap-skill %s\n", server.Version)
		if !check {
			return nil
		}

		result := updater.NewChecker().Check(cmd.Context(), server.Version)
		switch {
		case result.LatestVersion == "":
			fmt.Fprintln(out, "Could not reach the release feed.")
		case result.UpdateAvailable:
			fmt.Fprintf(out, "Update available: v%s (%s)\n", result.LatestVersion, result.ReleaseURL)
		default:
			fmt.Fprintln(out, "Up to date.")
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update to the latest release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stderr := cmd.ErrOrStderr()
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}

		fmt.Fprintln(stderr, "Checking for updates...")
		checker := updater.NewChecker()
		result := checker.Check(cmd.Context(), server.Version)
		if !result.UpdateAvailable {
			fmt.Fprintf(stderr, "Already at the latest version (v%s)\n", result.CurrentVersion)
			return nil
		}

		fmt.Fprintf(stderr, "Downloading v%s...\n", result.LatestVersion)
		installed, err := checker.Update(cmd.Context(), server.Version, exe)
		if err != nil {
			return fmt.Errorf("update failed: %w (download manually from %s)", err, result.ReleaseURL)
		}
		fmt.Fprintf(stderr, "Updated to v%s. Restart roadmap-skill to use it.\n", installed)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "also check for a newer release")
	rootCmd.AddCommand(versionCmd, updateCmd)
}
