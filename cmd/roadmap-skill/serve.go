package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HendryAvila/roadmap-skill/internal/server"
	"github.com/HendryAvila/roadmap-skill/internal/updater"
	"github.com/HendryAvila/roadmap-skill/internal/web"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := server.Open(cfg)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		defer cleanup()

		// stdout carries the MCP transport; notices go to stderr.
		go checkForUpdates()

		return mcpserver.ServeStdio(server.New(app))
	},
}

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the web interface until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		open, _ := cmd.Flags().GetBool("open")
		if !cmd.Flags().Changed("port") {
			port = cfg.Web.Port
		}

		app, cleanup, err := server.Open(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		manager := web.NewManager(app.Handler(), cfg.Web.Host, open)
		url, _, err := manager.Start(port)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Web interface running at %s (Ctrl+C to stop)\n", url)

		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err = manager.Stop(shutdownCtx)
		return err
	},
}

func init() {
	webCmd.Flags().Int("port", 0, "port to listen on (default from config, 7860)")
	webCmd.Flags().Bool("open", false, "open the board in the default browser")
	rootCmd.AddCommand(serveCmd, webCmd)
}

// checkForUpdates prints a notice when a newer release exists. Network
// failures are ignored.
func checkForUpdates() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := updater.NewChecker().Check(ctx, server.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  Update available: v%s -> v%s\n"+
				"     Run: roadmap-skill update\n"+
				"     Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}
