// Package cli implements the hbstar command-line interface (§4.15, C18):
// `pack` runs one annealing job to completion, `serve` exposes the C16
// HTTP API, `watch` runs a job with the C17 live TUI, and `cache` manages
// the checkpoint cache.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/floorkit/hbstar/pkg/buildinfo"
)

const (
	// appName is the application name used for directories and display.
	appName = "hbstar"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "hbstar",
		Short:        "hbstar packs analog-placement modules with an HB*-tree annealer",
		Long:         `hbstar places analog-layout modules (with optional symmetry constraints) into a compact, legal, and symmetric floorplan using simulated annealing over an HB*-tree.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.packCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
