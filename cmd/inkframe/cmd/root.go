package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "inkframe",
	Short: "Offline tools for inkframe scene documents",
	Long: `Inspect, convert and render inkframe scene documents without a server.
Documents are JSON, or YAML when the file ends in .yaml or .yml.

Examples:
  inkframe sample -o demo.json                 # Write the demo scene
  inkframe export demo.json -o demo.svg        # Render to SVG
  inkframe export demo.json -o demo.png -f png  # Rasterize
  inkframe export demo.yaml -o demo.svg --watch
  inkframe convert demo.json demo.yaml         # JSON to YAML
  inkframe info demo.json                      # List objects and bounds
  inkframe hit demo.json 640 360               # Topmost object at a point
  inkframe text "Ink" --scene demo.json -o demo.json`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
