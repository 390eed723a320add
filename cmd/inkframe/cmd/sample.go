package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkframe/inkframe/backend-go/internal/document"
)

var sampleOutput string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the demo scene",
	Long: `Write the demo scene: a rectangle, an ellipse, a triangle, a heart and a
rotated group of two shapes.

Examples:
  inkframe sample                  # JSON to stdout
  inkframe sample -o demo.yaml`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "", "output file (default stdout, JSON)")
}

func runSample(cmd *cobra.Command, args []string) error {
	g := document.NewSampleScene()
	if sampleOutput != "" {
		return document.WriteFile(sampleOutput, g)
	}
	data, err := document.ToJSON(g)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
