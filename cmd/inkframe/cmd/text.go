package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkframe/inkframe/backend-go/internal/document"
	"github.com/inkframe/inkframe/backend-go/internal/engine"
)

var (
	textScene  string
	textOutput string
	textSize   float64
	textX      float64
	textY      float64
	textFill   string
)

var textCmd = &cobra.Command{
	Use:   "text <string>",
	Short: "Outline text as an editable path",
	Long: `Convert a string into a closed path using the built-in Go Regular font and
add it to a scene. The baseline starts at (--x, --y).

Examples:
  inkframe text "Hello" --size 72 --x 100 --y 200 -o hello.json
  inkframe text "Title" --scene demo.json -o demo.json --fill "#ffcc00"`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().StringVar(&textScene, "scene", "", "scene file to add the text to (default empty scene)")
	textCmd.Flags().StringVarP(&textOutput, "output", "o", "", "output file (default stdout, JSON)")
	textCmd.Flags().Float64Var(&textSize, "size", 48, "font size in pixels per em")
	textCmd.Flags().Float64Var(&textX, "x", 0, "baseline start x")
	textCmd.Flags().Float64Var(&textY, "y", 0, "baseline start y")
	textCmd.Flags().StringVar(&textFill, "fill", "", "fill color (default editor style)")
}

func runText(cmd *cobra.Command, args []string) error {
	e := engine.NewEditor()
	if textScene != "" {
		g, err := document.ReadFile(textScene)
		if err != nil {
			return err
		}
		e.ReplaceScene(g)
	}

	id, err := e.AddText(args[0], textX, textY, textSize)
	if err != nil {
		return fmt.Errorf("outline %q: %w", args[0], err)
	}
	if textFill != "" {
		e.Select(id)
		style, _ := e.SelectedStyle()
		e.SetStyle(textFill, style.Stroke, style.StrokeWidth)
	}

	if textOutput != "" {
		if err := document.WriteFile(textOutput, e.Scene()); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "added %s to %s\n", id, textOutput)
		}
		return nil
	}
	data, err := document.ToJSON(e.Scene())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
