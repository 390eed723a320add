package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkframe/inkframe/backend-go/internal/document"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a scene between JSON and YAML",
	Long: `Read a scene document and write it back out. The codec of each side is
chosen by file extension, so this converts between JSON and YAML and also
normalizes a document (defaults filled in, id counter raised).

Examples:
  inkframe convert demo.json demo.yaml
  inkframe convert demo.yaml demo.json`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	g, err := document.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := document.WriteFile(args[1], g); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s) -> %s (%s)\n",
			args[0], document.FormatForPath(args[0]), args[1], document.FormatForPath(args[1]))
	}
	return nil
}
