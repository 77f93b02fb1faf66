package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ttml-tools/ttmlkit/internal/ttml"
)

var offsetCmd = &cobra.Command{
	Use:   "offset [ttml-file] [offset]",
	Short: "Shift all timing in a TTML file",
	Long: `Shift every begin and end time in a TTML file by a fixed amount
and recompute the body duration. The offset is read as seconds, or as
milliseconds with an "ms" suffix. Times never go below zero.

By default the input file is rewritten in place.

Examples:
  ttmlkit offset song.ttml 100ms
  ttmlkit offset song.ttml -- -0.25
  ttmlkit offset song.ttml 1.5 -o shifted.ttml`,
	Args: cobra.ExactArgs(2),
	RunE: runOffset,
}

func init() {
	rootCmd.AddCommand(offsetCmd)
	// keep "-50ms" after the file argument from being read as a flag
	offsetCmd.Flags().SetInterspersed(false)
}

func runOffset(cmd *cobra.Command, args []string) error {
	input := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(input); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", input)
	}

	delta, err := ttml.ParseOffset(args[1])
	if err != nil {
		return err
	}

	doc, err := ttml.ParseFile(input)
	if err != nil {
		return err
	}
	if err := doc.Offset(delta); err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = input
	}
	if err := doc.WriteFile(outputPath); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Shifted by %gs: %s\n", delta, absOutput)
	return nil
}
