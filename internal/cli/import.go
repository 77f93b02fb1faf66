package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ttml-tools/ttmlkit/internal/elrc"
)

var importCmd = &cobra.Command{
	Use:   "import [elrc-file]",
	Short: "Convert an enhanced-LRC file to TTML",
	Long: `Convert an enhanced-LRC lyric file (word-level <mm:ss.xxx>
timestamps, v1:/v2:/bg: voice tags) to TTML. Word end times are derived
from the following word or line.

The output name is taken from the [ar:] and [ti:] tags
("Artist - Title.ttml") and written next to the input unless -o is set.

Examples:
  ttmlkit import song.lrc
  ttmlkit import song.lrc -o song.ttml`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	input := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(input); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", input)
	}

	meta, lines, err := elrc.ParseFile(input)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("no lyric lines found in %s", input)
	}

	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(input), elrc.OutputName(meta))
	}
	if err := elrc.WriteTTML(meta, lines, outputPath); err != nil {
		return err
	}

	logger.Infow("Imported ELRC file",
		"input", input,
		"output", outputPath,
		"lines", len(lines),
	)

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Generated: %s\n", absOutput)
	return nil
}
