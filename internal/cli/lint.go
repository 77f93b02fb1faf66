package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ttml-tools/ttmlkit/internal/lint"
)

var lintCmd = &cobra.Command{
	Use:   "lint [ttml-file]",
	Short: "Check or fix TTML formatting",
	Long: `Check a TTML file against the canonical format: a fixed attribute
order, two-space indentation, and spans kept inline so no whitespace
(and therefore no phantom word break) is introduced between them.

Without flags the formatting status is printed. --check exits non-zero
when the file is unformatted; --fix rewrites it in place.

Examples:
  ttmlkit lint song.ttml
  ttmlkit lint song.ttml --check
  ttmlkit lint song.ttml --fix`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().Bool("fix", false, "Rewrite the file in canonical form")
	lintCmd.Flags().Bool("check", false, "Exit non-zero if the file is unformatted")
}

func runLint(cmd *cobra.Command, args []string) error {
	input := args[0]
	fix, _ := cmd.Flags().GetBool("fix")
	check, _ := cmd.Flags().GetBool("check")

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if fix {
		formatted, err := lint.Format(data)
		if err != nil {
			return err
		}
		if string(formatted) == string(data) {
			fmt.Printf("Already formatted: %s\n", input)
			return nil
		}
		if err := os.WriteFile(input, formatted, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Printf("Fixed: %s\n", input)
		return nil
	}

	ok, line, err := lint.Check(data)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("Formatted: %s\n", input)
		return nil
	}
	if check {
		return fmt.Errorf("%s is not formatted (first difference at line %d)", input, line)
	}
	fmt.Printf("Not formatted: %s (first difference at line %d, run with --fix)\n", input, line)
	return nil
}
