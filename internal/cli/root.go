package cli

import (
	"github.com/spf13/cobra"

	"github.com/ttml-tools/ttmlkit/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ttmlkit",
	Short: "Toolkit for TTML lyric files",
	Long: `Ttmlkit converts TTML lyric files to JSON and annotates them with
romanized (Latin-script) readings for non-Latin-script languages.

It also imports enhanced-LRC lyrics, shifts timing, and formats TTML
canonically.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
