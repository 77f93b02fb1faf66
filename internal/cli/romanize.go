package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ttml-tools/ttmlkit/internal/romanize"
	"github.com/ttml-tools/ttmlkit/internal/ttml"
)

var romanizeCmd = &cobra.Command{
	Use:   "romanize [ttml-file-or-dir]",
	Short: "Annotate TTML lyrics with romanized readings",
	Long: `Annotate a TTML lyric file with x-roman attributes holding a
Latin-script rendering of each line and word. The backend is selected
by a three-letter language code; translation spans are never annotated.

Existing x-roman values are regenerated. By default an annotated copy
is written next to the input; --overwrite rewrites the input in place.

Examples:
  ttmlkit romanize "Artist - Title.ttml" --lang kor
  ttmlkit romanize song.ttml --lang jpn --overwrite
  ttmlkit romanize ./KOR --lang kor`,
	Args: cobra.ExactArgs(1),
	RunE: runRomanize,
}

func init() {
	rootCmd.AddCommand(romanizeCmd)

	romanizeCmd.Flags().
		StringP("lang", "l", "", "Language code: "+strings.Join(romanize.Supported(), ", "))
	romanizeCmd.Flags().
		BoolP("overwrite", "w", false, "Rewrite the input file in place")

	_ = romanizeCmd.MarkFlagRequired("lang")
}

func runRomanize(cmd *cobra.Command, args []string) error {
	input := args[0]
	lang, _ := cmd.Flags().GetString("lang")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	outputPath, _ := cmd.Flags().GetString("output")

	info, err := os.Stat(input)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", input)
	} else if err != nil {
		return err
	}

	// resolve before touching any file so a configuration error leaves
	// everything unmodified
	backend, err := romanize.Resolve(lang)
	if err != nil {
		return err
	}
	logger.Infow("Selected romanization backend",
		"lang", lang,
		"backend", backend.Name(),
	)

	if info.IsDir() {
		return romanizeDir(input, backend, overwrite)
	}

	if outputPath == "" {
		outputPath = romanizedName(input, overwrite)
	}
	if err := romanizeFile(input, outputPath, backend); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Romanized: %s\n", absOutput)
	return nil
}

func romanizeFile(input, output string, backend romanize.Backend) error {
	doc, err := ttml.ParseFile(input)
	if err != nil {
		return err
	}

	annotator := romanize.NewAnnotator(backend, logger)
	annotator.Annotate(doc)
	if skipped := annotator.Skipped(); skipped > 0 {
		logger.Warnw("Some nodes could not be romanized",
			"file", input,
			"skipped", skipped,
		)
	}

	if err := doc.WriteFile(output); err != nil {
		return err
	}

	logger.Infow("Romanized file",
		"input", input,
		"output", output,
	)
	return nil
}

func romanizeDir(dir string, backend romanize.Backend, overwrite bool) error {
	processed := 0
	failed := 0

	err := walkTTML(dir, func(path string) error {
		if err := romanizeFile(path, romanizedName(path, overwrite), backend); err != nil {
			failed++
			logger.Warnw("Skipping file: romanization failed",
				"file", path,
				"error", err,
			)
			return nil
		}
		processed++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Romanized: %d files", processed)
	if failed > 0 {
		fmt.Printf(" (%d failed)", failed)
	}
	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to romanize", failed, processed+failed)
	}
	return nil
}

func romanizedName(path string, overwrite bool) string {
	if overwrite {
		return path
	}
	return replaceExt(path, ".romanized.ttml")
}
