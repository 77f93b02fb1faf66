package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ttml-tools/ttmlkit/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [ttml-file-or-dir]",
	Short: "Convert TTML lyrics to JSON",
	Long: `Convert a TTML lyric file to its JSON representation: timing,
nesting, roles and any x-roman annotations are projected into a stable
JSON schema. Text and timing are never altered.

Given a directory, every .ttml file under it is converted; per-file
errors are reported and the run continues.

Examples:
  ttmlkit convert "Artist - Title.ttml"
  ttmlkit convert song.ttml -o song.json
  ttmlkit convert ./KOR -o ./JSON/KOR`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	info, err := os.Stat(input)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", input)
	} else if err != nil {
		return err
	}

	if info.IsDir() {
		return convertDir(input, outputPath)
	}

	if outputPath == "" {
		outputPath = replaceExt(input, ".json")
	}
	if err := convertFile(input, outputPath); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Converted: %s\n", absOutput)
	return nil
}

func convertFile(input, output string) error {
	song, err := convert.File(input)
	if err != nil {
		return err
	}

	data, err := song.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	logger.Infow("Converted file",
		"input", input,
		"output", output,
		"lines", song.TotalLines,
	)
	return nil
}

// convertDir converts every .ttml file under dir. When outDir is set the
// relative directory structure is mirrored there; otherwise each JSON file
// is written next to its source.
func convertDir(dir, outDir string) error {
	converted := 0
	failed := 0

	err := walkTTML(dir, func(path string) error {
		output := replaceExt(path, ".json")
		if outDir != "" {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			output = filepath.Join(outDir, replaceExt(rel, ".json"))
			if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
				return err
			}
		}

		if err := convertFile(path, output); err != nil {
			failed++
			logger.Warnw("Skipping file: conversion failed",
				"file", path,
				"error", err,
			)
			return nil
		}
		converted++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Converted: %d files", converted)
	if failed > 0 {
		fmt.Printf(" (%d failed)", failed)
	}
	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, converted+failed)
	}
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
