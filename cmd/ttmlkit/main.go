package main

import (
	"os"

	"github.com/ttml-tools/ttmlkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
