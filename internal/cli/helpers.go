package cli

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// walkTTML calls fn for every .ttml file under dir, in lexical order.
// Files already carrying the .romanized suffix are not revisited.
func walkTTML(dir string, fn func(path string) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".ttml") {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), ".romanized.ttml") {
			return nil
		}
		return fn(path)
	})
}
