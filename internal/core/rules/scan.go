// Package rules runs the front matter repair batch over the fixed Cursor
// rules directory: discover files, classify each one, and rewrite the
// fixable ones with a backup taken first.
package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Fixed scan targets. The tool operates on exactly one directory and one
// file extension; there is no configuration surface for either.
const (
	Dir          = ".cursor/rules"
	Pattern      = "*.mdc"
	BackupSuffix = ".backup"
)

// ErrDirMissing is returned when the rules directory does not exist. It is
// the only error that ends a run before any file is processed.
var ErrDirMissing = errors.New("rules directory does not exist")

// Discover lists files in dir whose names match pattern. The listing is
// non-recursive and backup files from earlier runs are excluded.
func Discover(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirMissing, dir)
		}
		return nil, fmt.Errorf("read rules dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ok, err := doublestar.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("match pattern %q: %w", pattern, err)
		}
		if !ok || filepath.Ext(entry.Name()) == BackupSuffix {
			continue
		}

		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}
