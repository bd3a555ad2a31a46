// Package projdir locates the pieces of a project's layout that dynamic
// versioning needs: the project root, and the top-level package directory
// where the version file lives.
package projdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/timepieces141/dynamic-versioning/pkg/overrides"
)

// rootMarkers are the files whose presence identifies a project root.
var rootMarkers = []string{
	"setup.py",
	"pyproject.toml",
	overrides.ConfigFileName,
}

// FindRoot walks upward from start to the first directory containing a
// project marker file (setup.py, pyproject.toml, or the dynamic-versioning
// config file).
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no project root (a directory containing %s) found at or above %q",
				strings.Join(rootMarkers, ", "), start)
		}
		dir = parent
	}
}

var errFound = errors.New("found")

// TopLevelPackage returns the first directory at or under root that
// contains an __init__.py file.  Dot-directories (.git, .venv, and the
// like) are not descended into.
func TopLevelPackage(root string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() && path != root && strings.HasPrefix(entry.Name(), ".") {
			return fs.SkipDir
		}
		if !entry.IsDir() && entry.Name() == "__init__.py" {
			found = filepath.Dir(path)
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no top-level package (a directory containing an __init__.py file) found under %q",
			root)
	}
	return found, nil
}
