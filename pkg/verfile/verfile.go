// Package verfile reads and writes the version file that records a
// resolved version for later builds.
package verfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// DefaultHeader is the docstring written at the top of a fresh version
// file; "{package_name}" is replaced with the package's name.
const DefaultHeader = "'''\nVersion of '{package_name}'\n'''\n\n"

// DefaultFileName is the version file's name when the caller does not
// configure one.
const DefaultFileName = "version.py"

// Config says where the version file lives and what gets written at the
// top of it.  Callers construct it once and pass it down; there is no
// ambient global configuration.
type Config struct {
	// Path of the version file, e.g. "src/mypkg/version.py".
	Path string

	// Header is the template written above the version line;
	// "{package_name}" is substituted.  Empty means DefaultHeader.
	Header string

	// PackageName is substituted into Header.
	PackageName string
}

var versionLineRE = regexp.MustCompile(`(?m)^__version__\s*=\s*['"]([^'"]+)['"]`)

// Read extracts the persisted version from the file at path.  The file is
// parsed textually for a `__version__ = "..."` line; it is never executed
// or loaded as code.
func Read(path string) (string, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	match := versionLineRE.FindSubmatch(bs)
	if match == nil {
		return "", &fs.PathError{
			Op:   "read version",
			Path: path,
			Err:  errors.New("no __version__ line found"),
		}
	}
	return string(match[1]), nil
}

// Write writes the version file, replacing any previous content: the
// configured header, then the `__version__` line.
func (cfg Config) Write(version string) error {
	header := cfg.Header
	if header == "" {
		header = DefaultHeader
	}
	header = strings.ReplaceAll(header, "{package_name}", cfg.PackageName)
	content := header + fmt.Sprintf("__version__ = %q\n", version)
	if err := os.WriteFile(cfg.Path, []byte(content), 0o644); err != nil {
		return err
	}
	return nil
}
