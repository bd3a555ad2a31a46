// Package overrides gathers the user-supplied version signals from the
// project's config file and from the environment.
package overrides

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/datawire/dlib/dlog"
	"gopkg.in/yaml.v2"

	"github.com/timepieces141/dynamic-versioning/pkg/resolve"
	"github.com/timepieces141/dynamic-versioning/pkg/semver"
)

// ConfigFileName is the config file looked for at the project root.
const ConfigFileName = "dynamic-versioning.yml"

// Environment variables, taking precedence over the config file.
const (
	EnvNewVersion     = "DV_NEW_VERSION"
	EnvCurrentVersion = "DV_CURRENT_VERSION"
	EnvVersionBump    = "DV_VERSION_BUMP"
	EnvDevVersion     = "DV_DEV_VERSION"
)

// Overrides are the user-supplied version signals after merging the config
// file and the environment.  All fields are optional; versions that do not
// validate are dropped (with a warning) rather than failing, so a bad
// value degrades to "not set".
type Overrides struct {
	NewVersion     string `yaml:"new-version"`
	CurrentVersion string `yaml:"current-version"`
	VersionBump    string `yaml:"version-bump"`
	DevVersion     string `yaml:"dev-version"`
}

// Load reads the config file at path (absence is not an error), overlays
// the DV_* environment variables on top, and validates the result.
func Load(ctx context.Context, path string) (*Overrides, error) {
	var ovr Overrides
	bs, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// env-only
	case err != nil:
		return nil, err
	default:
		if err := yaml.UnmarshalStrict(bs, &ovr); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	ovr.overlayEnv()
	ovr.validate(ctx)
	return &ovr, nil
}

func (ovr *Overrides) overlayEnv() {
	if val := os.Getenv(EnvNewVersion); val != "" {
		ovr.NewVersion = val
	}
	if val := os.Getenv(EnvCurrentVersion); val != "" {
		ovr.CurrentVersion = val
	}
	if val := os.Getenv(EnvVersionBump); val != "" {
		ovr.VersionBump = val
	}
	if val := os.Getenv(EnvDevVersion); val != "" {
		ovr.DevVersion = val
	}
}

func (ovr *Overrides) validate(ctx context.Context) {
	if ovr.NewVersion != "" && !semver.IsValid(ovr.NewVersion) {
		dlog.Warnf(ctx, "ignoring new-version %q: not a valid (non-0.0.0) semantic version", ovr.NewVersion)
		ovr.NewVersion = ""
	}
	// current-version may omit the patch part, like a tag.
	if ovr.CurrentVersion != "" {
		if ver, err := semver.ParseTolerant(ovr.CurrentVersion); err != nil || ver.IsZero() {
			dlog.Warnf(ctx, "ignoring current-version %q: not a valid (non-0.0.0) semantic version",
				ovr.CurrentVersion)
			ovr.CurrentVersion = ""
		}
	}
}

// Inputs converts the merged overrides into resolution-policy inputs.  The
// caller still owns Inputs.StaticVersion and Inputs.Default.
func (ovr *Overrides) Inputs() (resolve.Inputs, error) {
	in := resolve.Inputs{
		NewVersion:      ovr.NewVersion,
		FallbackCurrent: ovr.CurrentVersion,
		Dev:             isTrue(ovr.DevVersion),
	}
	if ovr.VersionBump != "" {
		part, err := semver.ParsePart(ovr.VersionBump)
		if err != nil {
			return resolve.Inputs{}, err
		}
		in.Bump = &part
	}
	return in, nil
}

// isTrue mirrors the truthiness rule of the config format: "true" or "t",
// case-insensitive.
func isTrue(str string) bool {
	switch strings.ToLower(str) {
	case "true", "t":
		return true
	default:
		return false
	}
}
