package main

import (
	"context"
	"path/filepath"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/timepieces141/dynamic-versioning/pkg/overrides"
	"github.com/timepieces141/dynamic-versioning/pkg/projdir"
	"github.com/timepieces141/dynamic-versioning/pkg/resolve"
	"github.com/timepieces141/dynamic-versioning/pkg/verfile"
)

// resolverFlags are the override flags shared by the commands that run the
// resolution policy.  Flags sit above the environment, which sits above
// the config file.
type resolverFlags struct {
	ProjectDir string
	ConfigFile string

	NewVersion     string
	CurrentVersion string
	Bump           string
	Dev            bool

	StaticVersion string
	VersionFile   string
}

func (flags *resolverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flags.ProjectDir, "project-dir", "C", ".",
		"Project directory, or any directory beneath it")
	cmd.Flags().StringVar(&flags.ConfigFile, "config", "",
		"Config file to read overrides from (default PROJECT_DIR/"+overrides.ConfigFileName+")")
	cmd.Flags().StringVar(&flags.NewVersion, "new-version", "",
		"Explicit version to use, overriding everything else")
	cmd.Flags().StringVar(&flags.CurrentVersion, "current-version", "",
		"Version to treat as current when git fails outright")
	cmd.Flags().StringVar(&flags.Bump, "bump", "",
		"Version part to bump: major, minor, patch, or update")
	cmd.Flags().BoolVar(&flags.Dev, "dev", false,
		"Produce a development version (major.minor.patch.devN)")
	cmd.Flags().StringVar(&flags.StaticVersion, "static-version", "",
		"Statically declared version to weigh against the bumped tag version "+
			"(default: the persisted version file's)")
	cmd.Flags().StringVar(&flags.VersionFile, "version-file", "",
		"Version file holding the persisted version "+
			"(default TOP_LEVEL_PACKAGE/"+verfile.DefaultFileName+")")
}

// versionFilePath returns the version file to use, discovering the
// top-level package when no explicit path was given.
func (flags *resolverFlags) versionFilePath(root string) (string, error) {
	if flags.VersionFile != "" {
		return flags.VersionFile, nil
	}
	topLevel, err := projdir.TopLevelPackage(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(topLevel, verfile.DefaultFileName), nil
}

// gather merges the override sources and fills in the policy inputs.  It
// returns the project root, so that the caller can point git at it.
func (flags *resolverFlags) gather(ctx context.Context) (string, resolve.Inputs, error) {
	root, err := projdir.FindRoot(flags.ProjectDir)
	if err != nil {
		return "", resolve.Inputs{}, err
	}

	configFile := flags.ConfigFile
	if configFile == "" {
		configFile = filepath.Join(root, overrides.ConfigFileName)
	}
	ovr, err := overrides.Load(ctx, configFile)
	if err != nil {
		return "", resolve.Inputs{}, err
	}
	if flags.NewVersion != "" {
		ovr.NewVersion = flags.NewVersion
	}
	if flags.CurrentVersion != "" {
		ovr.CurrentVersion = flags.CurrentVersion
	}
	if flags.Bump != "" {
		ovr.VersionBump = flags.Bump
	}
	if flags.Dev {
		ovr.DevVersion = "true"
	}

	in, err := ovr.Inputs()
	if err != nil {
		return "", resolve.Inputs{}, err
	}

	persisted := func(_ context.Context) (string, error) {
		path, err := flags.versionFilePath(root)
		if err != nil {
			return "", err
		}
		return verfile.Read(path)
	}

	in.StaticVersion = flags.StaticVersion
	if in.StaticVersion == "" {
		// Best effort; the bump path will complain if it actually needs
		// a statically declared version and there is none.
		if version, err := persisted(ctx); err == nil {
			in.StaticVersion = version
		} else {
			dlog.Debugf(ctx, "no persisted version record: %v", err)
		}
	}
	in.Default = persisted

	return root, in, nil
}
