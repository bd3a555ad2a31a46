package main

import (
	"fmt"
	"path/filepath"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/timepieces141/dynamic-versioning/pkg/cliutil"
	"github.com/timepieces141/dynamic-versioning/pkg/gitdesc"
	"github.com/timepieces141/dynamic-versioning/pkg/projdir"
	"github.com/timepieces141/dynamic-versioning/pkg/resolve"
	"github.com/timepieces141/dynamic-versioning/pkg/verfile"
)

func init() {
	var flags resolverFlags
	var stampFlags struct {
		PackageName string
		Header      string
	}
	cmd := &cobra.Command{
		Use:   "stamp [flags]",
		Short: "Compute the next version and write it to the version file",
		Long: "Compute the next version exactly as `dynver resolve` does, then write " +
			"it into the version file so that later builds can read it back.  The " +
			"file gets the configured header (with \"{package_name}\" substituted) " +
			"followed by a `__version__` line.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			root, in, err := flags.gather(ctx)
			if err != nil {
				return err
			}
			version, err := resolve.Resolve(ctx, gitdesc.Git{Dir: root}, in)
			if err != nil {
				return err
			}

			path := flags.VersionFile
			pkgName := stampFlags.PackageName
			if path == "" || pkgName == "" {
				topLevel, err := projdir.TopLevelPackage(root)
				if err != nil {
					return err
				}
				if path == "" {
					path = filepath.Join(topLevel, verfile.DefaultFileName)
				}
				if pkgName == "" {
					pkgName = filepath.Base(topLevel)
				}
			}
			cfg := verfile.Config{
				Path:        path,
				Header:      stampFlags.Header,
				PackageName: pkgName,
			}
			if err := cfg.Write(version); err != nil {
				return err
			}
			dlog.Infof(ctx, "wrote version %q to %s", version, path)

			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&stampFlags.PackageName, "package-name", "",
		"Package name substituted into the header (default: the top-level package directory's name)")
	cmd.Flags().StringVar(&stampFlags.Header, "header", "",
		"Header template written at the top of the version file; \"{package_name}\" is substituted")
	argparser.AddCommand(cmd)
}
