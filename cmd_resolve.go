package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timepieces141/dynamic-versioning/pkg/cliutil"
	"github.com/timepieces141/dynamic-versioning/pkg/gitdesc"
	"github.com/timepieces141/dynamic-versioning/pkg/resolve"
)

func init() {
	var flags resolverFlags
	cmd := &cobra.Command{
		Use:   "resolve [flags]",
		Short: "Compute the next version and print it",
		Long: "Compute the next version from the most recent annotated git tag, the " +
			"persisted version record, and any overrides supplied through the config " +
			"file, the DV_* environment variables, or flags (later sources winning), " +
			"and print it to stdout.  Nothing is written; see `dynver stamp` for " +
			"persisting the result.",
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

			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
	flags.register(cmd)
	argparser.AddCommand(cmd)
}
