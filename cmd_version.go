package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timepieces141/dynamic-versioning/pkg/cliutil"
)

// Version of dynver itself, set via -ldflags at build time.
var Version = "dev"

func init() {
	argparser.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version of dynver itself",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
			return nil
		},
	})
}
