package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timepieces141/dynamic-versioning/pkg/cliutil"
	"github.com/timepieces141/dynamic-versioning/pkg/gitdesc"
	"github.com/timepieces141/dynamic-versioning/pkg/projdir"
)

func init() {
	var flags struct {
		ProjectDir string
		Fallback   string
	}
	cmd := &cobra.Command{
		Use:   "current [flags]",
		Short: "Report the version of the most recent annotated tag",
		Long: "Fetch tags and report the version of the most recent annotated git " +
			"tag, plus the number of commits made since it.  A repository with no " +
			"annotated tags reports 0.0.0.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			root, err := projdir.FindRoot(flags.ProjectDir)
			if err != nil {
				return err
			}
			ver, err := gitdesc.Current(ctx, gitdesc.Git{Dir: root}, flags.Fallback)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (with %d additional commits)\n", ver, ver.Commits)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.ProjectDir, "project-dir", "C", ".",
		"Project directory, or any directory beneath it")
	cmd.Flags().StringVar(&flags.Fallback, "fallback", "",
		"Version to report when git fails outright")
	argparser.AddCommand(cmd)
}
