package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(out, BuildVersion)
				return
			}
			_, _ = fmt.Fprintf(out, "unipkg %s\n", BuildVersion)
			_, _ = fmt.Fprintf(out, "Commit: %s\n", BuildCommit)
			_, _ = fmt.Fprintf(out, "Built: %s\n", BuildDate)
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "show only the version number")
	return cmd
}
