package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVerifyCommand(opts *globalOptions) *cobra.Command {
	var manager string

	cmd := &cobra.Command{
		Use:   "verify <package>",
		Short: "Run the provenance check without installing",
		Long: `Resolve, hash and look up the artifact the package manager would install.
The exit status is 0 when the decision is to proceed and 1 otherwise.`,
		Example: `  unipkg verify requests -m pip3
  unipkg verify lodash -m npm --non-interactive`,
		Args: exactlyOne("package name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := packageReference(opts, args[0], manager)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Verifying %s\n", color.CyanString(ref.String()))

			decision := a.verifier.Verify(cmd.Context(), ref)
			printDecision(out, decision, opts.verbose)
			if !decision.Proceed {
				return refusedError(refusal(decision))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manager, "manager", "m", "", "package manager: pip3 or npm (prompted when omitted)")
	return cmd
}
