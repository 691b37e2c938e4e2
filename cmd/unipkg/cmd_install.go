package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

func newInstallCommand(opts *globalOptions) *cobra.Command {
	return newManagerCommand(opts, false)
}

func newUpgradeCommand(opts *globalOptions) *cobra.Command {
	return newManagerCommand(opts, true)
}

// newManagerCommand builds install or upgrade; both verify first and share flags
func newManagerCommand(opts *globalOptions, upgrade bool) *cobra.Command {
	var manager string

	cmd := &cobra.Command{
		Use:   "install <package>",
		Short: "Verify a package and install it",
		Example: `  unipkg install requests -m pip3
  unipkg install @types/node -m npm
  unipkg install left-pad -m npm --non-interactive --accept-warnings`,
		Args: exactlyOne("package name"),
	}
	if upgrade {
		cmd.Use = "upgrade <package>"
		cmd.Short = "Verify the latest release of a package and upgrade to it"
		cmd.Example = `  unipkg upgrade requests -m pip3
  unipkg upgrade typescript -m npm`
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ref, err := packageReference(opts, args[0], manager)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		action := "Installing"
		if upgrade {
			action = "Upgrading"
		}
		_, _ = fmt.Fprintf(out, "%s %s\n", action, color.CyanString(ref.String()))

		result, err := a.installer.Install(cmd.Context(), ref, upgrade)
		if result != nil && result.Decision != nil {
			printDecision(out, result.Decision, opts.verbose)
		}
		if err != nil {
			if errors.Is(err, entities.ErrInstallBlocked) && result.Decision != nil {
				return refusedError(refusal(result.Decision))
			}
			return refusedError(err)
		}

		verb := "installed"
		if upgrade {
			verb = "upgraded"
		}
		_, _ = color.New(color.FgGreen).Fprintf(out, "%s %s\n", ref.Name, verb)
		return nil
	}

	cmd.Flags().StringVarP(&manager, "manager", "m", "", "package manager: pip3 or npm (prompted when omitted)")
	return cmd
}

// refusal explains why a decision did not proceed
func refusal(d *entities.Decision) error {
	if d.Prompted {
		return fmt.Errorf("%w: %s (%s)", entities.ErrOperatorDeclined, d.Reference.Name, d.Verdict.Kind)
	}
	if d.Verdict.Reason == "" {
		return fmt.Errorf("%w: %s", entities.ErrInstallBlocked, d.Verdict.Kind)
	}
	return fmt.Errorf("%w: %s", entities.ErrInstallBlocked, d.Verdict.Reason)
}
