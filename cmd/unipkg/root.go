package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/external-adapters/prompt"
)

// Process exit codes
const (
	exitOK      = 0
	exitRefused = 1
	exitUsage   = 2
)

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	configPath     string
	verbose        bool
	nonInteractive bool
	allowOverride  bool
	acceptWarnings bool
}

// exitError carries the exit code a failed command should produce
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func usageError(format string, args ...interface{}) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

func refusedError(err error) error {
	return &exitError{code: exitRefused, err: err}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "unipkg",
		Short: "Verify package provenance before installing",
		Long: `unipkg downloads the exact artifact pip or npm would install, hashes it,
looks the hash up in a reputation service and installs only when the
verdict (or the operator) allows it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: exitUsage, err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/unipkg/config.yaml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&opts.nonInteractive, "non-interactive", false, "never prompt; decline anything that needs confirmation")
	pf.BoolVar(&opts.allowOverride, "allow-override", false, "allow the operator to override a block verdict")
	pf.BoolVar(&opts.acceptWarnings, "accept-warnings", false, "in non-interactive mode, proceed on warning verdicts")

	root.AddCommand(
		newInstallCommand(opts),
		newUpgradeCommand(opts),
		newVerifyCommand(opts),
		newScanCommand(opts),
		newVersionCommand(),
	)
	return root
}

// execute runs the CLI and maps the outcome to a process exit code
func execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	code := exitRefused
	var ee *exitError
	switch {
	case errors.As(err, &ee):
		code = ee.code
	case strings.HasPrefix(err.Error(), "unknown command"):
		code = exitUsage
	}

	errColor := color.New(color.FgRed)
	_, _ = errColor.Fprintf(stderr, "Error: %v\n", err)
	if code == exitUsage {
		_, _ = fmt.Fprintln(stderr, "Run 'unipkg --help' for usage.")
	}
	return code
}

// exactlyOne validates a single positional argument as a usage error
func exactlyOne(what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return usageError("%s requires exactly one %s, got %d", cmd.Name(), what, len(args))
		}
		return nil
	}
}

// packageReference builds the reference from the argument and the -m flag,
// asking the operator for the manager when none was given
func packageReference(opts *globalOptions, name, manager string) (entities.PackageReference, error) {
	if manager == "" {
		if opts.nonInteractive {
			return entities.PackageReference{}, usageError("--manager is required with --non-interactive")
		}
		eco, err := prompt.NewManagerSelector().Select(name)
		if err != nil {
			return entities.PackageReference{}, usageError("%v", err)
		}
		manager = eco.String()
	}

	eco, err := entities.ParseEcosystem(manager)
	if err != nil {
		return entities.PackageReference{}, usageError("%v", err)
	}
	ref, err := entities.NewPackageReference(name, eco)
	if err != nil {
		return entities.PackageReference{}, usageError("%v", err)
	}
	return ref, nil
}
