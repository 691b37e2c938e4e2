package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newScanCommand(opts *globalOptions) *cobra.Command {
	var (
		expected  string
		signature string
	)

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Look up an artifact that is already on disk",
		Long: `Hash a local artifact and look it up in the reputation service.
Optionally compare it against a published SHA-256 and a detached
OpenPGP signature checked with the configured keyring.`,
		Example: `  unipkg scan ./left-pad-1.3.0.tgz
  unipkg scan ./requests-2.32.3.tar.gz --sha256 <hex> --sig requests-2.32.3.tar.gz.asc`,
		Args: exactlyOne("file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return usageError("cannot read %s: %v", path, err)
			}

			a, err := newApp(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if signature != "" && a.keyring == nil {
				return usageError("--sig needs signature.keyring in the config file")
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Scanning %s\n", color.CyanString(path))

			if expected != "" {
				if err := a.hasher.VerifyDigest(path, strings.ToLower(strings.TrimSpace(expected))); err != nil {
					return refusedError(err)
				}
				_, _ = fmt.Fprintf(out, "  checksum: %s\n", color.GreenString("matches"))
			}
			if signature != "" {
				if err := a.keyring.VerifySignatureFromFile(path, signature); err != nil {
					return refusedError(fmt.Errorf("signature check failed: %w", err))
				}
				_, _ = fmt.Fprintf(out, "  signature: %s\n", color.GreenString("valid"))
			}

			decision := a.verifier.ScanFile(cmd.Context(), path)
			printDecision(out, decision, opts.verbose)
			if !decision.Proceed {
				return refusedError(refusal(decision))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&expected, "sha256", "", "expected SHA-256 of the file")
	cmd.Flags().StringVar(&signature, "sig", "", "detached signature (.asc) to verify")
	return cmd
}
