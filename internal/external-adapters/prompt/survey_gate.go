// Package prompt provides operator-facing OverrideGate implementations.
package prompt

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
)

// askFunc matches survey.AskOne
type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// SurveyGate asks the operator on the terminal. The default answer is always No.
type SurveyGate struct {
	out io.Writer
	ask askFunc
}

// NewSurveyGate creates a terminal gate writing its summary to out (stderr when nil)
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewSurveyGate(out io.Writer) *SurveyGate {
	if out == nil {
		out = os.Stderr
	}
	return &SurveyGate{out: out, ask: survey.AskOne}
}

// Confirm prints why the install is held back and asks for an explicit yes
func (g *SurveyGate) Confirm(ctx context.Context, req gateways.OverrideRequest) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	g.describe(req)

	var proceed bool
	prompt := &survey.Confirm{
		Message: confirmMessage(req),
		Default: false,
	}
	if err := g.ask(prompt, &proceed); err != nil {
		return false, fmt.Errorf("override prompt failed: %w", err)
	}
	return proceed, nil
}

func (g *SurveyGate) describe(req gateways.OverrideRequest) {
	label := verdictColor(req.Verdict.Kind).SprintFunc()
	_, _ = fmt.Fprintf(g.out, "%s %s\n", label(headline(req.Verdict.Kind)), req.Reference)
	if req.Verdict.Reason != "" {
		_, _ = fmt.Fprintf(g.out, "  reason: %s\n", req.Verdict.Reason)
	}
	if !req.Digest.IsZero() {
		_, _ = fmt.Fprintf(g.out, "  %s\n", color.HiBlackString(req.Digest.String()))
	}
}

func confirmMessage(req gateways.OverrideRequest) string {
	if req.Verdict.Kind == entities.VerdictBlock {
		return fmt.Sprintf("%s was flagged as malicious. Install it anyway?", req.Reference.Name)
	}
	return fmt.Sprintf("Proceed with %s anyway?", req.Reference.Name)
}

func headline(kind entities.VerdictKind) string {
	switch kind {
	case entities.VerdictBlock:
		return "BLOCKED"
	case entities.VerdictAllowWithWarning:
		return "WARNING"
	case entities.VerdictIndeterminate:
		return "UNVERIFIED"
	default:
		return "OK"
	}
}

func verdictColor(kind entities.VerdictKind) *color.Color {
	switch kind {
	case entities.VerdictBlock:
		return color.New(color.FgRed, color.Bold)
	case entities.VerdictAllowWithWarning, entities.VerdictIndeterminate:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen)
	}
}
