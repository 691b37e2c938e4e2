package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// printDecision renders the outcome of a verification
func printDecision(w io.Writer, d *entities.Decision, verbose bool) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "  verdict:   %s\n", verdictLabel(d.Verdict.Kind))
	if d.Verdict.Reason != "" {
		_, _ = fmt.Fprintf(w, "  reason:    %s\n", d.Verdict.Reason)
	}
	if d.Artifact.FileName != "" {
		_, _ = fmt.Fprintf(w, "  artifact:  %s %s\n", d.Artifact.FileName, color.HiBlackString("(%s)", d.Artifact.Origin))
	}
	if !d.Digest.IsZero() {
		_, _ = fmt.Fprintf(w, "  sha256:    %s\n", d.Digest.Hex)
	}
	if d.Signature != "" && d.Signature != entities.SignatureSkipped {
		_, _ = fmt.Fprintf(w, "  signature: %s\n", d.Signature)
	}
	if d.Reputation != nil && d.Reputation.Kind == entities.ReputationKindFound {
		_, _ = fmt.Fprintln(w, statsTable(d.Reputation.Stats))
	}
	if d.Overridden() {
		_, _ = color.New(color.FgYellow).Fprintf(w, "  proceeding on operator override\n")
	}
	if verbose {
		_, _ = fmt.Fprintf(w, "  %s\n", color.HiBlackString("run %s in %s", d.RunID, d.Duration.Round(time.Millisecond)))
	}
	_, _ = fmt.Fprintln(w)
}

func verdictLabel(kind entities.VerdictKind) string {
	switch kind {
	case entities.VerdictAllow:
		return color.GreenString("allow")
	case entities.VerdictAllowWithWarning:
		return color.YellowString("allow with warning")
	case entities.VerdictBlock:
		return color.New(color.FgRed, color.Bold).Sprint("block")
	default:
		return color.YellowString("indeterminate")
	}
}

// statsTable renders per-engine counts
func statsTable(stats entities.AnalysisStats) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("malicious", "suspicious", "harmless", "undetected").
		Row(
			strconv.Itoa(stats.Malicious),
			strconv.Itoa(stats.Suspicious),
			strconv.Itoa(stats.Harmless),
			strconv.Itoa(stats.Undetected),
		)
	return t.Render()
}
