package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

func TestPrintDecision(t *testing.T) {
	color.NoColor = true

	found := entities.ReputationFound(entities.AnalysisStats{Malicious: 3, Suspicious: 1, Harmless: 50, Undetected: 10})
	d := &entities.Decision{
		RunID:      "run-1",
		Reference:  entities.PackageReference{Name: "evil-pkg", Ecosystem: entities.EcosystemNPM},
		Artifact:   entities.ArtifactSummary{FileName: "evil-pkg-1.0.0.tgz", Origin: entities.OriginNPMViewTarball},
		Digest:     entities.NewSHA256Digest(strings.Repeat("0f", 32)),
		Reputation: &found,
		Signature:  entities.SignatureSkipped,
		Verdict:    entities.Block("3 engine(s) flagged the artifact as malicious"),
	}

	var buf bytes.Buffer
	printDecision(&buf, d, true)
	out := buf.String()

	for _, want := range []string{"block", "3 engine(s)", "evil-pkg-1.0.0.tgz", "npm-view-dist-tarball", strings.Repeat("0f", 32), "malicious", "50", "run-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "signature:") {
		t.Error("skipped signature should not be printed")
	}
	if strings.Contains(out, "override") {
		t.Error("a refused decision is not an override")
	}
}

func TestPrintDecision_Override(t *testing.T) {
	color.NoColor = true

	d := &entities.Decision{
		Verdict:   entities.AllowWithWarning("2 engine(s) flagged the artifact as suspicious"),
		Signature: entities.SignatureMissing,
		Proceed:   true,
		Prompted:  true,
	}

	var buf bytes.Buffer
	printDecision(&buf, d, false)

	if !strings.Contains(buf.String(), "operator override") {
		t.Errorf("override not reported:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "signature: missing") {
		t.Errorf("signature status not reported:\n%s", buf.String())
	}
}

func TestRefusal(t *testing.T) {
	blocked := &entities.Decision{Verdict: entities.Block("malicious")}
	if err := refusal(blocked); !strings.Contains(err.Error(), "blocked") {
		t.Errorf("refusal(block) = %v", err)
	}

	declined := &entities.Decision{
		Reference: entities.PackageReference{Name: "x"},
		Verdict:   entities.Indeterminate("service error"),
		Prompted:  true,
	}
	if err := refusal(declined); !strings.Contains(err.Error(), "declined") {
		t.Errorf("refusal(declined) = %v", err)
	}
}
