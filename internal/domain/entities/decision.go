package entities

import "time"

// Decision is the final outcome of one verification attempt
type Decision struct {
	RunID      string
	Reference  PackageReference
	Artifact   ArtifactSummary
	Digest     ContentDigest
	Reputation *ReputationResult // nil when the pipeline stopped before the lookup
	Signature  SignatureStatus
	Verdict    Verdict
	Proceed    bool
	Prompted   bool
	Duration   time.Duration
}

// ArtifactSummary keeps what is worth reporting after the handle is released
type ArtifactSummary struct {
	FileName  string
	SourceURL string
	Origin    ArtifactOrigin
}

// Overridden reports whether the operator let a non-Allow verdict through
func (d *Decision) Overridden() bool {
	return d.Proceed && d.Verdict.Kind != VerdictAllow
}

// SignatureStatus is the outcome of the optional detached signature check
type SignatureStatus string

// Signature check outcomes
const (
	SignatureSkipped SignatureStatus = "skipped"
	SignatureValid   SignatureStatus = "valid"
	SignatureMissing SignatureStatus = "missing"
	SignatureInvalid SignatureStatus = "invalid"
)
