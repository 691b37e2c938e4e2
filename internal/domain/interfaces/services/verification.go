// Package services defines interfaces for domain service contracts.
package services

import (
	"context"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

// VerdictService turns reputation results into verdicts.
// Pure business logic: no I/O.
type VerdictService interface {
	Decide(result entities.ReputationResult) entities.Verdict

	// Escalate raises a verdict to Indeterminate when a secondary check failed.
	// It never lowers a verdict and never produces Block.
	Escalate(verdict entities.Verdict, reason string) entities.Verdict
}

// OverrideService applies the operator-override policy to a verdict
type OverrideService interface {
	// Resolve returns whether to proceed and whether the operator was asked
	Resolve(ctx context.Context, ref entities.PackageReference, verdict entities.Verdict, digest entities.ContentDigest) (proceed, prompted bool)
}
