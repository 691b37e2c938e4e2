package gateways

import (
	"context"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

// OverrideRequest is what the operator is asked to confirm
type OverrideRequest struct {
	Reference entities.PackageReference
	Verdict   entities.Verdict
	Digest    entities.ContentDigest
}

// OverrideGate asks the operator whether to proceed despite a non-Allow verdict.
// Returning false or an error means "do not proceed".
type OverrideGate interface {
	Confirm(ctx context.Context, req OverrideRequest) (bool, error)
}
