// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

// ArtifactResolver locates and downloads the artifact an install would fetch.
// Implementations never leak their scratch directory on failure.
type ArtifactResolver interface {
	Resolve(ctx context.Context, name string) (*entities.ArtifactHandle, error)
}

// ReferenceResolver picks the resolver for a reference's ecosystem and runs it
type ReferenceResolver interface {
	ResolveReference(ctx context.Context, ref entities.PackageReference) (*entities.ArtifactHandle, error)
}

// Hasher computes the content digest of a local file
type Hasher interface {
	Hash(path string) (entities.ContentDigest, error)
}

// ReputationGateway looks a digest up in the reputation service.
// Failures are reported as a ServiceError result, not as an error.
type ReputationGateway interface {
	Query(ctx context.Context, digest entities.ContentDigest) entities.ReputationResult
}

// SignatureGateway checks a detached signature published next to the artifact
type SignatureGateway interface {
	Check(ctx context.Context, artifact *entities.ArtifactHandle) (entities.SignatureStatus, error)
}

// ProgressIndicator gives feedback while a blocking step runs.
// Stop must return only after the indicator has finished drawing.
type ProgressIndicator interface {
	Start(message string)
	Stop()
}

// NoOpProgress is a ProgressIndicator that draws nothing
type NoOpProgress struct{}

// Start does nothing
func (NoOpProgress) Start(string) {}

// Stop does nothing
func (NoOpProgress) Stop() {}
