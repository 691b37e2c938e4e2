package gateways

import (
	"context"
	"errors"
	"fmt"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/external-adapters/gpg"
)

// signatureVerifier is the part of the OpenPGP adapter the gateway needs
type signatureVerifier interface {
	VerifySignature(ctx context.Context, filePath, sigURL string) error
	GetKeyringSize() int
}

// signatureGateway wraps the external OpenPGP adapter to implement SignatureGateway
type signatureGateway struct {
	verifier signatureVerifier
}

// NewSignatureGateway creates a gateway around a loaded verifier.
// A nil verifier or an empty keyring makes every check Skipped.
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewSignatureGateway(verifier *gpg.Verifier) *signatureGateway {
	if verifier == nil {
		return &signatureGateway{}
	}
	return &signatureGateway{verifier: verifier}
}

// Check looks for <SourceURL>.asc and verifies it
func (g *signatureGateway) Check(ctx context.Context, artifact *entities.ArtifactHandle) (entities.SignatureStatus, error) {
	if g.verifier == nil || g.verifier.GetKeyringSize() == 0 {
		return entities.SignatureSkipped, nil
	}
	if artifact == nil || artifact.SourceURL == "" {
		return entities.SignatureSkipped, nil
	}

	err := g.verifier.VerifySignature(ctx, artifact.LocalPath, artifact.SourceURL+".asc")
	switch {
	case err == nil:
		return entities.SignatureValid, nil
	case errors.Is(err, gpg.ErrSignatureNotPublished):
		return entities.SignatureMissing, nil
	case errors.Is(err, gpg.ErrBadSignature):
		return entities.SignatureInvalid, err
	default:
		return entities.SignatureMissing, fmt.Errorf("signature check: %w", err)
	}
}
