// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
	"github.com/ochairo/unipkg/internal/domain/interfaces/services"
)

// VerificationOrchestrator runs resolve, hash, lookup, verdict and override for one package
type VerificationOrchestrator struct {
	resolver          gateways.ReferenceResolver
	hasher            gateways.Hasher
	signatures        gateways.SignatureGateway
	reputation        gateways.ReputationGateway
	verdicts          services.VerdictService
	overrides         services.OverrideService
	progress          gateways.ProgressIndicator
	signatureRequired bool
	logger            interfaces.Logger
}

// VerificationDeps holds the collaborators of a VerificationOrchestrator
type VerificationDeps struct {
	Resolver          gateways.ReferenceResolver
	Hasher            gateways.Hasher
	Signatures        gateways.SignatureGateway // optional
	Reputation        gateways.ReputationGateway
	Verdicts          services.VerdictService
	Overrides         services.OverrideService
	Progress          gateways.ProgressIndicator // optional
	SignatureRequired bool
	Logger            interfaces.Logger
}

// NewVerificationOrchestrator creates a new verification orchestrator
func NewVerificationOrchestrator(deps VerificationDeps) *VerificationOrchestrator {
	progress := deps.Progress
	if progress == nil {
		progress = gateways.NoOpProgress{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &VerificationOrchestrator{
		resolver:          deps.Resolver,
		hasher:            deps.Hasher,
		signatures:        deps.Signatures,
		reputation:        deps.Reputation,
		verdicts:          deps.Verdicts,
		overrides:         deps.Overrides,
		progress:          progress,
		signatureRequired: deps.SignatureRequired,
		logger:            logger,
	}
}

// Verify produces a decision for ref. It never fails: every problem becomes
// an Indeterminate verdict that the override policy then handles.
func (o *VerificationOrchestrator) Verify(ctx context.Context, ref entities.PackageReference) *entities.Decision {
	startTime := time.Now()

	decision := &entities.Decision{
		RunID:     uuid.NewString(),
		Reference: ref,
		Signature: entities.SignatureSkipped,
	}
	log := o.logger.With(
		interfaces.F("run_id", decision.RunID),
		interfaces.F("package", ref.Name),
		interfaces.F("manager", ref.Ecosystem),
	)

	decision.Verdict = o.evaluate(ctx, ref, decision, log)
	log.Info("verdict", interfaces.F("verdict", decision.Verdict.Kind), interfaces.F("reason", decision.Verdict.Reason))

	decision.Proceed, decision.Prompted = o.overrides.Resolve(ctx, ref, decision.Verdict, decision.Digest)
	decision.Duration = time.Since(startTime)

	log.Debug("verification finished",
		interfaces.F("proceed", decision.Proceed),
		interfaces.F("prompted", decision.Prompted),
		interfaces.F("duration", decision.Duration),
	)
	return decision
}

func (o *VerificationOrchestrator) evaluate(ctx context.Context, ref entities.PackageReference, decision *entities.Decision, log interfaces.Logger) entities.Verdict {
	if err := ref.Validate(); err != nil {
		return entities.Indeterminate(fmt.Sprintf("invalid package reference: %v", err))
	}

	// Step 1: Resolve the artifact, with the spinner joined before the result is used
	o.progress.Start(fmt.Sprintf("Fetching %s artifact for %s", ref.Ecosystem, ref.Name))
	handle, err := o.resolver.ResolveReference(ctx, ref)
	o.progress.Stop()
	if err != nil {
		log.Warn("artifact resolution failed", interfaces.Err(err))
		return entities.Indeterminate(fmt.Sprintf("could not download the package artifact: %v", err))
	}
	defer func() {
		if err := handle.Release(); err != nil {
			log.Warn("failed to remove scratch directory", interfaces.F("dir", handle.ScratchDir()), interfaces.Err(err))
		}
	}()

	decision.Artifact = entities.ArtifactSummary{
		FileName:  filepath.Base(handle.LocalPath),
		SourceURL: handle.SourceURL,
		Origin:    handle.Origin,
	}
	log.Debug("artifact resolved", interfaces.F("file", decision.Artifact.FileName), interfaces.F("origin", handle.Origin))

	// Step 2: Hash
	digest, err := o.hasher.Hash(handle.LocalPath)
	if err != nil {
		log.Warn("hashing failed", interfaces.Err(err))
		return entities.Indeterminate(fmt.Sprintf("could not hash the artifact: %v", err))
	}
	decision.Digest = digest
	log.Info("artifact hashed", interfaces.F("sha256", digest.Hex))

	// Step 3: Optional signature check while the file still exists
	if o.signatures != nil {
		status, err := o.signatures.Check(ctx, handle)
		if err != nil {
			log.Warn("signature check problem", interfaces.F("status", status), interfaces.Err(err))
		}
		decision.Signature = status
	}

	// The scratch directory is not needed for the lookup
	if err := handle.Release(); err != nil {
		log.Warn("failed to remove scratch directory", interfaces.F("dir", handle.ScratchDir()), interfaces.Err(err))
	}

	// Step 4: Reputation lookup
	o.progress.Start("Querying reputation service")
	result := o.reputation.Query(ctx, digest)
	o.progress.Stop()
	decision.Reputation = &result
	log.Debug("reputation result",
		interfaces.F("kind", result.Kind),
		interfaces.F("malicious", result.Stats.Malicious),
		interfaces.F("suspicious", result.Stats.Suspicious),
		interfaces.F("code", result.Code),
	)

	// Step 5: Verdict
	verdict := o.verdicts.Decide(result)
	switch {
	case decision.Signature == entities.SignatureInvalid:
		verdict = o.verdicts.Escalate(verdict, "detached signature did not verify")
	case decision.Signature == entities.SignatureMissing && o.signatureRequired:
		verdict = o.verdicts.Escalate(verdict, "no detached signature published")
	}
	return verdict
}

// ScanFile looks up an artifact that is already on disk. No resolver and no
// operator are involved: Proceed is true only for an Allow verdict.
func (o *VerificationOrchestrator) ScanFile(ctx context.Context, path string) *entities.Decision {
	startTime := time.Now()

	decision := &entities.Decision{
		RunID:     uuid.NewString(),
		Reference: entities.PackageReference{Name: filepath.Base(path)},
		Artifact:  entities.ArtifactSummary{FileName: filepath.Base(path), Origin: entities.OriginLocalFile},
		Signature: entities.SignatureSkipped,
	}
	log := o.logger.With(interfaces.F("run_id", decision.RunID), interfaces.F("file", path))

	digest, err := o.hasher.Hash(path)
	if err != nil {
		log.Warn("hashing failed", interfaces.Err(err))
		decision.Verdict = entities.Indeterminate(fmt.Sprintf("could not hash the artifact: %v", err))
		decision.Duration = time.Since(startTime)
		return decision
	}
	decision.Digest = digest

	o.progress.Start("Querying reputation service")
	result := o.reputation.Query(ctx, digest)
	o.progress.Stop()
	decision.Reputation = &result

	decision.Verdict = o.verdicts.Decide(result)
	decision.Proceed = decision.Verdict.Kind == entities.VerdictAllow
	decision.Duration = time.Since(startTime)
	log.Info("verdict", interfaces.F("verdict", decision.Verdict.Kind), interfaces.F("sha256", digest.Hex))
	return decision
}
