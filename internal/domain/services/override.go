package services

import (
	"context"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
	"github.com/ochairo/unipkg/internal/domain/interfaces/services"
)

// overrideService decides whether a verdict lets the install proceed.
// The posture is default-closed: anything but an explicit yes means no.
type overrideService struct {
	gate               gateways.OverrideGate
	allowBlockOverride bool
	logger             interfaces.Logger
}

// NewOverrideService creates the override policy around an operator gate
func NewOverrideService(gate gateways.OverrideGate, policy entities.PolicyConfig, logger interfaces.Logger) services.OverrideService {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &overrideService{
		gate:               gate,
		allowBlockOverride: policy.AllowBlockOverride,
		logger:             logger,
	}
}

// Resolve applies the policy:
//   - Allow proceeds without asking
//   - Block stops without asking unless block overrides are enabled
//   - everything else asks the operator
func (s *overrideService) Resolve(ctx context.Context, ref entities.PackageReference, verdict entities.Verdict, digest entities.ContentDigest) (bool, bool) {
	switch verdict.Kind {
	case entities.VerdictAllow:
		return true, false
	case entities.VerdictBlock:
		if !s.allowBlockOverride {
			s.logger.Warn("blocked without override", interfaces.F("package", ref.Name), interfaces.F("reason", verdict.Reason))
			return false, false
		}
	}

	if s.gate == nil {
		s.logger.Warn("no operator available, not proceeding", interfaces.F("package", ref.Name), interfaces.F("verdict", verdict.Kind))
		return false, false
	}

	ok, err := s.gate.Confirm(ctx, gateways.OverrideRequest{
		Reference: ref,
		Verdict:   verdict,
		Digest:    digest,
	})
	if err != nil {
		s.logger.Warn("override prompt failed, not proceeding", interfaces.F("package", ref.Name), interfaces.Err(err))
		return false, true
	}
	if !ok {
		s.logger.Info("operator declined", interfaces.F("package", ref.Name), interfaces.F("verdict", verdict.Kind))
		return false, true
	}

	s.logger.Warn("operator chose to proceed", interfaces.F("package", ref.Name), interfaces.F("verdict", verdict.Kind))
	return true, true
}
