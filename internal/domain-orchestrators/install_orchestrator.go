package orchestrators

import (
	"context"
	"fmt"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
)

// Verifier produces a decision for a package
type Verifier interface {
	Verify(ctx context.Context, ref entities.PackageReference) *entities.Decision
}

// InstallOrchestrator gates installs and upgrades on a verification decision
type InstallOrchestrator struct {
	verifier Verifier
	managers map[entities.Ecosystem]gateways.PackageManager
	logger   interfaces.Logger
}

// NewInstallOrchestrator creates a new install orchestrator
func NewInstallOrchestrator(verifier Verifier, managers []gateways.PackageManager, logger interfaces.Logger) *InstallOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	byEcosystem := make(map[entities.Ecosystem]gateways.PackageManager, len(managers))
	for _, m := range managers {
		byEcosystem[m.Ecosystem()] = m
	}
	return &InstallOrchestrator{
		verifier: verifier,
		managers: byEcosystem,
		logger:   logger,
	}
}

// InstallResult contains the result of an install operation
type InstallResult struct {
	Decision  *entities.Decision
	Upgrade   bool
	Installed bool
}

// Install verifies ref and, only if the decision says so, installs or upgrades it.
// The decision is returned even when the install is refused.
func (o *InstallOrchestrator) Install(ctx context.Context, ref entities.PackageReference, upgrade bool) (*InstallResult, error) {
	result := &InstallResult{Upgrade: upgrade}

	if err := ref.Validate(); err != nil {
		return result, err
	}

	// Step 1: Check the package manager exists before downloading anything
	manager, ok := o.managers[ref.Ecosystem]
	if !ok {
		return result, fmt.Errorf("%w: %s", entities.ErrManagerUnavailable, ref.Ecosystem)
	}
	if !manager.IsAvailable(ctx) {
		return result, fmt.Errorf("%w: %s is not installed or not on PATH", entities.ErrManagerUnavailable, ref.Ecosystem)
	}

	// Step 2: Verify
	decision := o.verifier.Verify(ctx, ref)
	result.Decision = decision
	if !decision.Proceed {
		return result, fmt.Errorf("%w: %s", entities.ErrInstallBlocked, decision.Verdict.Reason)
	}

	// Step 3: Install
	action := "install"
	run := manager.Install
	if upgrade {
		action = "upgrade"
		run = manager.Upgrade
	}
	o.logger.Info("running package manager", interfaces.F("action", action), interfaces.F("package", ref.Name), interfaces.F("run_id", decision.RunID))

	if err := run(ctx, ref.Name); err != nil {
		return result, fmt.Errorf("%s %s: %w", action, ref.Name, err)
	}

	result.Installed = true
	return result, nil
}
