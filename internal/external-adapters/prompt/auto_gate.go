package prompt

import (
	"context"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
)

// AutoGate answers without a terminal. It accepts only the verdict kinds it was
// configured with and never accepts a Block.
type AutoGate struct {
	accept map[entities.VerdictKind]bool
	logger interfaces.Logger
}

// NewAutoGate creates a non-interactive gate. With no kinds it declines everything.
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewAutoGate(kinds []entities.VerdictKind, logger interfaces.Logger) *AutoGate {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	accept := make(map[entities.VerdictKind]bool, len(kinds))
	for _, k := range kinds {
		if k == entities.VerdictBlock {
			continue
		}
		accept[k] = true
	}
	return &AutoGate{accept: accept, logger: logger}
}

// Confirm reports whether the verdict kind is in the accepted set
func (g *AutoGate) Confirm(ctx context.Context, req gateways.OverrideRequest) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok := g.accept[req.Verdict.Kind]
	g.logger.Info("non-interactive override",
		interfaces.F("package", req.Reference.Name),
		interfaces.F("verdict", req.Verdict.Kind),
		interfaces.F("accepted", ok))
	return ok, nil
}
