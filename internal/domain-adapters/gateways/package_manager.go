package gateways

import (
	"context"
	"fmt"
	"time"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
)

// DefaultInstallTimeout bounds an install or upgrade
const DefaultInstallTimeout = 10 * time.Minute

// packageManager drives pip or npm for the actual install, streaming its output
type packageManager struct {
	ecosystem      entities.Ecosystem
	tool           string
	installArgs    func(name string) []string
	upgradeArgs    func(name string) []string
	runner         gateways.CommandRunner
	checkTimeout   time.Duration
	installTimeout time.Duration
}

// NewPipManager creates the pip package manager
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewPipManager(runner gateways.CommandRunner, tool string, timeouts entities.TimeoutsConfig) *packageManager {
	return &packageManager{
		ecosystem:      entities.EcosystemPip,
		tool:           tool,
		installArgs:    func(name string) []string { return []string{"install", "--", name} },
		upgradeArgs:    func(name string) []string { return []string{"install", "--upgrade", "--", name} },
		runner:         runner,
		checkTimeout:   timeouts.Command,
		installTimeout: timeouts.Install,
	}
}

// NewNPMManager creates the npm package manager. Upgrades are always global.
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewNPMManager(runner gateways.CommandRunner, tool string, global bool, timeouts entities.TimeoutsConfig) *packageManager {
	return &packageManager{
		ecosystem: entities.EcosystemNPM,
		tool:      tool,
		installArgs: func(name string) []string {
			if global {
				return []string{"install", "-g", "--", name}
			}
			return []string{"install", "--", name}
		},
		upgradeArgs:    func(name string) []string { return []string{"update", "-g", "--", name} },
		runner:         runner,
		checkTimeout:   timeouts.Command,
		installTimeout: timeouts.Install,
	}
}

// Ecosystem returns the ecosystem this manager installs into
func (m *packageManager) Ecosystem() entities.Ecosystem {
	return m.ecosystem
}

// IsAvailable runs `<tool> --version`
func (m *packageManager) IsAvailable(ctx context.Context) bool {
	return m.runner.Run(ctx, gateways.Command{
		Name:        m.tool,
		Args:        []string{"--version"},
		Timeout:     m.checkTimeout,
		Description: "availability check",
	}).Success()
}

// Install installs name
func (m *packageManager) Install(ctx context.Context, name string) error {
	return m.run(ctx, "install", m.installArgs(name))
}

// Upgrade upgrades name
func (m *packageManager) Upgrade(ctx context.Context, name string) error {
	return m.run(ctx, "upgrade", m.upgradeArgs(name))
}

func (m *packageManager) run(ctx context.Context, action string, args []string) error {
	timeout := m.installTimeout
	if timeout <= 0 {
		timeout = DefaultInstallTimeout
	}

	result := m.runner.Run(ctx, gateways.Command{
		Name:        m.tool,
		Args:        args,
		Timeout:     timeout,
		Stream:      true,
		Description: fmt.Sprintf("%s %s", m.ecosystem, action),
	})
	if !result.Success() {
		return fmt.Errorf("%s %s failed (exit %d): %w", m.tool, action, result.ExitCode, result.Err)
	}
	return nil
}
