package gateways

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
)

// PipResolver fetches the distribution pip would install, without dependencies
type PipResolver struct {
	runner      gateways.CommandRunner
	pipTool     string
	pythonTool  string
	timeout     time.Duration
	scratchBase string
	logger      interfaces.Logger
}

// NewPipResolver creates a resolver using the configured pip and python executables
func NewPipResolver(runner gateways.CommandRunner, tools entities.ToolsConfig, timeout time.Duration, logger interfaces.Logger) *PipResolver {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &PipResolver{
		runner:     runner,
		pipTool:    tools.Pip,
		pythonTool: tools.Python,
		timeout:    timeout,
		logger:     logger,
	}
}

// Resolve downloads name into a fresh scratch directory.
// pip is tried first, then `python -m pip` only if pip exits non-zero.
// A successful attempt that leaves no file ends resolution.
func (r *PipResolver) Resolve(ctx context.Context, name string) (*entities.ArtifactHandle, error) {
	ref := entities.PackageReference{Name: name, Ecosystem: entities.EcosystemPip}

	dir, err := newScratchDir(r.scratchBase)
	if err != nil {
		return nil, &entities.ResolutionError{Ref: ref, Reason: fmt.Errorf("%w: %w", entities.ErrIO, err)}
	}

	attempts := []struct {
		origin entities.ArtifactOrigin
		cmd    gateways.Command
	}{
		{
			origin: entities.OriginPipDownload,
			cmd: gateways.Command{
				Name:        r.pipTool,
				Args:        []string{"download", "--no-deps", "-d", dir, "--", name},
				Timeout:     r.timeout,
				Description: "pip download",
			},
		},
		{
			origin: entities.OriginPipModule,
			cmd: gateways.Command{
				Name:        r.pythonTool,
				Args:        []string{"-m", "pip", "download", "--no-deps", "-d", dir, "--", name},
				Timeout:     r.timeout,
				Description: "python -m pip download",
			},
		},
	}

	var steps []string
	for _, attempt := range attempts {
		result := r.runner.Run(ctx, attempt.cmd)
		if !result.Success() {
			steps = append(steps, fmt.Sprintf("%s: %s", attempt.origin, describeFailure(result)))
			r.logger.Debug("pip attempt failed", interfaces.F("package", name), interfaces.F("step", attempt.origin), interfaces.Err(result.Err))
			continue
		}

		path, err := firstRegularFile(dir)
		if err != nil {
			steps = append(steps, fmt.Sprintf("%s: %v", attempt.origin, err))
			break
		}

		r.logger.Debug("resolved pip artifact", interfaces.F("package", name), interfaces.F("path", path))
		return entities.NewArtifactHandle(path, entities.EcosystemPip, "", attempt.origin, dir), nil
	}

	_ = os.RemoveAll(dir)
	return nil, &entities.ResolutionError{Ref: ref, Reason: entities.ErrNoArtifactFound, Steps: steps}
}

// describeFailure summarises a failed command for resolution diagnostics
func describeFailure(result *gateways.CommandResult) string {
	if result == nil {
		return "not run"
	}
	if result.Err != nil {
		return result.Err.Error()
	}
	return fmt.Sprintf("exit %d", result.ExitCode)
}
