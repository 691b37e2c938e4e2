// Package gateways provides implementations of domain gateway interfaces.
package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/ochairo/unipkg/internal/domain/interfaces"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
)

// DefaultCommandTimeout bounds a tool invocation when the caller sets none
const DefaultCommandTimeout = 30 * time.Second

// CommandRunner runs ecosystem CLIs directly, never through a shell
type CommandRunner struct {
	defaultTimeout time.Duration
	logger         interfaces.Logger
	stdout         io.Writer
	stderr         io.Writer
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(defaultTimeout time.Duration, logger interfaces.Logger) *CommandRunner {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultCommandTimeout
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &CommandRunner{
		defaultTimeout: defaultTimeout,
		logger:         logger,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
	}
}

// Run executes cmd and reports its outcome. It never panics and never returns nil.
func (r *CommandRunner) Run(ctx context.Context, cmd gateways.Command) *gateways.CommandResult {
	startTime := time.Now()
	result := &gateways.CommandResult{}

	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = r.defaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // G204: Tool names come from configuration, arguments are passed as argv
	c := exec.CommandContext(execCtx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}

	var stdout, stderr bytes.Buffer
	if cmd.Stream {
		c.Stdin = os.Stdin
		c.Stdout = io.MultiWriter(r.stdout, &stdout)
		c.Stderr = io.MultiWriter(r.stderr, &stderr)
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	if cmd.Description != "" {
		r.logger.Debug("executing", interfaces.F("step", cmd.Description), interfaces.F("command", cmd.Name), interfaces.F("args", cmd.Args))
	}

	err := c.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.Err = err
		var exitErr *exec.ExitError
		//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			result.Err = fmt.Errorf("%s timed out after %v", cmd.Name, timeout)
			result.ExitCode = -1
		} else if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		return result
	}

	result.ExitCode = 0
	return result
}
