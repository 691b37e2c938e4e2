package gateways

import (
	"context"
	"time"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

// Command describes one invocation of an ecosystem CLI
type Command struct {
	Name        string
	Args        []string
	Dir         string
	Timeout     time.Duration
	Stream      bool // forward output to the terminal instead of capturing it
	Description string
}

// CommandResult is the outcome of a Command
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Err      error // nil only when the command exited 0
}

// Success reports whether the command exited 0
func (r *CommandResult) Success() bool {
	return r != nil && r.Err == nil && r.ExitCode == 0
}

// CommandRunner runs ecosystem tools with a bounded timeout
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) *CommandResult
}

// PackageManager performs the actual install or upgrade
type PackageManager interface {
	Ecosystem() entities.Ecosystem
	IsAvailable(ctx context.Context) bool
	Install(ctx context.Context, name string) error
	Upgrade(ctx context.Context, name string) error
}
