package gateways

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
)

// fakeRunner answers commands from a table keyed by "name arg1 arg2 ..."
type fakeRunner struct {
	mu       sync.Mutex
	handlers map[string]func(cmd gateways.Command) *gateways.CommandResult
	calls    []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{handlers: make(map[string]func(gateways.Command) *gateways.CommandResult)}
}

// on registers a handler for commands whose key starts with prefix
func (f *fakeRunner) on(prefix string, fn func(cmd gateways.Command) *gateways.CommandResult) {
	f.handlers[prefix] = fn
}

func (f *fakeRunner) Run(_ context.Context, cmd gateways.Command) *gateways.CommandResult {
	key := strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")

	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	best := ""
	for prefix := range f.handlers {
		if strings.HasPrefix(key, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return failedResult(127)
	}
	return f.handlers[best](cmd)
}

func (f *fakeRunner) called(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func okResult(stdout string) *gateways.CommandResult {
	return &gateways.CommandResult{Stdout: stdout}
}

func failedResult(code int) *gateways.CommandResult {
	return &gateways.CommandResult{ExitCode: code, Err: &exitError{code: code}}
}

type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// dirArg returns the value following -d in a pip download command
func dirArg(cmd gateways.Command) string {
	for i, a := range cmd.Args {
		if a == "-d" && i+1 < len(cmd.Args) {
			return cmd.Args[i+1]
		}
	}
	return ""
}
