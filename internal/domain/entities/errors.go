package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across layers
var (
	ErrNoArtifactFound    = errors.New("no artifact found")
	ErrIO                 = errors.New("i/o error")
	ErrMissingCredential  = errors.New("missing API credential")
	ErrOperatorDeclined   = errors.New("declined by operator")
	ErrInstallBlocked     = errors.New("installation blocked by provenance check")
	ErrManagerUnavailable = errors.New("package manager not available")
	ErrPlaceholderName    = errors.New("refusing placeholder package name")
)

// ResolutionError reports that no artifact could be produced for a package
type ResolutionError struct {
	Ref    PackageReference
	Reason error
	Steps  []string // attempted steps with their failure, in order
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Ref, e.Reason)
}

func (e *ResolutionError) Unwrap() error {
	return e.Reason
}

// HashError reports a failure to read the artifact while hashing
type HashError struct {
	Path string
	Err  error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("hash %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrIO and the underlying cause to errors.Is
func (e *HashError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
