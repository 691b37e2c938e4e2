package entities

import (
	"fmt"
	"strings"
)

// Ecosystem identifies one of the supported package managers
type Ecosystem string

// Supported ecosystems. The value doubles as the manager's display name.
const (
	EcosystemPip Ecosystem = "pip3"
	EcosystemNPM Ecosystem = "npm"
)

// Ecosystems lists the supported ecosystems in display order
func Ecosystems() []Ecosystem {
	return []Ecosystem{EcosystemNPM, EcosystemPip}
}

// ParseEcosystem maps user input (pip, pip3, pypi, npm) to an Ecosystem
func ParseEcosystem(s string) (Ecosystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pip", "pip3", "pypi":
		return EcosystemPip, nil
	case "npm":
		return EcosystemNPM, nil
	default:
		return "", fmt.Errorf("unsupported package manager %q (want pip3 or npm)", s)
	}
}

func (e Ecosystem) String() string {
	return string(e)
}

// PackageReference names the package being verified
type PackageReference struct {
	Name      string
	Ecosystem Ecosystem
}

// NewPackageReference creates a validated reference
func NewPackageReference(name string, ecosystem Ecosystem) (PackageReference, error) {
	ref := PackageReference{Name: strings.TrimSpace(name), Ecosystem: ecosystem}
	if err := ref.Validate(); err != nil {
		return PackageReference{}, err
	}
	return ref, nil
}

// Validate rejects empty names, unknown ecosystems and copy-pasted placeholders.
// Names may not start with "-" so they are never read as a tool option.
func (r PackageReference) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("package name is required")
	}
	if strings.HasPrefix(r.Name, "-") {
		return fmt.Errorf("package name %q must not start with '-'", r.Name)
	}
	if r.Name == "package-name" || r.Name == "<package>" {
		return fmt.Errorf("%w: %q", ErrPlaceholderName, r.Name)
	}
	if r.Ecosystem != EcosystemPip && r.Ecosystem != EcosystemNPM {
		return fmt.Errorf("unsupported ecosystem %q", r.Ecosystem)
	}
	return nil
}

func (r PackageReference) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.Ecosystem)
}
