package entities

import (
	"errors"
	"testing"
)

func TestParseEcosystem(t *testing.T) {
	tests := []struct {
		input   string
		want    Ecosystem
		wantErr bool
	}{
		{input: "pip", want: EcosystemPip},
		{input: "pip3", want: EcosystemPip},
		{input: " PyPI ", want: EcosystemPip},
		{input: "npm", want: EcosystemNPM},
		{input: "NPM", want: EcosystemNPM},
		{input: "cargo", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEcosystem(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEcosystem(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEcosystem(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewPackageReference(t *testing.T) {
	tests := []struct {
		name            string
		pkg             string
		eco             Ecosystem
		wantErr         bool
		wantPlaceholder bool
	}{
		{name: "plain", pkg: "requests", eco: EcosystemPip},
		{name: "scoped", pkg: "@types/node", eco: EcosystemNPM},
		{name: "trimmed", pkg: "  lodash ", eco: EcosystemNPM},
		{name: "empty", pkg: "   ", eco: EcosystemNPM, wantErr: true},
		{name: "placeholder", pkg: "package-name", eco: EcosystemNPM, wantErr: true, wantPlaceholder: true},
		{name: "angle placeholder", pkg: "<package>", eco: EcosystemPip, wantErr: true, wantPlaceholder: true},
		{name: "option-like", pkg: "-rrequirements.txt", eco: EcosystemPip, wantErr: true},
		{name: "option-like npm", pkg: "--registry=https://evil.example", eco: EcosystemNPM, wantErr: true},
		{name: "unknown ecosystem", pkg: "serde", eco: Ecosystem("cargo"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := NewPackageReference(tt.pkg, tt.eco)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPackageReference() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrPlaceholderName) != tt.wantPlaceholder {
				t.Errorf("placeholder error = %v, want %v", errors.Is(err, ErrPlaceholderName), tt.wantPlaceholder)
			}
			if err == nil && ref.Name != "lodash" && ref.Name != tt.pkg {
				t.Errorf("Name = %q", ref.Name)
			}
		})
	}
}
