// Package yaml provides YAML-based configuration parsing and lookup.
package yaml

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	LogLevel   string         `yaml:"log_level"`
	Tools      yamlTools      `yaml:"tools"`
	Registry   yamlRegistry   `yaml:"registry"`
	Reputation yamlReputation `yaml:"reputation"`
	Policy     yamlPolicy     `yaml:"policy"`
	Signature  yamlSignature  `yaml:"signature"`
	Timeouts   yamlTimeouts   `yaml:"timeouts"`
	NPM        yamlNPM        `yaml:"npm"`
}

type yamlTools struct {
	Pip    string `yaml:"pip"`
	Python string `yaml:"python"`
	NPM    string `yaml:"npm"`
}

type yamlRegistry struct {
	NPM string `yaml:"npm"`
}

type yamlReputation struct {
	APIURL    string `yaml:"api_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type yamlPolicy struct {
	NotFound           string   `yaml:"not_found"`
	AllowBlockOverride *bool    `yaml:"allow_block_override"`
	AutoAccept         []string `yaml:"auto_accept"`
}

type yamlSignature struct {
	Keyring  string `yaml:"keyring"`
	Required *bool  `yaml:"required"`
}

type yamlTimeouts struct {
	Command    string `yaml:"command"`
	Registry   string `yaml:"registry"`
	Download   string `yaml:"download"`
	Reputation string `yaml:"reputation"`
	Install    string `yaml:"install"`
}

type yamlNPM struct {
	Global *bool `yaml:"global"`
}

// ConfigParser parses YAML configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML config file into a Config entity
func (p *ConfigParser) ParseFile(filePath string) (*entities.Config, error) {
	//nolint:gosec // G304: filePath is the config path chosen by the operator
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	cfg, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return cfg, nil
}

// Parse overlays YAML bytes on the defaults and validates the result.
// Unset keys keep their default value.
func (p *ConfigParser) Parse(data []byte) (*entities.Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := entities.DefaultConfig()

	setString(&cfg.LogLevel, raw.LogLevel)
	setString(&cfg.Tools.Pip, raw.Tools.Pip)
	setString(&cfg.Tools.Python, raw.Tools.Python)
	setString(&cfg.Tools.NPM, raw.Tools.NPM)
	setString(&cfg.Registry.NPM, raw.Registry.NPM)
	setString(&cfg.Reputation.APIURL, raw.Reputation.APIURL)
	setString(&cfg.Reputation.APIKeyEnv, raw.Reputation.APIKeyEnv)
	setString(&cfg.Signature.Keyring, raw.Signature.Keyring)

	if raw.Policy.NotFound != "" {
		cfg.Policy.NotFound = entities.NotFoundPolicy(strings.ToLower(raw.Policy.NotFound))
	}
	setBool(&cfg.Policy.AllowBlockOverride, raw.Policy.AllowBlockOverride)
	for _, kind := range raw.Policy.AutoAccept {
		cfg.Policy.AutoAccept = append(cfg.Policy.AutoAccept, entities.VerdictKind(strings.ToLower(strings.TrimSpace(kind))))
	}
	setBool(&cfg.Signature.Required, raw.Signature.Required)
	setBool(&cfg.NPM.Global, raw.NPM.Global)

	durations := []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"timeouts.command", raw.Timeouts.Command, &cfg.Timeouts.Command},
		{"timeouts.registry", raw.Timeouts.Registry, &cfg.Timeouts.Registry},
		{"timeouts.download", raw.Timeouts.Download, &cfg.Timeouts.Download},
		{"timeouts.reputation", raw.Timeouts.Reputation, &cfg.Timeouts.Reputation},
		{"timeouts.install", raw.Timeouts.Install, &cfg.Timeouts.Install},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
