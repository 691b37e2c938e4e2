package entities

import (
	"fmt"
	"time"
)

// Config is the runtime configuration of unipkg
type Config struct {
	LogLevel   string
	Tools      ToolsConfig
	Registry   RegistryConfig
	Reputation ReputationConfig
	Policy     PolicyConfig
	Signature  SignatureConfig
	Timeouts   TimeoutsConfig
	NPM        NPMConfig
}

// ToolsConfig names the executables used for each ecosystem
type ToolsConfig struct {
	Pip    string
	Python string
	NPM    string
}

// RegistryConfig overrides registry discovery
type RegistryConfig struct {
	NPM string // empty: ask `npm config get registry`
}

// ReputationConfig configures the reputation service client
type ReputationConfig struct {
	APIURL    string
	APIKeyEnv string
	APIKey    string // resolved at start-up, never read from the config file
}

// NotFoundPolicy selects the verdict for digests unknown to the reputation service
type NotFoundPolicy string

// Not-found policies
const (
	NotFoundAllow NotFoundPolicy = "allow"
	NotFoundWarn  NotFoundPolicy = "warn"
)

// PolicyConfig holds the verdict and override policy
type PolicyConfig struct {
	NotFound           NotFoundPolicy
	AllowBlockOverride bool
	AutoAccept         []VerdictKind // verdict kinds accepted without asking in non-interactive mode
	NonInteractive     bool
}

// SignatureConfig enables the optional detached signature check
type SignatureConfig struct {
	Keyring  string
	Required bool
}

// TimeoutsConfig bounds every blocking call
type TimeoutsConfig struct {
	Command    time.Duration
	Registry   time.Duration
	Download   time.Duration
	Reputation time.Duration
	Install    time.Duration
}

// NPMConfig holds npm install options
type NPMConfig struct {
	Global bool
}

// Default values
const (
	DefaultNPMRegistry   = "https://registry.npmjs.org/"
	DefaultReputationURL = "https://www.virustotal.com/api/v3/files/"
	DefaultAPIKeyEnv     = "VT_API_KEY"
)

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Tools: ToolsConfig{
			Pip:    "pip3",
			Python: "python",
			NPM:    "npm",
		},
		Reputation: ReputationConfig{
			APIURL:    DefaultReputationURL,
			APIKeyEnv: DefaultAPIKeyEnv,
		},
		Policy: PolicyConfig{
			NotFound: NotFoundAllow,
		},
		Timeouts: TimeoutsConfig{
			Command:    30 * time.Second,
			Registry:   20 * time.Second,
			Download:   30 * time.Second,
			Reputation: 30 * time.Second,
			Install:    10 * time.Minute,
		},
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Policy.NotFound {
	case NotFoundAllow, NotFoundWarn:
	default:
		return fmt.Errorf("policy.not_found: unsupported value %q (want allow or warn)", c.Policy.NotFound)
	}
	for _, k := range c.Policy.AutoAccept {
		if k == VerdictBlock {
			return fmt.Errorf("policy.auto_accept: block verdicts cannot be accepted automatically")
		}
		if k != VerdictAllowWithWarning && k != VerdictIndeterminate {
			return fmt.Errorf("policy.auto_accept: unsupported verdict %q", k)
		}
	}
	timeouts := map[string]time.Duration{
		"command":    c.Timeouts.Command,
		"registry":   c.Timeouts.Registry,
		"download":   c.Timeouts.Download,
		"reputation": c.Timeouts.Reputation,
		"install":    c.Timeouts.Install,
	}
	for name, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("timeouts.%s must be positive", name)
		}
	}
	if c.Tools.Pip == "" || c.Tools.Python == "" || c.Tools.NPM == "" {
		return fmt.Errorf("tools: executable names must not be empty")
	}
	return nil
}
