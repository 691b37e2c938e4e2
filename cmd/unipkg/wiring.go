package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/unipkg/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/unipkg/internal/domain-orchestrators"
	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces"
	ports "github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
	"github.com/ochairo/unipkg/internal/domain/interfaces/repositories"
	"github.com/ochairo/unipkg/internal/domain/services"
	"github.com/ochairo/unipkg/internal/external-adapters/charmlog"
	"github.com/ochairo/unipkg/internal/external-adapters/env"
	"github.com/ochairo/unipkg/internal/external-adapters/gpg"
	"github.com/ochairo/unipkg/internal/external-adapters/prompt"
	"github.com/ochairo/unipkg/internal/external-adapters/spinner"
	"github.com/ochairo/unipkg/internal/external-adapters/yaml"
)

// digestChecker is the hasher as seen by the scan command
type digestChecker interface {
	ports.Hasher
	VerifyDigest(path, expected string) error
}

// app is the fully wired object graph for one CLI invocation
type app struct {
	cfg       *entities.Config
	logger    *charmlog.Logger
	hasher    digestChecker
	keyring   *gpg.Verifier // nil when no keyring is configured
	verifier  *orchestrators.VerificationOrchestrator
	installer *orchestrators.InstallOrchestrator
}

// newApp loads configuration and credentials and builds every layer:
// adapters, then services, then orchestrators
func newApp(ctx context.Context, opts *globalOptions, stderr io.Writer) (*app, error) {
	var configs repositories.ConfigRepository = yaml.NewConfigRepository()
	cfg, err := configs.Load(opts.configPath)
	if err != nil {
		return nil, &exitError{code: exitUsage, err: fmt.Errorf("failed to load config: %w", err)}
	}
	applyFlags(cfg, opts)

	logger := charmlog.New(stderr, cfg.LogLevel)
	logger.ConfigureFromEnv()
	if opts.verbose {
		logger.SetLogLevel("debug")
	}

	// Credential is read once, before anything runs
	creds := env.NewCredentials()
	if err := creds.LoadDotenv(); err != nil {
		logger.Warn("ignoring .env file", interfaces.Err(err))
	}
	key, err := creds.APIKey(cfg.Reputation.APIKeyEnv)
	if err != nil {
		logger.Warn("reputation lookups will fail", interfaces.Err(err))
	}
	cfg.Reputation.APIKey = key

	var keyring *gpg.Verifier
	if cfg.Signature.Keyring != "" {
		keyring = gpg.NewVerifier(cfg.Timeouts.Download)
		if err := keyring.LoadKeyring(ctx, cfg.Signature.Keyring); err != nil {
			return nil, fmt.Errorf("failed to load signature keyring: %w", err)
		}
		logger.Debug("signature keyring loaded", interfaces.F("keys", keyring.GetKeyringSize()))
	}

	// Layer 1: adapters
	runner := gateways.NewCommandRunner(cfg.Timeouts.Command, logger)
	workDir, _ := os.Getwd() // empty falls back to the process directory
	resolver := gateways.NewCompositeResolver(
		gateways.NewPipResolver(runner, cfg.Tools, cfg.Timeouts.Command, logger),
		gateways.NewNPMResolver(runner, gateways.NPMResolverConfig{
			Tool:            cfg.Tools.NPM,
			Registry:        cfg.Registry.NPM,
			CommandTimeout:  cfg.Timeouts.Command,
			RegistryTimeout: cfg.Timeouts.Registry,
			DownloadTimeout: cfg.Timeouts.Download,
			PackDir:         workDir,
			UserAgent:       "unipkg/" + BuildVersion,
		}, logger),
	)
	hasher := gateways.NewHasher()
	reputation := gateways.NewVirusTotalGateway(cfg.Reputation, cfg.Timeouts.Reputation, logger)
	managers := []ports.PackageManager{
		gateways.NewPipManager(runner, cfg.Tools.Pip, cfg.Timeouts),
		gateways.NewNPMManager(runner, cfg.Tools.NPM, cfg.NPM.Global, cfg.Timeouts),
	}

	var gate ports.OverrideGate
	if cfg.Policy.NonInteractive {
		gate = prompt.NewAutoGate(cfg.Policy.AutoAccept, logger)
	} else {
		gate = prompt.NewSurveyGate(stderr)
	}
	progress := spinner.New(stderr, !cfg.Policy.NonInteractive && spinner.IsTerminal(os.Stderr), logger)

	// Layer 2: services
	verdicts := services.NewVerdictService(cfg.Policy)
	overrides := services.NewOverrideService(gate, cfg.Policy, logger)

	// Layer 3: orchestrators
	verifier := orchestrators.NewVerificationOrchestrator(orchestrators.VerificationDeps{
		Resolver:          resolver,
		Hasher:            hasher,
		Signatures:        gateways.NewSignatureGateway(keyring),
		Reputation:        reputation,
		Verdicts:          verdicts,
		Overrides:         overrides,
		Progress:          progress,
		SignatureRequired: cfg.Signature.Required,
		Logger:            logger,
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		hasher:    hasher,
		keyring:   keyring,
		verifier:  verifier,
		installer: orchestrators.NewInstallOrchestrator(verifier, managers, logger),
	}, nil
}

// applyFlags lets command-line flags win over the config file
func applyFlags(cfg *entities.Config, opts *globalOptions) {
	if opts.allowOverride {
		cfg.Policy.AllowBlockOverride = true
	}
	if opts.nonInteractive {
		cfg.Policy.NonInteractive = true
	}
	if opts.acceptWarnings && !acceptsKind(cfg.Policy.AutoAccept, entities.VerdictAllowWithWarning) {
		cfg.Policy.AutoAccept = append(cfg.Policy.AutoAccept, entities.VerdictAllowWithWarning)
	}
}

func acceptsKind(kinds []entities.VerdictKind, kind entities.VerdictKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
