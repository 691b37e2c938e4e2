package gateways

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
)

// NPMResolverConfig configures an NPMResolver
type NPMResolverConfig struct {
	Tool            string
	Registry        string // empty: discover from npm config
	CommandTimeout  time.Duration
	RegistryTimeout time.Duration
	DownloadTimeout time.Duration
	PackDir         string // where `npm pack` runs; empty means the current directory
	UserAgent       string
}

// NPMResolver locates the tarball npm would install, trying progressively
// cruder sources and stopping at the first one that yields a file.
type NPMResolver struct {
	runner         gateways.CommandRunner
	downloader     *Downloader
	registryClient *http.Client
	cfg            NPMResolverConfig
	scratchBase    string
	logger         interfaces.Logger
}

// NewNPMResolver creates a new npm artifact resolver
func NewNPMResolver(runner gateways.CommandRunner, cfg NPMResolverConfig, logger interfaces.Logger) *NPMResolver {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if cfg.Tool == "" {
		cfg.Tool = "npm"
	}
	if cfg.RegistryTimeout <= 0 {
		cfg.RegistryTimeout = DefaultRegistryTimeout
	}
	return &NPMResolver{
		runner:         runner,
		downloader:     NewDownloader(cfg.DownloadTimeout, cfg.UserAgent, logger),
		registryClient: &http.Client{Timeout: cfg.RegistryTimeout},
		cfg:            cfg,
		logger:         logger,
	}
}

// Resolve produces the tarball for name in a fresh scratch directory
func (r *NPMResolver) Resolve(ctx context.Context, name string) (*entities.ArtifactHandle, error) {
	ref := entities.PackageReference{Name: name, Ecosystem: entities.EcosystemNPM}

	dir, err := newScratchDir(r.scratchBase)
	if err != nil {
		return nil, &entities.ResolutionError{Ref: ref, Reason: fmt.Errorf("%w: %w", entities.ErrIO, err)}
	}

	handle, steps := r.resolveInto(ctx, name, dir)
	if handle != nil {
		return handle, nil
	}

	_ = os.RemoveAll(dir)
	return nil, &entities.ResolutionError{Ref: ref, Reason: entities.ErrNoArtifactFound, Steps: steps}
}

func (r *NPMResolver) resolveInto(ctx context.Context, name, dir string) (*entities.ArtifactHandle, []string) {
	var steps []string
	fail := func(origin entities.ArtifactOrigin, err error) {
		steps = append(steps, fmt.Sprintf("%s: %v", origin, err))
		r.logger.Debug("npm step failed", interfaces.F("package", name), interfaces.F("step", origin), interfaces.Err(err))
	}

	registry := discoverRegistry(ctx, r.runner, r.cfg.Tool, r.cfg.Registry, r.cfg.CommandTimeout)

	var (
		tarballURL string
		origin     entities.ArtifactOrigin
		version    string
	)

	view := r.runner.Run(ctx, gateways.Command{
		Name:        r.cfg.Tool,
		Args:        []string{"view", "--json", "--", name},
		Timeout:     r.cfg.CommandTimeout,
		Description: "npm view",
	})
	if view.Success() {
		manifest, err := parseNPMView(view.Stdout)
		if err != nil {
			fail(entities.OriginNPMViewTarball, err)
		} else {
			version = manifest.Version
			if manifest.Dist.Tarball != "" {
				tarballURL, origin = manifest.Dist.Tarball, entities.OriginNPMViewTarball
			} else {
				fail(entities.OriginNPMViewTarball, fmt.Errorf("metadata has no dist.tarball"))
			}
		}
	} else {
		fail(entities.OriginNPMViewTarball, fmt.Errorf("%s", describeFailure(view)))
	}

	if tarballURL == "" {
		regCtx, cancel := context.WithTimeout(ctx, r.cfg.RegistryTimeout)
		u, err := latestTarball(regCtx, r.registryClient, registry, name)
		cancel()
		if err != nil {
			fail(entities.OriginNPMLatest, err)
		} else {
			tarballURL, origin = u, entities.OriginNPMLatest
		}
	}

	if tarballURL == "" && version != "" {
		u, err := constructTarballURL(registry, name, version)
		if err != nil {
			fail(entities.OriginNPMConstructed, err)
		} else {
			tarballURL, origin = u, entities.OriginNPMConstructed
		}
	}

	if tarballURL != "" {
		dest := filepath.Join(dir, sanitizeFileName(name)+".tgz")
		if err := r.downloader.Download(ctx, tarballURL, dest); err != nil {
			fail(origin, err)
		} else {
			return entities.NewArtifactHandle(dest, entities.EcosystemNPM, tarballURL, origin, dir), steps
		}
	}

	path, err := r.pack(ctx, name, dir)
	if err != nil {
		fail(entities.OriginNPMPack, err)
		return nil, steps
	}
	return entities.NewArtifactHandle(path, entities.EcosystemNPM, "", entities.OriginNPMPack, dir), steps
}

// pack runs `npm pack` and moves the produced archive into dir
func (r *NPMResolver) pack(ctx context.Context, name, dir string) (string, error) {
	packDir := r.cfg.PackDir
	if packDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		packDir = wd
	}

	result := r.runner.Run(ctx, gateways.Command{
		Name:        r.cfg.Tool,
		Args:        []string{"pack", "--", name},
		Dir:         packDir,
		Timeout:     r.cfg.CommandTimeout,
		Description: "npm pack",
	})
	if !result.Success() {
		return "", fmt.Errorf("%s", describeFailure(result))
	}

	lines := strings.Split(strings.TrimSpace(result.Stdout), "\n")
	packed := strings.TrimSpace(lines[len(lines)-1])
	if packed == "" || packed != filepath.Base(packed) {
		return "", fmt.Errorf("unexpected npm pack output %q", packed)
	}

	src := filepath.Join(packDir, packed)
	info, err := os.Stat(src)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("npm pack output %s not found", src)
	}

	dst := filepath.Join(dir, packed)
	if err := moveFile(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}
