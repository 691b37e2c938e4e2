package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
)

// DefaultRegistryTimeout bounds the registry "latest" lookup
const DefaultRegistryTimeout = 20 * time.Second

// npmManifest is the subset of npm package metadata we read
type npmManifest struct {
	Version string `json:"version"`
	Dist    struct {
		Tarball string `json:"tarball"`
	} `json:"dist"`
}

// normalizeRegistry guarantees exactly one trailing slash
func normalizeRegistry(registry string) string {
	return strings.TrimRight(strings.TrimSpace(registry), "/") + "/"
}

// discoverRegistry returns override if set, else asks npm, else the public registry
func discoverRegistry(ctx context.Context, runner gateways.CommandRunner, npmTool, override string, timeout time.Duration) string {
	if strings.TrimSpace(override) != "" {
		return normalizeRegistry(override)
	}

	result := runner.Run(ctx, gateways.Command{
		Name:        npmTool,
		Args:        []string{"config", "get", "registry"},
		Timeout:     timeout,
		Description: "npm config get registry",
	})
	if result.Success() {
		reg := strings.TrimSpace(result.Stdout)
		if reg != "" && reg != "undefined" {
			return normalizeRegistry(reg)
		}
	}
	return entities.DefaultNPMRegistry
}

// encodePackageName percent-encodes a package name for a registry path,
// leaving unreserved characters plus '@' and '/' alone so scopes stay readable.
func encodePackageName(name string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~', c == '@', c == '/':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}

// parseNPMView decodes `npm view --json` output, which is an object or,
// when several versions match, an array whose last element is the newest.
func parseNPMView(out string) (*npmManifest, error) {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, fmt.Errorf("empty npm view output")
	}

	if strings.HasPrefix(out, "[") {
		var list []npmManifest
		if err := json.Unmarshal([]byte(out), &list); err != nil {
			return nil, fmt.Errorf("failed to parse npm view output: %w", err)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("npm view returned no versions")
		}
		return &list[len(list)-1], nil
	}

	var m npmManifest
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		return nil, fmt.Errorf("failed to parse npm view output: %w", err)
	}
	return &m, nil
}

// latestTarball asks the registry for the latest manifest and returns its tarball URL
func latestTarball(ctx context.Context, client *http.Client, registry, name string) (string, error) {
	url := registry + encodePackageName(name) + "/latest"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("registry request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("registry returned %s", resp.Status)
	}

	var m npmManifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return "", fmt.Errorf("failed to decode registry response: %w", err)
	}
	if m.Dist.Tarball == "" {
		return "", fmt.Errorf("registry response has no dist.tarball")
	}
	return m.Dist.Tarball, nil
}

// constructTarballURL builds the conventional tarball location:
// registry/name/-/name-version.tgz, or registry/scope/name/-/name-version.tgz
// for @scope/name.
func constructTarballURL(registry, name, version string) (string, error) {
	v, err := semver.StrictNewVersion(strings.TrimSpace(version))
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", version, err)
	}

	if strings.HasPrefix(name, "@") {
		scope, bare, ok := strings.Cut(name, "/")
		if !ok || bare == "" {
			return "", fmt.Errorf("malformed scoped package name %q", name)
		}
		return fmt.Sprintf("%s%s/%s/-/%s-%s.tgz", registry, strings.TrimPrefix(scope, "@"), bare, bare, v.Original()), nil
	}
	return fmt.Sprintf("%s%s/-/%s-%s.tgz", registry, name, name, v.Original()), nil
}
