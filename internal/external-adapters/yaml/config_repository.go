package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

// ConfigEnvVar names the environment variable that points at a config file
const ConfigEnvVar = "UNIPKG_CONFIG"

// ConfigRepository implements repositories.ConfigRepository using YAML files
type ConfigRepository struct {
	parser  *ConfigParser
	getenv  func(string) string
	homeDir func() (string, error)
}

// NewConfigRepository creates a new YAML-based config repository
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{
		parser:  NewConfigParser(),
		getenv:  os.Getenv,
		homeDir: os.UserHomeDir,
	}
}

// Load reads the configuration. An explicit path must exist; otherwise the
// first file found in the search path wins and no file at all means defaults.
func (r *ConfigRepository) Load(path string) (*entities.Config, error) {
	if path != "" {
		return r.parser.ParseFile(path)
	}
	if env := r.getenv(ConfigEnvVar); env != "" {
		return r.parser.ParseFile(env)
	}

	for _, candidate := range r.SearchPath() {
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", candidate, err)
		}
		return r.parser.ParseFile(candidate)
	}

	return entities.DefaultConfig(), nil
}

// SearchPath lists the implicit config locations in priority order
func (r *ConfigRepository) SearchPath() []string {
	var paths []string
	if xdg := r.getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "unipkg", "config.yaml"))
	}
	if home, err := r.homeDir(); err == nil && home != "" {
		p := filepath.Join(home, ".config", "unipkg", "config.yaml")
		if len(paths) == 0 || paths[0] != p {
			paths = append(paths, p)
		}
	}
	return paths
}
