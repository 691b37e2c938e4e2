// Package repositories defines interfaces for data access layers.
package repositories

import "github.com/ochairo/unipkg/internal/domain/entities"

// ConfigRepository defines the interface for loading runtime configuration
type ConfigRepository interface {
	// Load reads the configuration at path, or the first file found on the
	// default search path when path is empty. A missing default file yields defaults.
	Load(path string) (*entities.Config, error)
}
