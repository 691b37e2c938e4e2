// Package env resolves secrets from the process environment and an optional .env file.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

// Credentials reads the reputation API key once at start-up
type Credentials struct {
	dotenvFiles []string
	lookup      func(string) (string, bool)
}

// NewCredentials creates a resolver that consults the given .env files.
// With no files it tries ".env" in the working directory.
func NewCredentials(dotenvFiles ...string) *Credentials {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	return &Credentials{
		dotenvFiles: dotenvFiles,
		lookup:      os.LookupEnv,
	}
}

// LoadDotenv loads every existing .env file. Variables already set in the
// environment keep their value; missing files are ignored.
func (c *Credentials) LoadDotenv() error {
	for _, file := range c.dotenvFiles {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// APIKey returns the value of the variable named varName
func (c *Credentials) APIKey(varName string) (string, error) {
	if varName == "" {
		varName = entities.DefaultAPIKeyEnv
	}
	value, ok := c.lookup(varName)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: set %s", entities.ErrMissingCredential, varName)
	}
	return value, nil
}
