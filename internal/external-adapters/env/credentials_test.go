package env

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

func TestCredentials_APIKey(t *testing.T) {
	t.Setenv("UNIPKG_TEST_KEY", "  abc123  ")

	c := NewCredentials()
	key, err := c.APIKey("UNIPKG_TEST_KEY")
	if err != nil {
		t.Fatalf("APIKey() error = %v", err)
	}
	if key != "abc123" {
		t.Errorf("APIKey() = %q", key)
	}
}

func TestCredentials_APIKey_Missing(t *testing.T) {
	c := NewCredentials()
	c.lookup = func(string) (string, bool) { return "", false }

	_, err := c.APIKey("")
	if !errors.Is(err, entities.ErrMissingCredential) {
		t.Errorf("APIKey() error = %v, want ErrMissingCredential", err)
	}
}

func TestCredentials_LoadDotenv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	content := "UNIPKG_DOTENV_ONLY=from-file\nUNIPKG_DOTENV_BOTH=from-file\n"
	if err := os.WriteFile(dotenv, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("UNIPKG_DOTENV_BOTH", "from-env")
	t.Setenv("UNIPKG_DOTENV_ONLY", "")
	if err := os.Unsetenv("UNIPKG_DOTENV_ONLY"); err != nil {
		t.Fatal(err)
	}

	c := NewCredentials(dotenv, filepath.Join(dir, "missing.env"))
	if err := c.LoadDotenv(); err != nil {
		t.Fatalf("LoadDotenv() error = %v", err)
	}

	if got, _ := c.APIKey("UNIPKG_DOTENV_ONLY"); got != "from-file" {
		t.Errorf("UNIPKG_DOTENV_ONLY = %q, want from-file", got)
	}
	if got, _ := c.APIKey("UNIPKG_DOTENV_BOTH"); got != "from-env" {
		t.Errorf("UNIPKG_DOTENV_BOTH = %q, the environment must win", got)
	}
}
