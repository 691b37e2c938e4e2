package yaml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestRepository(env map[string]string, home string) *ConfigRepository {
	r := NewConfigRepository()
	r.getenv = func(k string) string { return env[k] }
	r.homeDir = func() (string, error) {
		if home == "" {
			return "", errors.New("no home")
		}
		return home, nil
	}
	return r
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestConfigRepository_Load_SearchOrder(t *testing.T) {
	root := t.TempDir()
	explicit := filepath.Join(root, "explicit.yaml")
	fromEnv := filepath.Join(root, "env.yaml")
	xdg := filepath.Join(root, "xdg")
	home := filepath.Join(root, "home")

	writeConfig(t, explicit, "log_level: explicit\n")
	writeConfig(t, fromEnv, "log_level: env\n")
	writeConfig(t, filepath.Join(xdg, "unipkg", "config.yaml"), "log_level: xdg\n")
	writeConfig(t, filepath.Join(home, ".config", "unipkg", "config.yaml"), "log_level: home\n")

	tests := []struct {
		name string
		path string
		env  map[string]string
		want string
	}{
		{name: "flag", path: explicit, env: map[string]string{ConfigEnvVar: fromEnv, "XDG_CONFIG_HOME": xdg}, want: "explicit"},
		{name: "env var", env: map[string]string{ConfigEnvVar: fromEnv, "XDG_CONFIG_HOME": xdg}, want: "env"},
		{name: "xdg", env: map[string]string{"XDG_CONFIG_HOME": xdg}, want: "xdg"},
		{name: "home", env: map[string]string{"XDG_CONFIG_HOME": filepath.Join(root, "empty")}, want: "home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := newTestRepository(tt.env, home).Load(tt.path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.LogLevel != tt.want {
				t.Errorf("Load() picked %q, want %q", cfg.LogLevel, tt.want)
			}
		})
	}
}

func TestConfigRepository_Load_NoFileUsesDefaults(t *testing.T) {
	cfg, err := newTestRepository(nil, t.TempDir()).Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "info" || cfg.Tools.Pip != "pip3" {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestConfigRepository_Load_ExplicitMissing(t *testing.T) {
	_, err := newTestRepository(nil, "").Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Load() should fail when an explicit config is missing")
	}
}

func TestConfigRepository_Load_InvalidFileSurfaces(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, filepath.Join(home, ".config", "unipkg", "config.yaml"), "policy:\n  not_found: nope\n")

	if _, err := newTestRepository(nil, home).Load(""); err == nil {
		t.Error("Load() should report an invalid config instead of falling back")
	}
}
