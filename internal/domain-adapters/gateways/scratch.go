package gateways

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScratchPrefix names every temporary directory the resolvers create
const ScratchPrefix = "pkgscan_"

// newScratchDir creates a fresh private directory for one resolution
func newScratchDir(base string) (string, error) {
	dir, err := os.MkdirTemp(base, ScratchPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return dir, nil
}

// firstRegularFile returns the first regular file in dir by name
func firstRegularFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no file in %s", dir)
	}

	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// sanitizeFileName turns a package name into a single safe path element
func sanitizeFileName(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "@", "", ":", "_")
	safe := replacer.Replace(name)
	safe = strings.Trim(safe, ". ")
	if safe == "" {
		return "package"
	}
	return safe
}

// moveFile renames src to dst, copying across filesystems when rename fails
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	//nolint:gosec // G304: Source is the tarball produced by npm pack
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer in.Close()

	//nolint:gosec // G304: Destination lives in our scratch directory
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := out.ReadFrom(in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return os.Remove(src)
}
