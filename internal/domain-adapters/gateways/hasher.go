package gateways

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

const hashBufferSize = 32 * 1024

// sha256Hasher streams files through SHA-256
type sha256Hasher struct{}

// NewHasher creates a new artifact hasher
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewHasher() *sha256Hasher {
	return &sha256Hasher{}
}

// Hash computes the SHA-256 of the file at path without loading it whole
func (h *sha256Hasher) Hash(path string) (entities.ContentDigest, error) {
	//nolint:gosec // G304: Path points into a scratch directory we created
	f, err := os.Open(path)
	if err != nil {
		return entities.ContentDigest{}, &entities.HashError{Path: path, Err: err}
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	sum := sha256.New()
	if _, err := io.CopyBuffer(sum, f, make([]byte, hashBufferSize)); err != nil {
		return entities.ContentDigest{}, &entities.HashError{Path: path, Err: err}
	}

	return entities.NewSHA256Digest(hex.EncodeToString(sum.Sum(nil))), nil
}

// VerifyDigest checks a file against an expected lowercase hex SHA-256
func (h *sha256Hasher) VerifyDigest(path, expected string) error {
	digest, err := h.Hash(path)
	if err != nil {
		return err
	}
	if digest.Hex != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, digest.Hex)
	}
	return nil
}
