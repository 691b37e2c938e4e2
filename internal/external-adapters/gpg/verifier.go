// Package gpg verifies detached OpenPGP signatures published next to artifacts.
package gpg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

const (
	maxSignatureSize = 10 * 1024
	maxKeyringSize   = 10 * 1024 * 1024
	armorPrefix      = "-----BEGIN PGP SIGNATURE-----"
)

var (
	// ErrNoKeys is returned when verification is attempted with an empty keyring
	ErrNoKeys = errors.New("no OpenPGP keys loaded")
	// ErrSignatureNotPublished is returned when the signature URL answers 404
	ErrSignatureNotPublished = errors.New("signature not published")
	// ErrBadSignature is returned when the signature does not match the file or keyring
	ErrBadSignature = errors.New("signature verification failed")
	// ErrTooLarge is returned when a downloaded signature or keyring exceeds its size limit
	ErrTooLarge = errors.New("download too large")
)

// Verifier checks detached signatures against a local keyring using ProtonMail's go-crypto
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a new verifier with an empty keyring
func NewVerifier(timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// LoadKeyring imports keys from a file path or an http(s) URL
func (v *Verifier) LoadKeyring(ctx context.Context, source string) error {
	if strings.HasPrefix(source, "https://") || strings.HasPrefix(source, "http://") {
		return v.ImportKeysFromURL(ctx, source)
	}
	return v.ImportKeyFromFile(source)
}

// ImportKeysFromURL imports every key from a published KEYS file
func (v *Verifier) ImportKeysFromURL(ctx context.Context, keysURL string) error {
	body, err := v.fetch(ctx, keysURL, maxKeyringSize)
	if err != nil {
		return fmt.Errorf("failed to download keyring: %w", err)
	}
	return v.addKeys(body)
}

// ImportKeyFromFile imports an armored or binary keyring file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath comes from configuration
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	return v.addKeys(data)
}

func (v *Verifier) addKeys(data []byte) error {
	keys, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		keys, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}
	if len(keys) == 0 {
		return fmt.Errorf("no keys found")
	}
	v.keyring = append(v.keyring, keys...)
	return nil
}

// VerifySignature downloads the detached signature at sigURL and checks filePath against it
func (v *Verifier) VerifySignature(ctx context.Context, filePath, sigURL string) error {
	if len(v.keyring) == 0 {
		return ErrNoKeys
	}

	sig, err := v.fetch(ctx, sigURL, maxSignatureSize)
	if errors.Is(err, ErrTooLarge) {
		return fmt.Errorf("signature too large: %w", err)
	}
	if err != nil {
		return err
	}
	return v.check(filePath, sig)
}

// VerifySignatureFromFile checks filePath against a local detached signature
func (v *Verifier) VerifySignatureFromFile(filePath, sigPath string) error {
	if len(v.keyring) == 0 {
		return ErrNoKeys
	}

	//nolint:gosec // G304: sigPath is user-provided for verification
	sig, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature file: %w", err)
	}
	return v.check(filePath, sig)
}

func (v *Verifier) check(filePath string, sig []byte) error {
	if len(sig) < 10 {
		return fmt.Errorf("%w: signature too small", ErrBadSignature)
	}

	//nolint:gosec // G304: filePath is the artifact being verified
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if bytes.HasPrefix(bytes.TrimSpace(sig), []byte(armorPrefix)) {
		_, err = openpgp.CheckArmoredDetachedSignature(v.keyring, f, bytes.NewReader(sig), nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(v.keyring, f, bytes.NewReader(sig), nil)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadSignature, err)
	}
	return nil
}

func (v *Verifier) fetch(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrSignatureNotPublished
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

// GetKeyringSize returns the number of keys loaded
func (v *Verifier) GetKeyringSize() int {
	return len(v.keyring)
}
