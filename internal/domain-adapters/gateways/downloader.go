package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ochairo/unipkg/internal/domain/interfaces"
)

// DefaultDownloadTimeout bounds a single artifact download
const DefaultDownloadTimeout = 30 * time.Second

// ErrHTTPStatus is returned when the server answers with a non-2xx status
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Downloader streams artifacts from URLs to local files
type Downloader struct {
	httpClient *http.Client
	userAgent  string
	logger     interfaces.Logger
}

// NewDownloader creates a new downloader
func NewDownloader(timeout time.Duration, userAgent string, logger interfaces.Logger) *Downloader {
	if timeout <= 0 {
		timeout = DefaultDownloadTimeout
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Downloader{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Download fetches url into dest. A partial file is removed on failure.
func (d *Downloader) Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}

	//nolint:gosec // G304: Destination lives in our scratch directory
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("failed to write file: %w", err)
	}

	d.logger.Debug("downloaded", interfaces.F("url", url), interfaces.F("bytes", written))
	return nil
}
