package gateways

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces"
)

const (
	// DefaultReputationTimeout bounds one lookup
	DefaultReputationTimeout = 30 * time.Second

	maxErrorBody = 4 * 1024
)

// virusTotalGateway looks artifact digests up in the VirusTotal v3 files API
type virusTotalGateway struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	logger     interfaces.Logger
}

// NewVirusTotalGateway creates a new reputation client.
// An empty apiKey makes every lookup a ServiceError without touching the network.
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewVirusTotalGateway(cfg entities.ReputationConfig, timeout time.Duration, logger interfaces.Logger) *virusTotalGateway {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = entities.DefaultReputationURL
	}
	if timeout <= 0 {
		timeout = DefaultReputationTimeout
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &virusTotalGateway{
		apiURL: strings.TrimRight(apiURL, "/") + "/",
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Query performs exactly one lookup for digest. Failures become ServiceError results.
func (g *virusTotalGateway) Query(ctx context.Context, digest entities.ContentDigest) entities.ReputationResult {
	if g.apiKey == "" {
		return entities.ReputationError(0, entities.ErrMissingCredential.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL+digest.Hex, nil)
	if err != nil {
		return entities.ReputationError(0, err.Error())
	}
	req.Header.Set("x-apikey", g.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Debug("reputation request failed", interfaces.Err(err))
		return entities.ReputationError(0, err.Error())
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return entities.ReputationError(resp.StatusCode, msg)
	}

	var vtResp VTFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&vtResp); err != nil {
		g.logger.Debug("undecodable reputation response", interfaces.Err(err))
		return entities.ReputationError(resp.StatusCode, "malformed response: "+err.Error())
	}
	stats := vtResp.Data.Attributes.LastAnalysisStats
	if stats == nil {
		return entities.ReputationNotFound()
	}

	return entities.ReputationFound(entities.AnalysisStats{
		Malicious:  stats.Malicious,
		Suspicious: stats.Suspicious,
		Harmless:   stats.Harmless,
		Undetected: stats.Undetected,
	})
}

// VirusTotal API response types

// VTFileResponse is the envelope of a /files/{hash} lookup.
type VTFileResponse struct {
	Data VTFileData `json:"data"`
}

// VTFileData holds the file object.
type VTFileData struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Attributes VTFileAttributes `json:"attributes"`
}

// VTFileAttributes contains the analysis summary of a file.
type VTFileAttributes struct {
	LastAnalysisStats *VTAnalysisStats `json:"last_analysis_stats"`
}

// VTAnalysisStats counts engine outcomes from the latest analysis.
type VTAnalysisStats struct {
	Malicious  int `json:"malicious"`
	Suspicious int `json:"suspicious"`
	Harmless   int `json:"harmless"`
	Undetected int `json:"undetected"`
}
