package gateways

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

const testDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func newTestVirusTotal(url, key string) *virusTotalGateway {
	return NewVirusTotalGateway(entities.ReputationConfig{APIURL: url, APIKey: key}, 2*time.Second, nil)
}

// Test creating a new reputation gateway
func TestNewVirusTotalGateway(t *testing.T) {
	g := NewVirusTotalGateway(entities.ReputationConfig{}, 0, nil)

	if g.apiURL != "https://www.virustotal.com/api/v3/files/" {
		t.Errorf("API URL = %s", g.apiURL)
	}
	if g.httpClient.Timeout != DefaultReputationTimeout {
		t.Errorf("Timeout = %v, want %v", g.httpClient.Timeout, DefaultReputationTimeout)
	}
}

func TestVirusTotalGateway_Query(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind entities.ReputationKind
		wantCode int
		wantMsg  string
		want     entities.AnalysisStats
	}{
		{
			name:     "found",
			status:   http.StatusOK,
			body:     `{"data":{"id":"x","type":"file","attributes":{"last_analysis_stats":{"malicious":3,"suspicious":1,"harmless":60,"undetected":7,"timeout":0}}}}`,
			wantKind: entities.ReputationKindFound,
			want:     entities.AnalysisStats{Malicious: 3, Suspicious: 1, Harmless: 60, Undetected: 7},
		},
		{
			name:     "missing counters default to zero",
			status:   http.StatusOK,
			body:     `{"data":{"attributes":{"last_analysis_stats":{"harmless":70}}}}`,
			wantKind: entities.ReputationKindFound,
			want:     entities.AnalysisStats{Harmless: 70},
		},
		{
			name:     "no stats object",
			status:   http.StatusOK,
			body:     `{"data":{"attributes":{}}}`,
			wantKind: entities.ReputationKindNotFound,
		},
		{
			name:     "undecodable body",
			status:   http.StatusOK,
			body:     `<html>`,
			wantKind: entities.ReputationKindServiceError,
			wantCode: http.StatusOK,
			wantMsg:  "malformed response",
		},
		{
			name:     "counter with wrong type",
			status:   http.StatusOK,
			body:     `{"data":{"attributes":{"last_analysis_stats":{"malicious":"3"}}}}`,
			wantKind: entities.ReputationKindServiceError,
			wantCode: http.StatusOK,
			wantMsg:  "malformed response",
		},
		{
			name:     "not found status",
			status:   http.StatusNotFound,
			body:     `{"error":{"code":"NotFoundError"}}`,
			wantKind: entities.ReputationKindServiceError,
			wantCode: http.StatusNotFound,
			wantMsg:  "NotFoundError",
		},
		{
			name:     "quota",
			status:   http.StatusTooManyRequests,
			body:     "",
			wantKind: entities.ReputationKindServiceError,
			wantCode: http.StatusTooManyRequests,
			wantMsg:  "Too Many Requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("Method = %s, want GET", r.Method)
				}
				if got := r.Header.Get("x-apikey"); got != "secret" {
					t.Errorf("x-apikey = %q", got)
				}
				if !strings.HasSuffix(r.URL.Path, "/"+testDigest) {
					t.Errorf("path = %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			got := newTestVirusTotal(server.URL+"/api/v3/files", "secret").Query(context.Background(), entities.NewSHA256Digest(testDigest))

			if got.Kind != tt.wantKind {
				t.Fatalf("Kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if got.Stats != tt.want {
				t.Errorf("Stats = %+v, want %+v", got.Stats, tt.want)
			}
			if got.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", got.Code, tt.wantCode)
			}
			if !strings.Contains(got.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestVirusTotalGateway_Query_ErrorBodyIsBounded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", 64*1024)))
	}))
	defer server.Close()

	got := newTestVirusTotal(server.URL, "secret").Query(context.Background(), entities.NewSHA256Digest(testDigest))
	if len(got.Message) > maxErrorBody {
		t.Errorf("Message length = %d, want <= %d", len(got.Message), maxErrorBody)
	}
}

func TestVirusTotalGateway_Query_MissingCredential(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	got := newTestVirusTotal(server.URL, "").Query(context.Background(), entities.NewSHA256Digest(testDigest))

	if got.Kind != entities.ReputationKindServiceError || got.Code != 0 {
		t.Errorf("Query() = %+v, want ServiceError code 0", got)
	}
	if hits.Load() != 0 {
		t.Error("Query() sent a request without a credential")
	}
}

func TestVirusTotalGateway_Query_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	got := newTestVirusTotal(url, "secret").Query(context.Background(), entities.NewSHA256Digest(testDigest))
	if got.Kind != entities.ReputationKindServiceError || got.Code != 0 {
		t.Errorf("Query() = %+v, want ServiceError code 0", got)
	}
}

func TestVirusTotalGateway_Query_ExactlyOneRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_ = newTestVirusTotal(server.URL, "secret").Query(context.Background(), entities.NewSHA256Digest(testDigest))
	if hits.Load() != 1 {
		t.Errorf("requests = %d, want 1", hits.Load())
	}
}
