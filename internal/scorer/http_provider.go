package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"

	"github.com/lexflow/semdiff/internal/common/errorwrapper"
	"github.com/lexflow/semdiff/internal/config"
)

// HTTPProviderConfig holds transport settings for the HTTP provider.
type HTTPProviderConfig struct {
	Endpoint            string
	Timeout             time.Duration
	DialTimeout         time.Duration
	TLSHandshakeTimeout time.Duration
	IdleConnTimeout     time.Duration
	MaxIdleConns        int
	EnableHTTP2         bool
}

// DefaultHTTPProviderConfig returns default transport configuration.
func DefaultHTTPProviderConfig() HTTPProviderConfig {
	return HTTPProviderConfig{
		Timeout:             time.Duration(config.DefaultScorerTimeoutSecs) * time.Second,
		DialTimeout:         5 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        10,
		EnableHTTP2:         true,
	}
}

// HTTPProvider implements ClassificationProvider over an HTTP JSON endpoint
// speaking the fixed completion contract.
type HTTPProvider struct {
	client   *http.Client
	endpoint string
	logger   zerolog.Logger
}

// NewHTTPProvider creates an HTTP classification provider.
func NewHTTPProvider(cfg HTTPProviderConfig, logger zerolog.Logger) (*HTTPProvider, error) {
	if cfg.Endpoint == "" {
		return nil, errorwrapper.NewValidationError("endpoint", cfg.Endpoint, "provider endpoint cannot be empty")
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		DialContext: (&net.Dialer{
			Timeout: cfg.DialTimeout,
		}).DialContext,
	}

	if cfg.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		}
	}

	return &HTTPProvider{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		endpoint: cfg.Endpoint,
		logger:   logger.With().Str("component", "HTTPProvider").Logger(),
	}, nil
}

// NewHTTPProviderFromScorerConfig builds a provider from the application
// scorer section.
func NewHTTPProviderFromScorerConfig(cfg config.ScorerConfig, logger zerolog.Logger) (*HTTPProvider, error) {
	providerCfg := DefaultHTTPProviderConfig()
	providerCfg.Endpoint = cfg.Endpoint
	if cfg.TimeoutSecs > 0 {
		providerCfg.Timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
	return NewHTTPProvider(providerCfg, logger)
}

// Complete posts the completion request and decodes the fixed response shape.
func (p *HTTPProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to marshal completion request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to build completion request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, errorwrapper.NewCollaboratorError("classification_provider", "complete", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, httpResp.Body)
		_ = httpResp.Body.Close()
	}()

	if httpResp.StatusCode != http.StatusOK {
		return nil, errorwrapper.NewCollaboratorError("classification_provider", "complete",
			fmt.Errorf("unexpected status %d", httpResp.StatusCode))
	}

	var resp CompletionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, errorwrapper.NewCollaboratorError("classification_provider", "complete",
			errorwrapper.WrapError(err, "failed to decode completion response"))
	}

	if resp.LatencyMs == 0 {
		resp.LatencyMs = time.Since(start).Milliseconds()
	}

	return &resp, nil
}
