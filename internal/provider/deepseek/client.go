// Package deepseek implements the DeepSeek chat-completions provider.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mandalnilabja/pagesmith/internal/config"
	"github.com/mandalnilabja/pagesmith/internal/provider"
)

// maxErrorBody caps how much of an upstream error response is kept for logs.
const maxErrorBody = 512

// Provider implements the provider.Provider interface for DeepSeek.
type Provider struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

var _ provider.Provider = (*Provider)(nil)

// New creates a DeepSeek provider from the loaded configuration.
func New(cfg *config.Config) *Provider {
	return &Provider{
		endpoint: cfg.UpstreamURL,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		// DisableCompression keeps the event stream unbuffered. No client
		// timeout: a generation may legitimately stream for minutes.
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:              http.ProxyFromEnvironment,
				DisableCompression: true,
			},
		},
	}
}

// WithHTTPClient replaces the HTTP client, mainly for tests.
func (p *Provider) WithHTTPClient(client *http.Client) *Provider {
	p.client = client
	return p
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "deepseek"
}

// Model returns the configured model name
func (p *Provider) Model() string {
	return p.model
}

// OpenStream posts the prompt with stream=true and returns the SSE body.
func (p *Provider) OpenStream(ctx context.Context, prompt string) (io.ReadCloser, error) {
	payload, err := json.Marshal(provider.BuildRequest(p.model, prompt))
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create upstream request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &provider.UpstreamError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &provider.UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		if resp.Body != nil {
			resp.Body.Close()
		}
		return nil, &provider.UpstreamError{
			StatusCode: resp.StatusCode,
			Err:        io.ErrUnexpectedEOF,
		}
	}

	return resp.Body, nil
}
