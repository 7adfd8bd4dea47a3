package aiassist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPConfig configures the HTTP assist client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to a remote template-generation and insights service.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting a live assist API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("aiassist: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// GenerateTemplate implements TemplateClient by calling the remote endpoint.
// The response envelope nests the template under a "template" key.
func (c *HTTPClient) GenerateTemplate(ctx context.Context, req TemplateRequest) (GeneratedTemplate, error) {
	var resp struct {
		Template GeneratedTemplate `json:"template"`
	}
	if err := c.do(ctx, http.MethodPost, "/templates/generate", req, &resp); err != nil {
		return GeneratedTemplate{}, err
	}
	return resp.Template, nil
}

// AnalyzeDataset implements InsightsClient via the analyze endpoint.
func (c *HTTPClient) AnalyzeDataset(ctx context.Context, req AnalyzeRequest) (DatasetAnalysis, error) {
	var resp DatasetAnalysis
	if err := c.do(ctx, http.MethodPost, "/datasets/analyze", req, &resp); err != nil {
		return DatasetAnalysis{}, err
	}
	return resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("aiassist: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("aiassist: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("aiassist: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("aiassist: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("aiassist: decode response: %w", err)
	}
	return nil
}
