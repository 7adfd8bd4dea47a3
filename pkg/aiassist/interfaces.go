package aiassist

import (
	"context"

	canvas "github.com/goliatone/go-mockboard/components/canvas"
)

// TemplateRequest describes what the remote generator should design.
type TemplateRequest struct {
	Prompt  string   `json:"prompt"`
	Headers []string `json:"headers,omitempty"`
	Style   string   `json:"style,omitempty"`
}

// GeneratedTemplate is the remote generator's answer: a batch of compact
// components ready for layout, plus opaque generation metadata.
type GeneratedTemplate struct {
	Components []canvas.CompactComponent `json:"components"`
	Meta       map[string]any            `json:"aiMeta,omitempty"`
}

// AnalyzeRequest carries the dataset the remote service should inspect.
type AnalyzeRequest struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
	Prompt  string              `json:"prompt,omitempty"`
}

// DatasetAnalysis is the remote insight report for an uploaded dataset.
type DatasetAnalysis struct {
	Summary               string   `json:"summary"`
	Insights              []string `json:"insights"`
	ChartSuggestions      []string `json:"chartSuggestions"`
	DesignRecommendations []string `json:"designRecommendations"`
}

// TemplateClient generates full canvas templates from a prompt.
type TemplateClient interface {
	GenerateTemplate(ctx context.Context, req TemplateRequest) (GeneratedTemplate, error)
}

// InsightsClient produces narrative analysis for a dataset.
type InsightsClient interface {
	AnalyzeDataset(ctx context.Context, req AnalyzeRequest) (DatasetAnalysis, error)
}

// Client is a convenience union for services implementing all assist calls.
type Client interface {
	TemplateClient
	InsightsClient
}
