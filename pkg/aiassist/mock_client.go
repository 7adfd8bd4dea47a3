package aiassist

import (
	"context"
	"sync"

	canvas "github.com/goliatone/go-mockboard/components/canvas"
)

// MockData seeds deterministic assist responses for tests or local demos.
type MockData struct {
	Template GeneratedTemplate
	Analysis DatasetAnalysis
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock assist client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// GenerateTemplate returns the configured template ignoring the prompt.
func (c *MockClient) GenerateTemplate(context.Context, TemplateRequest) (GeneratedTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneTemplate(c.data.Template), nil
}

// AnalyzeDataset returns the configured analysis ignoring the dataset.
func (c *MockClient) AnalyzeDataset(context.Context, AnalyzeRequest) (DatasetAnalysis, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAnalysis(c.data.Analysis), nil
}

func cloneTemplate(t GeneratedTemplate) GeneratedTemplate {
	out := GeneratedTemplate{
		Components: make([]canvas.CompactComponent, len(t.Components)),
	}
	copy(out.Components, t.Components)
	if t.Meta != nil {
		out.Meta = make(map[string]any, len(t.Meta))
		for k, v := range t.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

func cloneAnalysis(a DatasetAnalysis) DatasetAnalysis {
	return DatasetAnalysis{
		Summary:               a.Summary,
		Insights:              append([]string(nil), a.Insights...),
		ChartSuggestions:      append([]string(nil), a.ChartSuggestions...),
		DesignRecommendations: append([]string(nil), a.DesignRecommendations...),
	}
}
