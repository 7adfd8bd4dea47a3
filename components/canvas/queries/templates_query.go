package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-mockboard/components/canvas"
)

// TemplatesInput is the (empty) message for listing templates.
type TemplatesInput struct{}

type templatesService interface {
	Templates() []canvas.Template
}

// TemplatesQuery lists the registered canvas templates.
type TemplatesQuery struct {
	service templatesService
}

// NewTemplatesQuery builds the query.
func NewTemplatesQuery(service templatesService) *TemplatesQuery {
	return &TemplatesQuery{service: service}
}

var _ gocommand.Querier[TemplatesInput, []canvas.Template] = (*TemplatesQuery)(nil)

// Query returns the registered templates sorted by key.
func (q *TemplatesQuery) Query(ctx context.Context, _ TemplatesInput) ([]canvas.Template, error) {
	return q.service.Templates(), nil
}
