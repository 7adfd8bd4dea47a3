package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-mockboard/components/canvas"
)

// ApplyTemplateInput names the template that should replace the canvas.
type ApplyTemplateInput struct {
	Key string `json:"key"`
}

type applyTemplateService interface {
	ApplyTemplate(ctx context.Context, key string) (canvas.LayoutResult, error)
}

// ApplyTemplateCommand swaps the canvas contents for a registered template.
type ApplyTemplateCommand struct {
	service   applyTemplateService
	telemetry Telemetry
}

// NewApplyTemplateCommand creates a command instance.
func NewApplyTemplateCommand(service applyTemplateService, telemetry Telemetry) *ApplyTemplateCommand {
	return &ApplyTemplateCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ApplyTemplateInput] = (*ApplyTemplateCommand)(nil)

// Execute delegates to the canvas service.
func (c *ApplyTemplateCommand) Execute(ctx context.Context, msg ApplyTemplateInput) error {
	if c.service == nil {
		return errors.New("apply template command requires service")
	}
	result, err := c.service.ApplyTemplate(ctx, msg.Key)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.template.apply", map[string]any{
		"template": msg.Key,
		"placed":   len(result.Placed),
		"dropped":  len(result.Dropped),
	})
	return nil
}
