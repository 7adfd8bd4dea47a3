package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-mockboard/components/canvas"
)

// AddComponentsInput carries the compact components to lay out and append.
type AddComponentsInput struct {
	Components []canvas.CompactComponent `json:"components"`
}

type addService interface {
	AddComponents(ctx context.Context, compacts []canvas.CompactComponent) (canvas.LayoutResult, error)
}

// AddComponentsCommand wraps Service.AddComponents so transports can append
// components without linking directly against the service.
type AddComponentsCommand struct {
	service   addService
	telemetry Telemetry
}

// NewAddComponentsCommand creates a command instance.
func NewAddComponentsCommand(service addService, telemetry Telemetry) *AddComponentsCommand {
	return &AddComponentsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddComponentsInput] = (*AddComponentsCommand)(nil)

// Execute delegates to the canvas service.
func (c *AddComponentsCommand) Execute(ctx context.Context, msg AddComponentsInput) error {
	if c.service == nil {
		return errors.New("add command requires service")
	}
	result, err := c.service.AddComponents(ctx, msg.Components)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.components.add", map[string]any{
		"requested": len(msg.Components),
		"placed":    len(result.Placed),
		"dropped":   len(result.Dropped),
	})
	return nil
}
