package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RemoveComponentInput identifies the component to delete.
type RemoveComponentInput struct {
	ComponentID string `json:"componentId"`
}

type removeService interface {
	RemoveComponent(ctx context.Context, id string) error
}

// RemoveComponentCommand deletes a single component from the canvas.
type RemoveComponentCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemoveComponentCommand creates a command instance.
func NewRemoveComponentCommand(service removeService, telemetry Telemetry) *RemoveComponentCommand {
	return &RemoveComponentCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveComponentInput] = (*RemoveComponentCommand)(nil)

// Execute delegates to the canvas service.
func (c *RemoveComponentCommand) Execute(ctx context.Context, msg RemoveComponentInput) error {
	if c.service == nil {
		return errors.New("remove command requires service")
	}
	if err := c.service.RemoveComponent(ctx, msg.ComponentID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.component.remove", map[string]any{
		"component_id": msg.ComponentID,
	})
	return nil
}
