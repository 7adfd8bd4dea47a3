package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-mockboard/components/canvas"
)

// RefreshCanvasInput emits refresh notifications for the canvas.
type RefreshCanvasInput struct {
	Event canvas.CanvasEvent `json:"event"`
}

type refreshNotifier interface {
	NotifyCanvasUpdated(ctx context.Context, event canvas.CanvasEvent) error
}

// RefreshCanvasCommand triggers refresh hooks without forcing transports.
type RefreshCanvasCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshCanvasCommand creates the command.
func NewRefreshCanvasCommand(service refreshNotifier, telemetry Telemetry) *RefreshCanvasCommand {
	return &RefreshCanvasCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshCanvasInput] = (*RefreshCanvasCommand)(nil)

// Execute notifies the canvas service's refresh hooks.
func (c *RefreshCanvasCommand) Execute(ctx context.Context, msg RefreshCanvasInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if err := c.service.NotifyCanvasUpdated(ctx, msg.Event); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.refresh", map[string]any{
		"reason": msg.Event.Reason,
	})
	return nil
}
