package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ClearCanvasInput is the (empty) message for clearing the canvas.
type ClearCanvasInput struct{}

type clearService interface {
	ClearCanvas(ctx context.Context) error
}

// ClearCanvasCommand removes every component from the canvas.
type ClearCanvasCommand struct {
	service   clearService
	telemetry Telemetry
}

// NewClearCanvasCommand creates a command instance.
func NewClearCanvasCommand(service clearService, telemetry Telemetry) *ClearCanvasCommand {
	return &ClearCanvasCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ClearCanvasInput] = (*ClearCanvasCommand)(nil)

// Execute delegates to the canvas service.
func (c *ClearCanvasCommand) Execute(ctx context.Context, msg ClearCanvasInput) error {
	if c.service == nil {
		return errors.New("clear command requires service")
	}
	if err := c.service.ClearCanvas(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.clear", nil)
	return nil
}
