package mockboard

import (
	core "github.com/goliatone/go-mockboard/components/canvas"
)

// Service exposes the underlying components/canvas.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// LayoutConfig re-export so callers can tune the packer without importing
// the component package directly.
type LayoutConfig = core.LayoutConfig

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// DefaultLayoutConfig proxies to the internal defaults.
func DefaultLayoutConfig() LayoutConfig {
	return core.DefaultLayoutConfig()
}
