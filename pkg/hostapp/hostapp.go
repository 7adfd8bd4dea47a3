package hostapp

import (
	"context"
	"errors"

	mockboardpkg "github.com/goliatone/go-mockboard/pkg/mockboard"
)

// MenuBuilder ensures mockboard entries exist within the host navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures mockboard link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the canvas service + feature flags into a host shell.
type Config struct {
	EnableMockboard bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *mockboardpkg.Service
	DefaultMenuItem MenuItem
}

// Host exposes helpers for admin-style applications embedding a mockboard.
type Host struct {
	cfg Config
}

// New creates a Host helper that can seed mockboard menus.
func New(cfg Config) (*Host, error) {
	if cfg.EnableMockboard && cfg.Service == nil {
		return nil, errors.New("hostapp: canvas service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "app.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Mockboard"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "mockboard.canvas"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "layout"
	}
	return &Host{cfg: cfg}, nil
}

// Mockboard exposes the configured canvas service when enabled.
func (h *Host) Mockboard() *mockboardpkg.Service {
	if !h.cfg.EnableMockboard {
		return nil
	}
	return h.cfg.Service
}

// Bootstrap seeds menu entries when mockboard support is enabled.
func (h *Host) Bootstrap(ctx context.Context) error {
	if !h.cfg.EnableMockboard || h.cfg.MenuBuilder == nil {
		return nil
	}
	return h.cfg.MenuBuilder.EnsureMenuItem(ctx, h.cfg.MenuCode, h.cfg.DefaultMenuItem)
}
