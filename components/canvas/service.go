package canvas

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	errMissingTemplateKey = errors.New("canvas: template key is required")
	errMissingComponentID = errors.New("canvas: component id is required")
)

// Options configures the canvas Service. Every collaborator is provided
// via interface so applications can swap implementations without
// importing internal packages.
type Options struct {
	Store     ComponentStore
	Templates TemplateRegistry
	Validator PropertyValidator
	Refresh   RefreshHook
	Telemetry Telemetry
	Layout    LayoutConfig
}

// Service orchestrates one canvas: it owns the live component list via
// the store and runs every batch of new components through the packer.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Store == nil {
		opts.Store = NewInMemoryComponentStore()
	}
	if opts.Templates == nil {
		opts.Templates = NewRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.Refresh == nil {
		opts.Refresh = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	opts.Layout = opts.Layout.normalized()
	return &Service{opts: opts}
}

// Layout exposes the effective layout configuration.
func (s *Service) Layout() LayoutConfig {
	return s.opts.Layout
}

// AddComponents lays out a batch of compact components and appends the
// placed results to the canvas. Z-indexes are offset past the highest
// existing z-index so insertion order stays observable canvas-wide even
// after removals. Components without IDs receive generated ones.
func (s *Service) AddComponents(ctx context.Context, compacts []CompactComponent) (LayoutResult, error) {
	if len(compacts) == 0 {
		return LayoutResult{}, nil
	}
	existing, err := s.opts.Store.List(ctx)
	if err != nil {
		return LayoutResult{}, err
	}

	result := PlaceComponents(ensureIDs(compacts), s.opts.Layout)
	offset := maxZIndex(existing)
	for i := range result.Placed {
		result.Placed[i].ZIndex += offset
	}
	if err := s.opts.Store.Append(ctx, result.Placed); err != nil {
		return LayoutResult{}, err
	}

	if err := s.notify(ctx, CanvasEvent{Reason: "add", ComponentIDs: componentIDs(result.Placed)}); err != nil {
		return LayoutResult{}, err
	}
	s.record(ctx, "canvas.components.add", map[string]any{
		"placed":  len(result.Placed),
		"dropped": len(result.Dropped),
	})
	return result, nil
}

// ApplyTemplate replaces the canvas contents with a template's
// components, freshly placed.
func (s *Service) ApplyTemplate(ctx context.Context, key string) (LayoutResult, error) {
	if key == "" {
		return LayoutResult{}, errMissingTemplateKey
	}
	tpl, ok := s.opts.Templates.Template(key)
	if !ok {
		return LayoutResult{}, fmt.Errorf("canvas: template %s not found", key)
	}
	result := PlaceComponents(ensureIDs(tpl.Components), s.opts.Layout)
	if err := s.opts.Store.ReplaceAll(ctx, result.Placed); err != nil {
		return LayoutResult{}, err
	}
	if err := s.notify(ctx, CanvasEvent{
		Reason:       "template",
		Template:     key,
		ComponentIDs: componentIDs(result.Placed),
	}); err != nil {
		return LayoutResult{}, err
	}
	s.record(ctx, "canvas.template.apply", map[string]any{
		"template": key,
		"placed":   len(result.Placed),
		"dropped":  len(result.Dropped),
	})
	return result, nil
}

// RemoveComponent deletes one component from the canvas.
func (s *Service) RemoveComponent(ctx context.Context, id string) error {
	if id == "" {
		return errMissingComponentID
	}
	if err := s.opts.Store.Remove(ctx, id); err != nil {
		return err
	}
	if err := s.notify(ctx, CanvasEvent{Reason: "remove", ComponentIDs: []string{id}}); err != nil {
		return err
	}
	s.record(ctx, "canvas.component.remove", map[string]any{"component_id": id})
	return nil
}

// ClearCanvas removes every component.
func (s *Service) ClearCanvas(ctx context.Context) error {
	if err := s.opts.Store.Clear(ctx); err != nil {
		return err
	}
	if err := s.notify(ctx, CanvasEvent{Reason: "clear"}); err != nil {
		return err
	}
	s.record(ctx, "canvas.clear", nil)
	return nil
}

// Snapshot returns the current canvas contents.
func (s *Service) Snapshot(ctx context.Context) ([]Component, error) {
	components, err := s.opts.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	s.record(ctx, "canvas.snapshot", map[string]any{"count": len(components)})
	return components, nil
}

// Templates lists the registered templates.
func (s *Service) Templates() []Template {
	return s.opts.Templates.Templates()
}

// NotifyCanvasUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyCanvasUpdated(ctx context.Context, event CanvasEvent) error {
	if err := s.notify(ctx, event); err != nil {
		return err
	}
	s.record(ctx, "canvas.event", map[string]any{"reason": event.Reason})
	return nil
}

func (s *Service) notify(ctx context.Context, event CanvasEvent) error {
	return s.opts.Refresh.CanvasUpdated(ctx, event)
}

func (s *Service) record(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func ensureIDs(compacts []CompactComponent) []CompactComponent {
	out := make([]CompactComponent, len(compacts))
	copy(out, compacts)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}

func maxZIndex(components []Component) int {
	max := 0
	for _, c := range components {
		if c.ZIndex > max {
			max = c.ZIndex
		}
	}
	return max
}

func componentIDs(components []Component) []string {
	ids := make([]string, 0, len(components))
	for _, c := range components {
		ids = append(ids, c.ID)
	}
	return ids
}

type noopRefreshHook struct{}

func (noopRefreshHook) CanvasUpdated(context.Context, CanvasEvent) error { return nil }
