package canvas

import (
	"context"
	"errors"
	"fmt"
)

var errMissingRenderer = errors.New("canvas: renderer is required")

// Controller turns canvas snapshots into server-rendered pages.
type Controller struct {
	service  *Service
	renderer Renderer
	preview  *EChartsPreview
	title    string
}

// ControllerOption customizes the controller.
type ControllerOption func(*Controller)

// WithControllerPreview overrides the preview renderer.
func WithControllerPreview(preview *EChartsPreview) ControllerOption {
	return func(c *Controller) {
		c.preview = preview
	}
}

// WithControllerTitle sets the page title.
func WithControllerTitle(title string) ControllerOption {
	return func(c *Controller) {
		c.title = title
	}
}

// NewController wires the service and template renderer into a controller.
func NewController(service *Service, renderer Renderer, options ...ControllerOption) *Controller {
	c := &Controller{
		service:  service,
		renderer: renderer,
		preview:  NewEChartsPreview(),
		title:    "Dashboard Mockup",
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// ComponentView is one placed component plus its rendered preview markup.
type ComponentView struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ZIndex int     `json:"zIndex"`
	HTML   string  `json:"html"`
}

// PagePayload is the template context for the canvas page.
type PagePayload struct {
	Title       string          `json:"title"`
	CanvasWidth float64         `json:"canvasWidth"`
	Components  []ComponentView `json:"components"`
}

// SnapshotPayload builds the page payload from the current canvas.
func (c *Controller) SnapshotPayload(ctx context.Context) (PagePayload, error) {
	components, err := c.service.Snapshot(ctx)
	if err != nil {
		return PagePayload{}, err
	}
	views := make([]ComponentView, 0, len(components))
	for _, component := range components {
		markup, err := c.preview.Render(component)
		if err != nil {
			return PagePayload{}, fmt.Errorf("canvas: render component %s: %w", component.ID, err)
		}
		views = append(views, ComponentView{
			ID:     component.ID,
			Type:   string(component.Type),
			X:      component.Position.X,
			Y:      component.Position.Y,
			Width:  component.Size.Width,
			Height: component.Size.Height,
			ZIndex: component.ZIndex,
			HTML:   markup,
		})
	}
	return PagePayload{
		Title:       c.title,
		CanvasWidth: c.service.Layout().CanvasWidth,
		Components:  views,
	}, nil
}

// RenderPage renders the full canvas page HTML.
func (c *Controller) RenderPage(ctx context.Context) (string, error) {
	if c.renderer == nil {
		return "", errMissingRenderer
	}
	payload, err := c.SnapshotPayload(ctx)
	if err != nil {
		return "", err
	}
	components := make([]map[string]any, 0, len(payload.Components))
	for _, view := range payload.Components {
		components = append(components, map[string]any{
			"id":     view.ID,
			"type":   view.Type,
			"x":      view.X,
			"y":      view.Y,
			"width":  view.Width,
			"height": view.Height,
			"zIndex": view.ZIndex,
			"html":   view.HTML,
		})
	}
	return c.renderer.Render("canvas", map[string]any{
		"title":       payload.Title,
		"canvasWidth": payload.CanvasWidth,
		"components":  components,
	})
}
