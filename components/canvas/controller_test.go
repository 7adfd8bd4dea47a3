package canvas

import (
	"context"
	"io"
	"strings"
	"testing"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if r.err != nil {
		return "", r.err
	}
	return "<html></html>", nil
}

func TestControllerSnapshotPayload(t *testing.T) {
	service := NewService(Options{})
	ctx := context.Background()
	if _, err := service.AddComponents(ctx, []CompactComponent{
		kpiCompact("Revenue"),
		{Type: TypeTable, Properties: TableProperties{Columns: []string{"A"}, Rows: [][]string{{"1"}}}},
	}); err != nil {
		t.Fatalf("AddComponents returned error: %v", err)
	}

	controller := NewController(service, &stubRenderer{}, WithControllerTitle("Test Board"))
	payload, err := controller.SnapshotPayload(ctx)
	if err != nil {
		t.Fatalf("SnapshotPayload returned error: %v", err)
	}
	if payload.Title != "Test Board" {
		t.Fatalf("expected custom title, got %q", payload.Title)
	}
	if payload.CanvasWidth != 1300 {
		t.Fatalf("expected default canvas width, got %v", payload.CanvasWidth)
	}
	if len(payload.Components) != 2 {
		t.Fatalf("expected 2 component views, got %d", len(payload.Components))
	}
	for _, view := range payload.Components {
		if view.HTML == "" {
			t.Fatalf("expected preview markup for %s", view.ID)
		}
	}
	if !strings.Contains(payload.Components[0].HTML, "kpi-card") {
		t.Fatalf("expected kpi markup, got %q", payload.Components[0].HTML)
	}
}

func TestControllerRenderPage(t *testing.T) {
	service := NewService(Options{})
	ctx := context.Background()
	if _, err := service.AddComponents(ctx, []CompactComponent{kpiCompact("Revenue")}); err != nil {
		t.Fatalf("AddComponents returned error: %v", err)
	}
	renderer := &stubRenderer{}
	controller := NewController(service, renderer)

	html, err := controller.RenderPage(ctx)
	if err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if html == "" {
		t.Fatalf("expected rendered output")
	}
	if renderer.lastTemplate != "canvas" {
		t.Fatalf("expected canvas template to render, got %s", renderer.lastTemplate)
	}
	components, ok := renderer.lastPayload["components"].([]map[string]any)
	if !ok || len(components) != 1 {
		t.Fatalf("expected component maps in payload, got %#v", renderer.lastPayload["components"])
	}
	if components[0]["html"] == "" {
		t.Fatalf("expected inline markup in component payload")
	}
}

func TestControllerRenderPageRequiresRenderer(t *testing.T) {
	controller := NewController(NewService(Options{}), nil)
	if _, err := controller.RenderPage(context.Background()); err == nil {
		t.Fatalf("expected error without renderer")
	}
}
