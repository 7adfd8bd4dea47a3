package commands

import (
	"context"
	"errors"
	"testing"

	canvas "github.com/goliatone/go-mockboard/components/canvas"
)

func TestAddComponentsCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewAddComponentsCommand(service, telemetry)
	input := AddComponentsInput{Components: []canvas.CompactComponent{
		{Type: canvas.TypeKpiCard, Properties: canvas.KpiProperties{Title: "Revenue"}},
	}}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.addCalls != 1 {
		t.Fatalf("expected add call")
	}
	if telemetry.calls == 0 {
		t.Fatalf("expected telemetry to record events")
	}
}

func TestAddComponentsCommandPropagatesError(t *testing.T) {
	service := &stubService{err: errors.New("store down")}
	cmd := NewAddComponentsCommand(service, nil)
	if err := cmd.Execute(context.Background(), AddComponentsInput{}); err == nil {
		t.Fatalf("expected error propagated")
	}
}

func TestAddComponentsCommandRequiresService(t *testing.T) {
	cmd := NewAddComponentsCommand(nil, nil)
	if err := cmd.Execute(context.Background(), AddComponentsInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestApplyTemplateCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewApplyTemplateCommand(service, nil)
	if err := cmd.Execute(context.Background(), ApplyTemplateInput{Key: "sales-overview"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.applyCalls != 1 || service.lastTemplate != "sales-overview" {
		t.Fatalf("expected apply call with key, got %d %q", service.applyCalls, service.lastTemplate)
	}
}

func TestRemoveComponentCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewRemoveComponentCommand(service, nil)
	if err := cmd.Execute(context.Background(), RemoveComponentInput{ComponentID: "c1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.removeCalls != 1 || service.lastRemoved != "c1" {
		t.Fatalf("expected remove call for c1")
	}
}

func TestClearCanvasCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewClearCanvasCommand(service, nil)
	if err := cmd.Execute(context.Background(), ClearCanvasInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.clearCalls != 1 {
		t.Fatalf("expected clear call")
	}
}

func TestRefreshCanvasCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewRefreshCanvasCommand(service, nil)
	event := canvas.CanvasEvent{Reason: "external"}
	if err := cmd.Execute(context.Background(), RefreshCanvasInput{Event: event}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.refreshCalls != 1 || service.lastEvent.Reason != "external" {
		t.Fatalf("expected refresh call with event")
	}
}

type stubService struct {
	err          error
	addCalls     int
	applyCalls   int
	removeCalls  int
	clearCalls   int
	refreshCalls int
	lastTemplate string
	lastRemoved  string
	lastEvent    canvas.CanvasEvent
}

func (s *stubService) AddComponents(_ context.Context, compacts []canvas.CompactComponent) (canvas.LayoutResult, error) {
	s.addCalls++
	return canvas.LayoutResult{}, s.err
}

func (s *stubService) ApplyTemplate(_ context.Context, key string) (canvas.LayoutResult, error) {
	s.applyCalls++
	s.lastTemplate = key
	return canvas.LayoutResult{}, s.err
}

func (s *stubService) RemoveComponent(_ context.Context, id string) error {
	s.removeCalls++
	s.lastRemoved = id
	return s.err
}

func (s *stubService) ClearCanvas(context.Context) error {
	s.clearCalls++
	return s.err
}

func (s *stubService) NotifyCanvasUpdated(_ context.Context, event canvas.CanvasEvent) error {
	s.refreshCalls++
	s.lastEvent = event
	return s.err
}

type stubTelemetry struct {
	calls int
}

func (t *stubTelemetry) Record(context.Context, string, map[string]any) {
	t.calls++
}
