package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	canvas "github.com/goliatone/go-mockboard/components/canvas"
	"github.com/goliatone/go-mockboard/components/canvas/commands"
	"github.com/goliatone/go-mockboard/components/canvas/queries"
)

type stubCommander[T any] struct {
	calls int
	last  T
	err   error
}

func (s *stubCommander[T]) Execute(_ context.Context, msg T) error {
	s.calls++
	s.last = msg
	return s.err
}

type stubQuerier[I any, O any] struct {
	calls  int
	output O
	err    error
}

func (s *stubQuerier[I, O]) Query(context.Context, I) (O, error) {
	s.calls++
	return s.output, s.err
}

func newTestExecutor() (*CommandExecutor, *stubCommander[commands.AddComponentsInput]) {
	add := &stubCommander[commands.AddComponentsInput]{}
	exec := &CommandExecutor{
		AddCmd:           add,
		ApplyTemplateCmd: &stubCommander[commands.ApplyTemplateInput]{},
		RemoveCmd:        &stubCommander[commands.RemoveComponentInput]{},
		ClearCmd:         &stubCommander[commands.ClearCanvasInput]{},
		RefreshCmd:       &stubCommander[commands.RefreshCanvasInput]{},
		SnapshotQry: &stubQuerier[queries.SnapshotInput, []canvas.Component]{
			output: []canvas.Component{{ID: "c1", Type: canvas.TypeKpiCard}},
		},
		SuggestionsQry: &stubQuerier[queries.SuggestionsInput, queries.SuggestionsOutput]{},
		TemplatesQry: &stubQuerier[queries.TemplatesInput, []canvas.Template]{
			output: []canvas.Template{{Key: "sales-overview"}},
		},
	}
	return exec, add
}

func TestCommandExecutorGuardsNilCommands(t *testing.T) {
	exec := &CommandExecutor{}
	ctx := context.Background()
	if err := exec.Add(ctx, commands.AddComponentsInput{}); err == nil {
		t.Fatalf("expected error for unconfigured add command")
	}
	if _, err := exec.Snapshot(ctx); err == nil {
		t.Fatalf("expected error for unconfigured snapshot query")
	}
	if _, err := exec.Templates(ctx); err == nil {
		t.Fatalf("expected error for unconfigured templates query")
	}
}

func TestHandleAddComponents(t *testing.T) {
	exec, add := newTestExecutor()
	handlers := &Handlers{API: exec}
	body := `{"components": [{"type": "kpi-card", "properties": {"title": "Revenue", "value": 10}}]}`
	req := httptest.NewRequest(http.MethodPost, "/canvas/components", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handlers.HandleAddComponents(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if add.calls != 1 {
		t.Fatalf("expected add command executed")
	}
	if len(add.last.Components) != 1 || add.last.Components[0].Type != canvas.TypeKpiCard {
		t.Fatalf("expected decoded components, got %#v", add.last.Components)
	}
}

func TestHandleAddComponentsRejectsBadJSON(t *testing.T) {
	exec, _ := newTestExecutor()
	handlers := &Handlers{API: exec}
	req := httptest.NewRequest(http.MethodPost, "/canvas/components", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()

	handlers.HandleAddComponents(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleApplyTemplate(t *testing.T) {
	exec, _ := newTestExecutor()
	handlers := &Handlers{API: exec}
	req := httptest.NewRequest(http.MethodPost, "/canvas/templates/apply", strings.NewReader(`{"key": "sales-overview"}`))
	rec := httptest.NewRecorder()

	handlers.HandleApplyTemplate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	apply := exec.ApplyTemplateCmd.(*stubCommander[commands.ApplyTemplateInput])
	if apply.calls != 1 || apply.last.Key != "sales-overview" {
		t.Fatalf("expected apply executed with key, got %#v", apply.last)
	}
}

func TestHandleRemoveComponent(t *testing.T) {
	exec, _ := newTestExecutor()
	handlers := &Handlers{API: exec}
	req := httptest.NewRequest(http.MethodDelete, "/canvas/components/c9", nil)
	rec := httptest.NewRecorder()

	handlers.HandleRemoveComponent(rec, req, "c9")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	remove := exec.RemoveCmd.(*stubCommander[commands.RemoveComponentInput])
	if remove.last.ComponentID != "c9" {
		t.Fatalf("expected component id forwarded, got %q", remove.last.ComponentID)
	}
}

func TestHandleClearCanvas(t *testing.T) {
	exec, _ := newTestExecutor()
	handlers := &Handlers{API: exec}
	req := httptest.NewRequest(http.MethodPost, "/canvas/clear", nil)
	rec := httptest.NewRecorder()

	handlers.HandleClearCanvas(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestHandleRefreshCanvas(t *testing.T) {
	exec, _ := newTestExecutor()
	handlers := &Handlers{API: exec}
	req := httptest.NewRequest(http.MethodPost, "/canvas/refresh", strings.NewReader(`{"event": {"reason": "external"}}`))
	rec := httptest.NewRecorder()

	handlers.HandleRefreshCanvas(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	refresh := exec.RefreshCmd.(*stubCommander[commands.RefreshCanvasInput])
	if refresh.last.Event.Reason != "external" {
		t.Fatalf("expected event decoded, got %#v", refresh.last.Event)
	}
}

func TestHandleSnapshot(t *testing.T) {
	exec, _ := newTestExecutor()
	handlers := &Handlers{API: exec}
	req := httptest.NewRequest(http.MethodGet, "/canvas/_snapshot", nil)
	rec := httptest.NewRecorder()

	handlers.HandleSnapshot(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Components []canvas.Component `json:"components"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Components) != 1 || payload.Components[0].ID != "c1" {
		t.Fatalf("unexpected snapshot payload: %#v", payload)
	}
}

func TestHandleSuggestions(t *testing.T) {
	exec, _ := newTestExecutor()
	handlers := &Handlers{API: exec}
	body := `{"csv": "a,b\n1,2\n", "autoMap": true}`
	req := httptest.NewRequest(http.MethodPost, "/canvas/suggestions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handlers.HandleSuggestions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	suggestions := exec.SuggestionsQry.(*stubQuerier[queries.SuggestionsInput, queries.SuggestionsOutput])
	if suggestions.calls != 1 {
		t.Fatalf("expected suggestions query executed")
	}
}

func TestHandleTemplates(t *testing.T) {
	exec, _ := newTestExecutor()
	handlers := &Handlers{API: exec}
	req := httptest.NewRequest(http.MethodGet, "/canvas/templates", nil)
	rec := httptest.NewRecorder()

	handlers.HandleTemplates(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sales-overview") {
		t.Fatalf("expected template key in response: %s", rec.Body.String())
	}
}
