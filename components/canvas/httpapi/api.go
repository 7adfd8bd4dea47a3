package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	canvas "github.com/goliatone/go-mockboard/components/canvas"
	"github.com/goliatone/go-mockboard/components/canvas/commands"
	"github.com/goliatone/go-mockboard/components/canvas/queries"
)

// Executor is the transport-facing surface over the canvas commands and
// queries. Router integrations depend on this interface instead of the
// concrete command types.
type Executor interface {
	Add(ctx context.Context, input commands.AddComponentsInput) error
	ApplyTemplate(ctx context.Context, input commands.ApplyTemplateInput) error
	Remove(ctx context.Context, input commands.RemoveComponentInput) error
	Clear(ctx context.Context, input commands.ClearCanvasInput) error
	Refresh(ctx context.Context, input commands.RefreshCanvasInput) error
	Snapshot(ctx context.Context) ([]canvas.Component, error)
	Suggestions(ctx context.Context, input queries.SuggestionsInput) (queries.SuggestionsOutput, error)
	Templates(ctx context.Context) ([]canvas.Template, error)
}

// CommandExecutor bundles the shared commands and queries into an Executor.
type CommandExecutor struct {
	AddCmd           gocommand.Commander[commands.AddComponentsInput]
	ApplyTemplateCmd gocommand.Commander[commands.ApplyTemplateInput]
	RemoveCmd        gocommand.Commander[commands.RemoveComponentInput]
	ClearCmd         gocommand.Commander[commands.ClearCanvasInput]
	RefreshCmd       gocommand.Commander[commands.RefreshCanvasInput]
	SnapshotQry      gocommand.Querier[queries.SnapshotInput, []canvas.Component]
	SuggestionsQry   gocommand.Querier[queries.SuggestionsInput, queries.SuggestionsOutput]
	TemplatesQry     gocommand.Querier[queries.TemplatesInput, []canvas.Template]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Add(ctx context.Context, input commands.AddComponentsInput) error {
	if e.AddCmd == nil {
		return errors.New("httpapi: add command is not configured")
	}
	return e.AddCmd.Execute(ctx, input)
}

func (e *CommandExecutor) ApplyTemplate(ctx context.Context, input commands.ApplyTemplateInput) error {
	if e.ApplyTemplateCmd == nil {
		return errors.New("httpapi: apply template command is not configured")
	}
	return e.ApplyTemplateCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveComponentInput) error {
	if e.RemoveCmd == nil {
		return errors.New("httpapi: remove command is not configured")
	}
	return e.RemoveCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Clear(ctx context.Context, input commands.ClearCanvasInput) error {
	if e.ClearCmd == nil {
		return errors.New("httpapi: clear command is not configured")
	}
	return e.ClearCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshCanvasInput) error {
	if e.RefreshCmd == nil {
		return errors.New("httpapi: refresh command is not configured")
	}
	return e.RefreshCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Snapshot(ctx context.Context) ([]canvas.Component, error) {
	if e.SnapshotQry == nil {
		return nil, errors.New("httpapi: snapshot query is not configured")
	}
	return e.SnapshotQry.Query(ctx, queries.SnapshotInput{})
}

func (e *CommandExecutor) Suggestions(ctx context.Context, input queries.SuggestionsInput) (queries.SuggestionsOutput, error) {
	if e.SuggestionsQry == nil {
		return queries.SuggestionsOutput{}, errors.New("httpapi: suggestions query is not configured")
	}
	return e.SuggestionsQry.Query(ctx, input)
}

func (e *CommandExecutor) Templates(ctx context.Context) ([]canvas.Template, error) {
	if e.TemplatesQry == nil {
		return nil, errors.New("httpapi: templates query is not configured")
	}
	return e.TemplatesQry.Query(ctx, queries.TemplatesInput{})
}

// Handlers exposes plain net/http endpoints backed by the executor.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleAddComponents(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddComponentsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Add(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var payload commands.ApplyTemplateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.ApplyTemplate(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRemoveComponent(w http.ResponseWriter, r *http.Request, componentID string) {
	if err := h.API.Remove(r.Context(), commands.RemoveComponentInput{ComponentID: componentID}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleClearCanvas(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Clear(r.Context(), commands.ClearCanvasInput{}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleRefreshCanvas(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshCanvasInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	components, err := h.API.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"components": components})
}

func (h *Handlers) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	var payload queries.SuggestionsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	output, err := h.API.Suggestions(r.Context(), payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *Handlers) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.API.Templates(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
