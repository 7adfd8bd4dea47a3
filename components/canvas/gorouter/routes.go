package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	canvas "github.com/goliatone/go-mockboard/components/canvas"
	"github.com/goliatone/go-mockboard/components/canvas/commands"
	"github.com/goliatone/go-mockboard/components/canvas/httpapi"
	"github.com/goliatone/go-mockboard/components/canvas/queries"
)

// Config wires go-router with the canvas controller, API, and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *canvas.Controller
	API        httpapi.Executor
	Broadcast  *canvas.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for canvas endpoints.
type RouteConfig struct {
	HTML        string
	Snapshot    string
	Components  string
	ComponentID string
	Template    string
	Suggest     string
	Templates   string
	Clear       string
	Refresh     string
	WebSocket   string
}

// Register mounts canvas routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/mockboard"
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		page, err := cfg.Controller.RenderPage(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send([]byte(page))
	}))

	group.Get(routes.Snapshot, router.WrapHandler(func(ctx router.Context) error {
		payload, err := cfg.Controller.SnapshotPayload(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Post(routes.Components, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.AddComponentsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Add(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.ComponentID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("component id is required"))
		}
		if err := api.Remove(ctx.Context(), commands.RemoveComponentInput{ComponentID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Template, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ApplyTemplateInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.ApplyTemplate(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "applied"})
	}))

	r.Get(routes.Templates, router.WrapHandler(func(ctx router.Context) error {
		templates, err := api.Templates(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"templates": templates})
	}))

	r.Post(routes.Suggest, router.WrapHandler(func(ctx router.Context) error {
		var payload queries.SuggestionsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		output, err := api.Suggestions(ctx.Context(), payload)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, output)
	}))

	r.Post(routes.Clear, router.WrapHandler(func(ctx router.Context) error {
		if err := api.Clear(ctx.Context(), commands.ClearCanvasInput{}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "cleared"})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshCanvasInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Refresh(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *canvas.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/canvas"
	}
	if routes.Snapshot == "" {
		routes.Snapshot = "/canvas/_snapshot"
	}
	if routes.Components == "" {
		routes.Components = "/canvas/components"
	}
	if routes.ComponentID == "" {
		routes.ComponentID = "/canvas/components/:id"
	}
	if routes.Template == "" {
		routes.Template = "/canvas/templates/apply"
	}
	if routes.Templates == "" {
		routes.Templates = "/canvas/templates"
	}
	if routes.Suggest == "" {
		routes.Suggest = "/canvas/suggestions"
	}
	if routes.Clear == "" {
		routes.Clear = "/canvas/clear"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/canvas/refresh"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/canvas/ws"
	}
	return routes
}
