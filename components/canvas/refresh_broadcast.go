package canvas

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

type subscriber struct {
	ch      chan CanvasEvent
	reasons map[string]struct{}
}

func (s subscriber) wants(event CanvasEvent) bool {
	if len(s.reasons) == 0 {
		return true
	}
	_, ok := s.reasons[event.Reason]
	return ok
}

// BroadcastHook fans out canvas events to in-process subscribers.
// Subscribers can narrow to specific event reasons ("add", "template",
// "remove", "clear", "refresh") so a stream showing only structural
// changes is not woken by refresh ticks.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]subscriber
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]subscriber),
	}
}

// CanvasUpdated satisfies the RefreshHook interface and broadcasts events.
func (h *BroadcastHook) CanvasUpdated(ctx context.Context, event CanvasEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if !sub.wants(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of canvas events and a cancel func. With
// no arguments every event is delivered; passing reasons restricts the
// stream to matching events.
func (h *BroadcastHook) Subscribe(reasons ...string) (<-chan CanvasEvent, func()) {
	sub := subscriber{ch: make(chan CanvasEvent, 8)}
	if len(reasons) > 0 {
		sub.reasons = make(map[string]struct{}, len(reasons))
		for _, reason := range reasons {
			sub.reasons[reason] = struct{}{}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	h.subs[id] = sub
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if existing, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(existing.ch)
		}
	}
	return sub.ch, cancel
}

// reasonFilter reads the optional ?reasons=add,remove query parameter.
func reasonFilter(r *http.Request) []string {
	raw := r.URL.Query().Get("reasons")
	if raw == "" {
		return nil
	}
	var reasons []string
	for _, reason := range strings.Split(raw, ",") {
		if reason = strings.TrimSpace(reason); reason != "" {
			reasons = append(reasons, reason)
		}
	}
	return reasons
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams canvas events as JSON.
// A ?reasons= query parameter narrows the stream.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe(reasonFilter(r)...)
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for refresh events.
// A ?reasons= query parameter narrows the stream.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe(reasonFilter(r)...)
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("data: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
