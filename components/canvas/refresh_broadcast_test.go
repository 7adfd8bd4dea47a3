package canvas

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	event := CanvasEvent{Reason: "add", ComponentIDs: []string{"c1"}}
	if err := hook.CanvasUpdated(context.Background(), event); err != nil {
		t.Fatalf("CanvasUpdated returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e.Reason != event.Reason {
			t.Fatalf("expected reason %s, got %s", event.Reason, e.Reason)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel")
	}
	// Double cancel must not panic.
	cancel()
	if err := hook.CanvasUpdated(context.Background(), CanvasEvent{Reason: "clear"}); err != nil {
		t.Fatalf("CanvasUpdated returned error: %v", err)
	}
}

func TestBroadcastHookReasonFilter(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe("remove", "clear")
	defer cancel()
	ctx := context.Background()
	for _, reason := range []string{"add", "refresh", "remove", "template", "clear"} {
		if err := hook.CanvasUpdated(ctx, CanvasEvent{Reason: reason}); err != nil {
			t.Fatalf("CanvasUpdated returned error: %v", err)
		}
	}
	var got []string
	for {
		select {
		case e := <-ch:
			got = append(got, e.Reason)
			continue
		default:
		}
		break
	}
	if len(got) != 2 || got[0] != "remove" || got[1] != "clear" {
		t.Fatalf("expected only remove and clear events, got %v", got)
	}
}

func TestReasonFilterParsesQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/mockboard/canvas/ws?reasons=add,%20remove,", nil)
	got := reasonFilter(r)
	if len(got) != 2 || got[0] != "add" || got[1] != "remove" {
		t.Fatalf("expected [add remove], got %v", got)
	}
	if reasonFilter(httptest.NewRequest("GET", "/mockboard/canvas/ws", nil)) != nil {
		t.Fatalf("expected nil filter without query parameter")
	}
}

func TestBroadcastHookDropsWhenSubscriberSlow(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	for i := 0; i < 20; i++ {
		if err := hook.CanvasUpdated(context.Background(), CanvasEvent{Reason: "add"}); err != nil {
			t.Fatalf("CanvasUpdated returned error: %v", err)
		}
	}
	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	if received == 0 || received > 8 {
		t.Fatalf("expected buffered delivery capped at channel size, got %d", received)
	}
}
