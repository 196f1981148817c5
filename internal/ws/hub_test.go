package ws_test

import (
	"testing"
	"time"

	"trolli/internal/ws"
)

func TestHub_NotifyWithoutClients(t *testing.T) {
	h := ws.NewHub()
	go h.Run()
	defer h.Stop()

	done := make(chan struct{})
	go func() {
		h.Notify("eva", ws.Event{Type: "views/refresh"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notify blocked with no clients connected")
	}
}

func TestHub_StopTerminatesRun(t *testing.T) {
	h := ws.NewHub()
	stopped := make(chan struct{})
	go func() {
		h.Run()
		close(stopped)
	}()

	h.Stop()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub loop kept running after Stop")
	}
}

func TestHub_NotifyAfterStopDropsEvent(t *testing.T) {
	h := ws.NewHub()
	h.Stop()

	done := make(chan struct{})
	go func() {
		h.Notify("eva", ws.Event{Type: "views/refresh"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notify blocked after Stop")
	}
}
