package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Event names sent on /events.
const (
	eventConnected   = "connected"
	eventConfigSaved = "config_saved"
	eventPing        = "ping"
)

// sseHub fans events out to connected browser tabs, so a tab can notice
// that another tab (or the CLI through the same server) saved the file.
type sseHub struct {
	subscribe   chan chan string
	unsubscribe chan chan string
	broadcast   chan string
	quit        chan struct{}
	clients     map[chan string]struct{}

	stopOnce sync.Once
}

func newSSEHub() *sseHub {
	return &sseHub{
		subscribe:   make(chan chan string),
		unsubscribe: make(chan chan string, 8),
		broadcast:   make(chan string, 64),
		quit:        make(chan struct{}),
		clients:     make(map[chan string]struct{}),
	}
}

// run is the hub's event loop and the only goroutine touching clients.
func (h *sseHub) run() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case ch := <-h.subscribe:
			h.clients[ch] = struct{}{}

		case ch := <-h.unsubscribe:
			delete(h.clients, ch)
			close(ch)

		case msg := <-h.broadcast:
			h.fanOut(msg)

		case <-ticker.C:
			h.fanOut(formatEvent(eventPing, "{}"))

		case <-h.quit:
			for ch := range h.clients {
				close(ch)
			}
			h.clients = nil
			return
		}
	}
}

// stop ends run and closes every client stream. Safe to call twice.
func (h *sseHub) stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// fanOut never blocks: a client whose buffer is full misses the message.
func (h *sseHub) fanOut(msg string) {
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

// emit queues a named event whose data is v encoded as JSON. Events are
// dropped when the broadcast queue is full.
func (h *sseHub) emit(event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte("{}")
	}
	select {
	case h.broadcast <- formatEvent(event, string(data)):
	default:
	}
}

func formatEvent(event, data string) string {
	return fmt.Sprintf("event: %s\ndata: %s\n\n", event, data)
}

// handleSSE streams hub events until the client goes away or the server
// stops.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		jsonError(w, http.StatusInternalServerError, "web: events: streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan string, 32)
	select {
	case s.hub.subscribe <- ch:
	case <-s.hub.quit:
		return
	}
	defer func() {
		select {
		case s.hub.unsubscribe <- ch:
		case <-s.hub.quit:
		}
	}()

	if _, err := fmt.Fprint(w, formatEvent(eventConnected, "{}")); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case msg, open := <-ch:
			if !open {
				return
			}
			fmt.Fprint(w, msg)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
