// Package events pushes registry change events to websocket subscribers.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"docregistry/internal/registry"
)

const broadcastBuffer = 256

// Hub fans registry events out to connected clients. It implements registry.Observer.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan registry.Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	log        *zap.Logger

	mu    sync.Mutex
	count int
}

// NewHub creates a hub. Call Run to start delivering.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan registry.Event, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.With(zap.String("component", "events")),
	}
}

var _ registry.Observer = (*Hub)(nil)

// Notify queues e for delivery. It never blocks; events are dropped when the queue is full.
func (h *Hub) Notify(e registry.Event) {
	select {
	case h.broadcast <- e:
	default:
		h.log.Warn("event dropped: broadcast queue full", zap.String("kind", string(e.Kind)))
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Run delivers events until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.setCount()
			h.log.Debug("client connected", zap.String("remote", c.remote))

		case c := <-h.unregister:
			if h.clients[c] {
				h.remove(c)
				h.log.Debug("client disconnected", zap.String("remote", c.remote))
			}

		case e := <-h.broadcast:
			payload, err := json.Marshal(e)
			if err != nil {
				h.log.Error("encode event", zap.String("kind", string(e.Kind)), zap.Error(err))
				continue
			}
			for c := range h.clients {
				if !c.wants(e.Kind) {
					continue
				}
				select {
				case c.send <- payload:
				default:
					h.log.Warn("client send buffer full, disconnecting", zap.String("remote", c.remote))
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.setCount()
}

func (h *Hub) setCount() {
	h.mu.Lock()
	h.count = len(h.clients)
	h.mu.Unlock()
}

// parseKinds reads a comma-separated kind filter. An empty filter selects every kind.
func parseKinds(raw string) map[registry.EventKind]bool {
	if raw == "" {
		return nil
	}
	kinds := make(map[registry.EventKind]bool)
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kinds[registry.EventKind(k)] = true
		}
	}
	return kinds
}
