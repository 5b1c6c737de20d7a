// Package network streams the zoo event log to read-only websocket
// spectators. It never feeds anything back into the engine.
package network

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/rmbenavides/ZooDia/server/internal/events"
	"github.com/rmbenavides/ZooDia/server/internal/platform/logger"
	"github.com/rmbenavides/ZooDia/server/internal/platform/metrics"
	"github.com/rmbenavides/ZooDia/server/internal/platform/optimization"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Hub maintains the set of active spectators and broadcasts events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
	opt        *optimization.Config
}

// NewHub initializes a new WebSocket Hub.
func NewHub(log *logger.Logger, opt *optimization.Config) *Hub {
	if opt == nil {
		opt = optimization.DefaultConfig()
	}
	return &Hub{
		broadcast:  make(chan []byte, opt.BroadcastChannelBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
		opt:        opt,
	}
}

// Run starts the Hub's main loop to handle spectators and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWSConnection(1)
			h.logger.Info("new spectator connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSConnection(-1)
				h.logger.Info("spectator disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					metrics.Get().RecordWSMessage()
				default:
					close(client.send)
					delete(h.clients, client)
					metrics.Get().RecordWSConnection(-1)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastEvent serializes a ZooEvent and sends it to all spectators.
func (h *Hub) BroadcastEvent(event events.ZooEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		metrics.Get().RecordWSError()
		h.logger.Error("failed to serialize ZooEvent for broadcast: %v", err)
		return
	}
	h.broadcast <- payload
}

// StartEventPoller spawns a goroutine that polls the event log and pushes
// new events to the hub. The hub runs independently from the scheduler
// while observing the same append-only log.
func (h *Hub) StartEventPoller(ctx context.Context, eventLog *events.EventLog) {
	go func() {
		pollInterval := time.NewTicker(200 * time.Millisecond)
		defer pollInterval.Stop()

		lastProcessedEvent := 0

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollInterval.C:
				allEvents := eventLog.Replay()
				if len(allEvents) > lastProcessedEvent {
					for _, event := range allEvents[lastProcessedEvent:] {
						h.BroadcastEvent(event)
					}
					lastProcessedEvent = len(allEvents)
				}
			}
		}
	}()
}
