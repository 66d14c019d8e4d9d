// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/pelorus/internal/layers"
	"github.com/tomtom215/pelorus/internal/logging"
	"github.com/tomtom215/pelorus/internal/metrics"
	"github.com/tomtom215/pelorus/internal/models"
	syncpkg "github.com/tomtom215/pelorus/internal/sync"
)

// Message types pushed to connected map consoles.
const (
	MessageTypePing            = "ping"
	MessageTypePong            = "pong"
	MessageTypeStatus          = "status"
	MessageTypeSnapshotApplied = "snapshot_applied"
	MessageTypeLayerAttach     = "layer_attach"
	MessageTypeLayerDetach     = "layer_detach"
	MessageTypeClearAll        = "clear_all"
	MessageTypeCameraFlyTo     = "camera_fly_to"
	MessageTypeCameraFit       = "camera_fit_bounds"
)

// Message is one WebSocket frame.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of connected map consoles and broadcasts state
// changes to them. It is the presentation bridge for three core ports:
// sync.StatusNotifier, layers.ViewProvider and viewport.Camera.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a hub. Run it under the supervision tree via Serve.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// String identifies the service in supervisor logs.
func (h *Hub) String() string {
	return "websocket-hub"
}

// Serve implements suture.Service. It processes client lifecycle and
// broadcast events until ctx is cancelled, then closes every client.
//
// DETERMINISM: Uses priority-based selection so behavior is predictable
// when multiple channels are ready: shutdown first, then client lifecycle,
// then broadcasts. Go's select picks randomly among ready channels, which
// would otherwise let a broadcast race a disconnecting client.
func (h *Hub) Serve(ctx context.Context) error {
	for {
		// Priority 1: shutdown (non-blocking check).
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		// Priority 2: client lifecycle (non-blocking check).
		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		// Priority 3: broadcasts, or block for any event.
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	count := len(h.clients)
	h.mu.Unlock()

	metrics.WebSocketClients.Set(float64(count))
	logging.Info().Int("total_clients", count).Msg("websocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.WebSocketClients.Set(float64(count))
	logging.Info().Int("total_clients", count).Msg("websocket client disconnected")
}

// shutdown closes all connected clients and logs the reason. Context
// cancellation is expected during graceful shutdown and is deliberately
// not logged as an error.
func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	clients := sortedClientsLocked(h.clients)
	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	metrics.WebSocketClients.Set(0)

	reason := "context_canceled"
	if ctx.Err() == context.DeadlineExceeded {
		reason = "context_deadline"
	}
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", reason).
		Int("clients_closed", len(clients)).
		Msg("websocket hub stopped")
}

// broadcastToClients sends a message to all connected clients.
// DETERMINISM: clients are sorted by ID so delivery order is consistent
// within a process run. Clients whose send buffer is full are dropped.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := sortedClientsLocked(h.clients)

	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- message:
			metrics.WebSocketMessagesSent.WithLabelValues(message.Type).Inc()
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
	}
	if len(toRemove) > 0 {
		metrics.WebSocketClients.Set(float64(len(h.clients)))
		logging.Warn().Int("dropped", len(toRemove)).Msg("dropped slow websocket clients")
	}
}

func sortedClientsLocked(set map[*Client]bool) []*Client {
	clients := make([]*Client, 0, len(set))
	for client := range set {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// send enqueues a broadcast, dropping it if the channel is full. State
// broadcasts are advisory; a reconnecting console resyncs via the REST API.
func (h *Hub) send(messageType string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
	default:
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// StatusChanged implements sync.StatusNotifier.
func (h *Hub) StatusChanged(message string, kind syncpkg.StatusKind) {
	h.send(MessageTypeStatus, map[string]interface{}{
		"message":   message,
		"kind":      string(kind),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// SnapshotAppliedData accompanies every snapshot_applied broadcast.
type SnapshotAppliedData struct {
	Timestamp       string               `json:"timestamp"`
	Vessels         int                  `json:"vessels"`
	Aircraft        int                  `json:"aircraft"`
	CoverageRegions int                  `json:"coverage_regions"`
	Summary         models.StatusSummary `json:"summary"`
}

// BroadcastSnapshotApplied notifies consoles that a new snapshot replaced
// the map state.
func (h *Hub) BroadcastSnapshotApplied(snap *models.Snapshot, summary models.StatusSummary) {
	h.send(MessageTypeSnapshotApplied, SnapshotAppliedData{
		Timestamp:       snap.FetchedAt.UTC().Format(time.RFC3339),
		Vessels:         snap.CountByCategory(models.CategoryVessel),
		Aircraft:        snap.CountByCategory(models.CategoryAircraft),
		CoverageRegions: len(snap.CoverageRegions),
		Summary:         summary,
	})
}

// AttachEntities implements layers.ViewProvider.
func (h *Hub) AttachEntities(layer layers.LayerCategory, entities []layers.RenderedEntity) {
	h.send(MessageTypeLayerAttach, map[string]interface{}{
		"layer":    string(layer),
		"entities": entities,
	})
}

// DetachLayer implements layers.ViewProvider.
func (h *Hub) DetachLayer(layer layers.LayerCategory) {
	h.send(MessageTypeLayerDetach, map[string]interface{}{
		"layer": string(layer),
	})
}

// ClearAll implements layers.ViewProvider.
func (h *Hub) ClearAll() {
	h.send(MessageTypeClearAll, nil)
}

// FlyTo implements viewport.Camera.
func (h *Hub) FlyTo(center models.Position, zoom float64) {
	h.send(MessageTypeCameraFlyTo, map[string]interface{}{
		"center": center,
		"zoom":   zoom,
	})
}

// FitBounds implements viewport.Camera.
func (h *Hub) FitBounds(bounds models.Bounds, padding int) {
	h.send(MessageTypeCameraFit, map[string]interface{}{
		"bounds":  bounds,
		"padding": padding,
	})
}
