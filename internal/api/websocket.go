// Pelorus - Maritime and Aeronautical Surveillance Map Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelorus

package api

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"

	"github.com/tomtom215/pelorus/internal/logging"
	ws "github.com/tomtom215/pelorus/internal/websocket"
)

// upgrader is shared by all WebSocket upgrades. Origin checking is left to
// the CORS middleware in front of the route.
var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// WebSocket upgrades the connection and registers the client with the hub
// for live map-state pushes.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}
