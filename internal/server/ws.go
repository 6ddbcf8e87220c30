package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// telemetryInterval is the push cadence for connected clients.
const telemetryInterval = 200 * time.Millisecond

// TelemetryHandler pushes the live status payload to WebSocket clients.
type TelemetryHandler struct {
	source Source
	log    *logrus.Entry
}

// NewTelemetryHandler creates a new TelemetryHandler reading from the given
// source.
func NewTelemetryHandler(source Source, log *logrus.Entry) *TelemetryHandler {
	return &TelemetryHandler{source: source, log: log}
}

// ServeHTTP upgrades the connection and streams status payloads until the
// client disconnects.
func (h *TelemetryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.log != nil {
			h.log.WithField("error", err).Warn("websocket upgrade failed")
		}
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(telemetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := conn.WriteJSON(currentStatus(h.source)); err != nil {
				return
			}
		}
	}
}
