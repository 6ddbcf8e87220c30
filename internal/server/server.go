// Package server provides the optional HTTP observer for sentrycam: health
// and status endpoints, an MJPEG stream of the annotated feed, and a
// WebSocket telemetry channel.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/sentrycam/internal/targeting"
	"github.com/ayusman/sentrycam/internal/weather"
)

// Source is the application state the server reads. All methods must be safe
// for concurrent use.
type Source interface {
	SessionID() string
	Uptime() time.Duration
	FPS() float64
	LastTarget() *targeting.Target
	WeatherSnapshot() weather.Snapshot
	LatestJPEG() []byte
}

// Config holds the server configuration.
type Config struct {
	Source Source
	Log    *logrus.Entry
}

// Server exposes the running application state over HTTP.
type Server struct {
	config Config
	mux    *http.ServeMux
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.Handle("/api/stream", NewStreamHandler(s.config.Source))
	s.mux.Handle("/api/telemetry", NewTelemetryHandler(s.config.Source, s.config.Log))
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]interface{}{
		"status":  "ok",
		"session": s.config.Source.SessionID(),
		"uptime":  s.config.Source.Uptime().String(),
	})
}

// statusPayload is the JSON shape shared by /api/status and the telemetry
// WebSocket.
type statusPayload struct {
	Session string            `json:"session"`
	FPS     float64           `json:"fps"`
	Target  *targeting.Target `json:"target"`
	Weather weather.Snapshot  `json:"weather"`
}

// handleStatus handles GET requests to /api/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, currentStatus(s.config.Source))
}

func currentStatus(src Source) statusPayload {
	return statusPayload{
		Session: src.SessionID(),
		FPS:     src.FPS(),
		Target:  src.LastTarget(),
		Weather: src.WeatherSnapshot(),
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
