// internal/handlers/server.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"palmier/internal/presence"
	"palmier/internal/session"
)

// Server bundles the session service and the presence registry behind the
// HTTP surface.
type Server struct {
	Sessions *session.Service
	Presence *presence.Registry
	Logger   *logrus.Logger
}

// NewServer wires a Server around svc with a fresh presence registry.
func NewServer(svc *session.Service, logger *logrus.Logger) *Server {
	return &Server{
		Sessions: svc,
		Presence: presence.NewRegistry(),
		Logger:   logger,
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError emits the uniform {"error": msg} body. The status stays 200:
// the body carries the signal, per the protocol contract.
func writeError(w http.ResponseWriter, msg string) {
	writeJSON(w, map[string]string{"error": msg})
}
