// internal/handlers/presence_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"palmier/internal/middleware"
	"palmier/internal/presence"
)

// PresenceWSHandler upgrades /ws connections and tracks them in the registry.
// The channel carries no game traffic: inbound frames are read and discarded,
// and nothing is ever pushed to the client. Its only job is knowing who is
// online right now.
func PresenceWSHandler(logger *logrus.Logger, reg *presence.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("WebSocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		id := reg.Connect()
		logger.WithFields(logrus.Fields{
			"connection_id": id,
			"online":        reg.Count(),
		}).Info("Presence client connected")

		// Cleanup must run on every exit path, abnormal closure included.
		defer func() {
			reg.Disconnect(id)
			logger.WithFields(logrus.Fields{
				"connection_id": id,
				"online":        reg.Count(),
			}).Info("Presence client disconnected")
		}()

		readPresenceMessages(r.Context(), c, id, logger)

		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, nil)
		c.Close(websocket.StatusNormalClosure, "")
	}
}

// readPresenceMessages consumes frames until the connection closes. Closure,
// normal or not, is the expected way out and is not treated as an error.
func readPresenceMessages(ctx context.Context, c *websocket.Conn, id string, logger *logrus.Logger) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Debugf("Presence connection %s closed normally.", id)
			} else {
				logger.Debugf("Presence connection %s read ended: %v", id, err)
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Presence connection %s sent invalid JSON: %v", id, err)
		}
	}
}
