// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"palmier/internal/models"
	"palmier/internal/session"
)

// usernameRequest is the body of create and join calls.
type usernameRequest struct {
	Username string `json:"username"`
}

// pathCode extracts the session code from a path like /join-game/{code}.
// Returns "" when the segment is missing or malformed.
func pathCode(path, prefix string) string {
	code := strings.TrimPrefix(path, prefix)
	if code == "" || strings.Contains(code, "/") {
		return ""
	}
	return code
}

// GetGameHandler serves GET /game/{code} with the full session record.
func (s *Server) GetGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := pathCode(r.URL.Path, "/game/")
		if code == "" {
			writeError(w, session.ErrNotFound.Error())
			return
		}
		sess, err := s.Sessions.Get(r.Context(), code)
		if err != nil {
			s.respondError(w, "get game", err)
			return
		}
		s.Logger.WithFields(logrus.Fields{
			"code":    code,
			"players": len(sess.Players),
		}).Debug("Serving game state")
		writeJSON(w, sess)
	}
}

// ListGamesHandler serves GET /games with {code, players} summaries.
func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := s.Sessions.List(r.Context())
		if err != nil {
			s.respondError(w, "list games", err)
			return
		}
		if summaries == nil {
			summaries = []session.GameSummary{}
		}
		writeJSON(w, summaries)
	}
}

// CreateGameHandler serves POST /create-game and returns the new code.
func (s *Server) CreateGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req usernameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "Invalid request payload")
			return
		}
		code, err := s.Sessions.Create(r.Context(), req.Username)
		if err != nil {
			s.respondError(w, "create game", err)
			return
		}
		writeJSON(w, map[string]string{"code": code})
	}
}

// JoinGameHandler serves POST /join-game/{code}.
func (s *Server) JoinGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		code := pathCode(r.URL.Path, "/join-game/")
		if code == "" {
			writeError(w, session.ErrNotFound.Error())
			return
		}
		var req usernameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "Invalid request payload")
			return
		}
		if err := s.Sessions.Join(r.Context(), code, req.Username); err != nil {
			s.respondError(w, "join game", err)
			return
		}
		writeJSON(w, map[string]bool{"success": true})
	}
}

// UpdateGameHandler serves POST /update-game/{code}. The submitted snapshot
// replaces the stored record wholesale; the server does not check game rules.
func (s *Server) UpdateGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		code := pathCode(r.URL.Path, "/update-game/")
		if code == "" {
			writeError(w, session.ErrNotFound.Error())
			return
		}
		var sess models.Session
		if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
			writeError(w, "Invalid request payload")
			return
		}
		if err := s.Sessions.Update(r.Context(), code, &sess); err != nil {
			s.respondError(w, "update game", err)
			return
		}
		writeJSON(w, map[string]bool{"success": true})
	}
}

// respondError maps a service error to the uniform error body. Taxonomy
// errors pass their message through; anything else is a server-side failure
// that gets logged and masked.
func (s *Server) respondError(w http.ResponseWriter, op string, err error) {
	if session.IsClientError(err) {
		writeError(w, err.Error())
		return
	}
	s.Logger.WithError(err).Errorf("%s failed", op)
	writeError(w, "Internal server error")
}
