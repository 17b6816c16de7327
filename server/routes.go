package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kxvrh/GomokuAI/gomoku"
)

type apiMove struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type apiRevert struct {
	Count int `json:"count"`
}

// NewRouter wires the REST and websocket surface around one session.
func NewRouter(session *Session, hub *Hub) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, session.Status())
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		status, err := session.Move(payload.X, payload.Y)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		hub.Publish(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/revert", func(w http.ResponseWriter, r *http.Request) {
		var payload apiRevert
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		status := session.Revert(payload.Count)
		hub.Publish(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/random", func(w http.ResponseWriter, r *http.Request) {
		response, err := session.Random()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		hub.Publish(response.StatusResponse)
		writeJSON(w, http.StatusOK, response)
	})

	r.Post("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		status := session.Reset()
		hub.Publish(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Get("/api/scores", func(w http.ResponseWriter, r *http.Request) {
		player, ok := playerParam(r, "player")
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "player must be 1 or 2"})
			return
		}
		perspective, ok := playerParam(r, "perspective")
		if !ok {
			perspective = player
		}
		writeJSON(w, http.StatusOK, session.Scores(player, perspective))
	})

	r.Get("/api/density", func(w http.ResponseWriter, r *http.Request) {
		player, ok := playerParam(r, "player")
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "player must be 1 or 2"})
			return
		}
		writeJSON(w, http.StatusOK, session.Density(player))
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, session, w, r)
	})

	return r
}

func playerParam(r *http.Request, name string) (gomoku.Player, bool) {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0, false
	}
	return intToPlayer(value)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
