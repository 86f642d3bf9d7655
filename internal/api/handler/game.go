package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/typerace/typerace-go/internal/api/request"
	"github.com/typerace/typerace-go/internal/api/response"
	"github.com/typerace/typerace-go/internal/model"
	"github.com/typerace/typerace-go/internal/services/session"
	"github.com/typerace/typerace-go/internal/ws"
)

// Event names broadcast to WebSocket subscribers
const (
	EventPlayerJoined    = "player_joined"
	EventPlayerReady     = "player_ready"
	EventRaceStarted     = "race_started"
	EventProgressUpdated = "progress_updated"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	sessions session.ServiceInterface
	events   *ws.Manager
}

// NewGameHandler creates a new game handler
func NewGameHandler(sessions session.ServiceInterface, events *ws.Manager) *GameHandler {
	return &GameHandler{
		sessions: sessions,
		events:   events,
	}
}

// broadcast publishes the new game snapshot to WebSocket subscribers
func (h *GameHandler) broadcast(event string, game *model.Game) {
	if h.events == nil {
		return
	}
	h.events.Broadcast(game.ID, event, response.GameFromModel(game))
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.MaxPlayers < model.MinPlayers || req.MaxPlayers > model.MaxPlayers {
		WriteError(w, NewInvalidRequestError("max_players must be between 2 and 4"))
		return
	}
	if req.Text == "" {
		WriteError(w, NewInvalidRequestError("text must not be empty"))
		return
	}

	game, err := h.sessions.CreateGame(r.Context(), req.MaxPlayers, req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// Get handles GET /api/v1/games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	game, err := h.sessions.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// AddPlayer handles POST /api/v1/games/{game_id}/players
func (h *GameHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.AddPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username must not be empty"))
		return
	}

	game, err := h.sessions.AddPlayer(r.Context(), gameID, req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(EventPlayerJoined, game)
	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// SetReady handles POST /api/v1/games/{game_id}/players/{player_id}/ready
func (h *GameHandler) SetReady(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := model.GameID(vars["game_id"])
	playerID := model.PlayerID(vars["player_id"])

	game, err := h.sessions.SetPlayerReady(r.Context(), gameID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(EventPlayerReady, game)
	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Start handles POST /api/v1/games/{game_id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	game, err := h.sessions.StartGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(EventRaceStarted, game)
	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// UpdateProgress handles POST /api/v1/games/{game_id}/players/{player_id}/progress
func (h *GameHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := model.GameID(vars["game_id"])
	playerID := model.PlayerID(vars["player_id"])

	var req request.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.CurrentPosition < 0 {
		WriteError(w, NewInvalidRequestError("current_position must not be negative"))
		return
	}

	game, err := h.sessions.UpdatePlayerProgress(r.Context(), gameID, playerID,
		req.CurrentPosition, req.WPM, req.Accuracy)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcast(EventProgressUpdated, game)
	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Events handles GET /api/v1/games/{game_id}/events, upgrading to a
// WebSocket that streams game snapshots as they change.
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	// Reject subscriptions to games that don't exist
	if _, err := h.sessions.GetGame(r.Context(), gameID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.events.GetOrCreateHub(gameID)
	hub.ServeWS(w, r)
}
