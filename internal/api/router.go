package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/typerace/typerace-go/internal/api/handler"
	apimiddleware "github.com/typerace/typerace-go/internal/api/middleware"
	"github.com/typerace/typerace-go/internal/middleware"
	"github.com/typerace/typerace-go/internal/services/session"
	"github.com/typerace/typerace-go/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	SessionService session.ServiceInterface
	EventManager   *ws.Manager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.SessionService, cfg.EventManager)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/players", gameHandler.AddPlayer).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/players/{player_id}/ready", gameHandler.SetReady).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/players/{player_id}/progress", gameHandler.UpdateProgress).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/events", gameHandler.Events).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
