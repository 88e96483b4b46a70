package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mveale/worddragon/internal/api/handler"
	"github.com/mveale/worddragon/internal/api/middleware"
	"github.com/mveale/worddragon/internal/services/auth"
	"github.com/mveale/worddragon/internal/services/game"
	"github.com/mveale/worddragon/internal/services/lobby"
	"github.com/mveale/worddragon/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	LobbyController *lobby.Controller
	GameController  *game.Controller
	HubManager      *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.LobbyController, cfg.GameController, cfg.AuthService)
	gameplayHandler := handler.NewGameplayHandler(cfg.GameController)
	eventsHandler := handler.NewEventsHandler(cfg.GameController, cfg.HubManager)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Entry routes: creating and joining hand out the player token
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{game_id}/join", gameHandler.Join).Methods(http.MethodPost)

	// Everything else requires a token bound to the game in the path
	games := api.PathPrefix("/games/{game_id}").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/leave", gameHandler.Leave).Methods(http.MethodPost)
	games.HandleFunc("/timer", gameHandler.SetTimer).Methods(http.MethodPatch)
	games.HandleFunc("/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/voting", gameplayHandler.StartVoting).Methods(http.MethodPost)
	games.HandleFunc("/vote", gameplayHandler.Vote).Methods(http.MethodPost)
	games.HandleFunc("/guess", gameplayHandler.Guess).Methods(http.MethodPost)
	games.HandleFunc("/rematch", gameHandler.Rematch).Methods(http.MethodPost)
	games.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Unauthenticated utility endpoints
	api.HandleFunc("/stats", gameHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
