package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mveale/worddragon/internal/api/apierr"
	"github.com/mveale/worddragon/internal/api/middleware"
	"github.com/mveale/worddragon/internal/api/request"
	"github.com/mveale/worddragon/internal/api/response"
	"github.com/mveale/worddragon/internal/model"
	"github.com/mveale/worddragon/internal/services/auth"
	"github.com/mveale/worddragon/internal/services/game"
	"github.com/mveale/worddragon/internal/services/lobby"
)

// GameHandler handles game lifecycle endpoints
type GameHandler struct {
	lobbyController lobby.ControllerInterface
	gameController  game.ControllerInterface
	authService     auth.ServiceInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	lobbyController lobby.ControllerInterface,
	gameController game.ControllerInterface,
	authService auth.ServiceInterface,
) *GameHandler {
	return &GameHandler{
		lobbyController: lobbyController,
		gameController:  gameController,
		authService:     authService,
	}
}

func gameIDFromPath(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["game_id"])
}

// joinedGameResponse assembles the response for endpoints that put a
// player into a game
func (h *GameHandler) joinedGameResponse(r *http.Request, g *model.Game, player *model.Player) (*response.JoinedGame, error) {
	snapshot, err := h.gameController.GetSnapshot(r.Context(), g.ID, player.ID)
	if err != nil {
		return nil, err
	}
	return &response.JoinedGame{
		GameID:   string(g.ID),
		PlayerID: string(player.ID),
		Token:    h.authService.IssueToken(g.ID, player.ID),
		State:    snapshot,
	}, nil
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	nickname, err := request.Nickname(req.Nickname)
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(err.Error()))
		return
	}

	g, player, err := h.lobbyController.CreateGame(r.Context(), nickname)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp, err := h.joinedGameResponse(r, g, player)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, resp)
}

// Join handles POST /api/v1/games/{game_id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	nickname, err := request.Nickname(req.Nickname)
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(err.Error()))
		return
	}

	g, player, err := h.lobbyController.JoinGame(r.Context(), gameIDFromPath(r), nickname)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp, err := h.joinedGameResponse(r, g, player)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	snapshot, err := h.gameController.GetSnapshot(r.Context(), gameIDFromPath(r), claims.PlayerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameState{State: snapshot})
}

// Leave handles POST /api/v1/games/{game_id}/leave
func (h *GameHandler) Leave(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	if err := h.lobbyController.LeaveGame(r.Context(), gameIDFromPath(r), claims.PlayerID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// SetTimer handles PATCH /api/v1/games/{game_id}/timer
func (h *GameHandler) SetTimer(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	var req request.SetTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	gameID := gameIDFromPath(r)
	if err := h.lobbyController.SetVotingTimer(r.Context(), gameID, claims.PlayerID, req.Seconds); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.writeState(w, r, gameID, claims.PlayerID)
}

// Start handles POST /api/v1/games/{game_id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	gameID := gameIDFromPath(r)
	if _, err := h.lobbyController.StartGame(r.Context(), gameID, claims.PlayerID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.writeState(w, r, gameID, claims.PlayerID)
}

// Rematch handles POST /api/v1/games/{game_id}/rematch
func (h *GameHandler) Rematch(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	rematch, player, err := h.lobbyController.PlayAgain(r.Context(), gameIDFromPath(r), claims.PlayerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp, err := h.joinedGameResponse(r, rematch, player)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

// Stats handles GET /api/v1/stats
func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.lobbyController.GetStats(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}

// writeState responds with the caller's current view of the game
func (h *GameHandler) writeState(w http.ResponseWriter, r *http.Request, gameID model.GameID, playerID model.PlayerID) {
	snapshot, err := h.gameController.GetSnapshot(r.Context(), gameID, playerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameState{State: snapshot})
}
