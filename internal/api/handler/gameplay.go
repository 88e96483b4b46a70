package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mveale/worddragon/internal/api/apierr"
	"github.com/mveale/worddragon/internal/api/middleware"
	"github.com/mveale/worddragon/internal/api/request"
	"github.com/mveale/worddragon/internal/api/response"
	"github.com/mveale/worddragon/internal/model"
	"github.com/mveale/worddragon/internal/services/game"
)

// GameplayHandler handles in-round endpoints: voting and the dragon guess
type GameplayHandler struct {
	gameController game.ControllerInterface
}

// NewGameplayHandler creates a new gameplay handler
func NewGameplayHandler(gameController game.ControllerInterface) *GameplayHandler {
	return &GameplayHandler{
		gameController: gameController,
	}
}

// StartVoting handles POST /api/v1/games/{game_id}/voting
func (h *GameplayHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())
	gameID := gameIDFromPath(r)

	if _, err := h.gameController.StartVoting(r.Context(), gameID, claims.PlayerID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.writeState(w, r, gameID, claims.PlayerID)
}

// Vote handles POST /api/v1/games/{game_id}/vote
func (h *GameplayHandler) Vote(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	var req request.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.TargetID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("target_id is required"))
		return
	}

	gameID := gameIDFromPath(r)
	if _, err := h.gameController.SubmitVote(r.Context(), gameID, claims.PlayerID, model.PlayerID(req.TargetID)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.writeState(w, r, gameID, claims.PlayerID)
}

// Guess handles POST /api/v1/games/{game_id}/guess
func (h *GameplayHandler) Guess(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	guess, err := request.Guess(req.Guess)
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(err.Error()))
		return
	}

	gameID := gameIDFromPath(r)
	if _, err := h.gameController.GuessWord(r.Context(), gameID, claims.PlayerID, guess); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.writeState(w, r, gameID, claims.PlayerID)
}

// writeState responds with the caller's current view of the game
func (h *GameplayHandler) writeState(w http.ResponseWriter, r *http.Request, gameID model.GameID, playerID model.PlayerID) {
	snapshot, err := h.gameController.GetSnapshot(r.Context(), gameID, playerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameState{State: snapshot})
}
