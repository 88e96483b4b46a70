package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mveale/worddragon/internal/api/apierr"
	"github.com/mveale/worddragon/internal/api/middleware"
	"github.com/mveale/worddragon/internal/services/game"
	"github.com/mveale/worddragon/internal/sse"
)

// EventsHandler serves the per-game SSE stream
type EventsHandler struct {
	gameController game.ControllerInterface
	hubManager     *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(gameController game.ControllerInterface, hubManager *sse.HubManager) *EventsHandler {
	return &EventsHandler{
		gameController: gameController,
		hubManager:     hubManager,
	}
}

// Stream handles GET /api/v1/games/{game_id}/events.
// Each broadcast re-renders this player's personalized snapshot, so two
// subscribers to the same game never see each other's hidden information.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())
	gameID := gameIDFromPath(r)

	// Reject streams for games that don't exist before upgrading
	if _, err := h.gameController.GetSnapshot(r.Context(), gameID, claims.PlayerID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(gameID)

	snapshot := func() ([]byte, error) {
		s, err := h.gameController.GetSnapshot(r.Context(), gameID, claims.PlayerID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(s)
	}

	sse.ServeSSE(w, r, hub, claims.PlayerID, snapshot)
}
