package response

import (
	"github.com/mveale/worddragon/internal/services/game"
)

// JoinedGame is the response for endpoints that put a player into a game:
// creating, joining or rematching. The token authorizes this player for
// this game only and must be presented on every later request.
type JoinedGame struct {
	GameID   string         `json:"game_id"`
	PlayerID string         `json:"player_id"`
	Token    string         `json:"token"`
	State    *game.Snapshot `json:"state"`
}

// GameState is the response for state-changing and read endpoints
type GameState struct {
	State *game.Snapshot `json:"state"`
}
