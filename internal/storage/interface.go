package storage

import (
	"context"

	"github.com/mveale/worddragon/internal/model"
)

// Storage defines the interface for game persistence
type Storage interface {
	// SaveGame persists a game, overwriting any previous version
	SaveGame(ctx context.Context, game *model.Game) error

	// GetGame returns the game with the given ID, or model.ErrGameNotFound
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)

	// UpdateGame applies fn to the stored game and persists the result as
	// one exclusive read-modify-write cycle; concurrent updates to the
	// same store serialize. An error from fn aborts the update without
	// saving. fn must not call back into the store. The returned game is
	// the caller's own copy of the saved state.
	UpdateGame(ctx context.Context, id model.GameID, fn func(*model.Game) error) (*model.Game, error)

	// DeleteGame removes a game; deleting a missing game is not an error
	DeleteGame(ctx context.Context, id model.GameID) error

	// GameExists reports whether a game with the given ID exists
	GameExists(ctx context.Context, id model.GameID) (bool, error)

	// ListGames returns all stored games, in no particular order
	ListGames(ctx context.Context) ([]*model.Game, error)
}
