package redis

import (
	"fmt"

	"github.com/mveale/worddragon/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "worddragon"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gameIndexKey returns the Redis key for the SET of all game keys
func gameIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}
