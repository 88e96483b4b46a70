package sse

import (
	"log/slog"

	"github.com/mveale/worddragon/internal/model"
)

// Broadcaster notifies a game's connected clients that state changed
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Broadcast sends a game event to all clients connected to the game.
// Games with no hub have no listeners and the event is dropped silently.
func (b *Broadcaster) Broadcast(gameID model.GameID, event model.EventType) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}
	hub.Broadcast(event)
}

// GameRemoved closes the game's hub, disconnecting any remaining clients
func (b *Broadcaster) GameRemoved(gameID model.GameID) {
	b.hubManager.RemoveHub(gameID)
}

// Interface for dependency injection
type BroadcasterInterface interface {
	Broadcast(gameID model.GameID, event model.EventType)
	GameRemoved(gameID model.GameID)
}

var _ BroadcasterInterface = (*Broadcaster)(nil)
