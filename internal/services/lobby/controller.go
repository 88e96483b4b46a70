package lobby

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mveale/worddragon/internal/dependencies/clock"
	"github.com/mveale/worddragon/internal/dependencies/random"
	"github.com/mveale/worddragon/internal/model"
	"github.com/mveale/worddragon/internal/services/roles"
	"github.com/mveale/worddragon/internal/sse"
	"github.com/mveale/worddragon/internal/storage"
)

const (
	// GameIDLength is the length of generated game IDs
	GameIDLength = 12
	// GameIDAlphabet is the characters used in game IDs
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Config holds lifecycle settings for game sessions
type Config struct {
	// GameTTL is how long any game may live after creation
	GameTTL time.Duration
	// FinishedGameTTL is how long a finished game lingers for rematch links
	FinishedGameTTL time.Duration
}

// DefaultConfig returns default lobby configuration
func DefaultConfig() Config {
	return Config{
		GameTTL:         time.Hour,
		FinishedGameTTL: 30 * time.Minute,
	}
}

// Stats summarizes the games currently held in storage
type Stats struct {
	TotalGames   int `json:"total_games"`
	ActiveGames  int `json:"active_games"`
	TotalPlayers int `json:"total_players"`
}

// Controller manages game session lifecycle: creation, membership,
// round start, rematches and expiry
type Controller struct {
	storage     storage.Storage
	roles       roles.ServiceInterface
	broadcaster sse.BroadcasterInterface
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
	cfg         Config
}

// NewController creates a new lobby Controller
func NewController(
	storage storage.Storage,
	roles roles.ServiceInterface,
	broadcaster sse.BroadcasterInterface,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	if cfg.GameTTL == 0 {
		cfg.GameTTL = DefaultConfig().GameTTL
	}
	if cfg.FinishedGameTTL == 0 {
		cfg.FinishedGameTTL = DefaultConfig().FinishedGameTTL
	}
	return &Controller{
		storage:     storage,
		roles:       roles,
		broadcaster: broadcaster,
		clock:       clock,
		random:      random,
		logger:      logger.With(slog.String("component", "lobby")),
		cfg:         cfg,
	}
}

// CreateGame creates a new game with the given player as host
func (c *Controller) CreateGame(ctx context.Context, nickname string) (*model.Game, *model.Player, error) {
	now := c.clock.Now()

	// Generate unique game ID
	var id model.GameID
	for {
		id = model.GameID(c.random.String(GameIDLength, GameIDAlphabet))
		exists, err := c.storage.GameExists(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			break
		}
	}

	game := model.NewGame(id, now)
	host := &model.Player{
		ID:       model.PlayerID(uuid.NewString()),
		Nickname: nickname,
		IsAlive:  true,
		IsHost:   true,
		JoinedAt: now,
	}
	game.Players[host.ID] = host

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("host_id", string(host.ID)))

	return game, host, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// JoinGame adds a player to a game still in its lobby phase
func (c *Controller) JoinGame(ctx context.Context, id model.GameID, nickname string) (*model.Game, *model.Player, error) {
	player := &model.Player{
		ID:       model.PlayerID(uuid.NewString()),
		Nickname: nickname,
		IsAlive:  true,
		JoinedAt: c.clock.Now(),
	}

	game, err := c.storage.UpdateGame(ctx, id, func(game *model.Game) error {
		if game.Phase != model.PhaseLobby {
			return model.ErrGameStarted
		}
		if len(game.Players) >= model.MaxPlayers {
			return model.ErrTooManyPlayers
		}
		if game.NicknameTaken(nickname) {
			return model.ErrNicknameTaken
		}
		game.Players[player.ID] = player
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	c.broadcaster.Broadcast(game.ID, model.EventPlayerJoined)
	return game, player, nil
}

// LeaveGame removes a player from a game still in its lobby phase; once
// a round starts every role is load-bearing, so leaving mid-game is
// rejected. An empty game is deleted; if the host left, the
// longest-standing remaining player becomes host.
func (c *Controller) LeaveGame(ctx context.Context, id model.GameID, playerID model.PlayerID) error {
	var emptied bool
	game, err := c.storage.UpdateGame(ctx, id, func(game *model.Game) error {
		if game.Phase != model.PhaseLobby {
			return model.ErrGameStarted
		}

		player, err := game.GetPlayer(playerID)
		if err != nil {
			return err
		}
		wasHost := player.IsHost
		delete(game.Players, playerID)

		emptied = len(game.Players) == 0
		if !emptied && wasHost {
			c.assignNewHost(game)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if emptied {
		if err := c.storage.DeleteGame(ctx, id); err != nil {
			return err
		}
		c.broadcaster.GameRemoved(id)
		c.logger.Info("empty game deleted", slog.String("game_id", string(id)))
		return nil
	}

	c.broadcaster.Broadcast(game.ID, model.EventPlayerLeft)
	return nil
}

// assignNewHost promotes the earliest-joined remaining player
func (c *Controller) assignNewHost(game *model.Game) {
	var next *model.Player
	for _, p := range game.Players {
		if next == nil ||
			p.JoinedAt.Before(next.JoinedAt) ||
			(p.JoinedAt.Equal(next.JoinedAt) && p.ID < next.ID) {
			next = p
		}
	}
	if next != nil {
		next.IsHost = true
	}
}

// SetVotingTimer configures the optional voting timer. Only the host may
// change it, and only while the game is still in the lobby. Zero disables
// the timer.
func (c *Controller) SetVotingTimer(ctx context.Context, id model.GameID, playerID model.PlayerID, seconds int) error {
	game, err := c.storage.UpdateGame(ctx, id, func(game *model.Game) error {
		player, err := game.GetPlayer(playerID)
		if err != nil {
			return err
		}
		if !player.IsHost {
			return model.ErrNotHost
		}
		if game.Phase != model.PhaseLobby {
			return model.ErrGameStarted
		}
		if seconds != 0 && (seconds < model.MinTimerSeconds || seconds > model.MaxTimerSeconds) {
			return model.ErrTimerOutOfRange
		}

		game.VotingTimerSeconds = seconds
		return nil
	})
	if err != nil {
		return err
	}

	c.broadcaster.Broadcast(game.ID, model.EventTimerUpdated)
	return nil
}

// StartGame assigns roles, picks the secret word pair, fixes the turn
// order and moves the game into the playing phase
func (c *Controller) StartGame(ctx context.Context, id model.GameID, playerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.UpdateGame(ctx, id, func(game *model.Game) error {
		player, err := game.GetPlayer(playerID)
		if err != nil {
			return err
		}
		if !player.IsHost {
			return model.ErrNotHost
		}
		if game.Phase != model.PhaseLobby {
			return model.ErrGameStarted
		}
		if !game.CanStart() {
			return model.ErrInsufficientPlayers
		}

		// Deterministic seat order before shuffling so assignment is reproducible
		players := game.PlayersByJoinOrder()
		if err := c.roles.Assign(players); err != nil {
			return err
		}

		pair, err := c.roles.PickWordPair()
		if err != nil {
			return err
		}
		game.VillagerWord = pair.Primary
		game.KnightWord = pair.Decoy

		order := make([]model.PlayerID, len(players))
		for i, p := range players {
			order[i] = p.ID
		}
		c.random.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		game.PlayerOrder = order

		now := c.clock.Now()
		game.Phase = model.PhasePlaying
		game.StartedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("game_id", string(game.ID)),
		slog.Int("players", len(game.Players)))

	c.broadcaster.Broadcast(game.ID, model.EventGameStarted)
	return game, nil
}

// PlayAgain moves a player from a finished game into its rematch game,
// creating the rematch on first use. The first caller becomes the new
// host; later callers join with their existing nickname.
func (c *Controller) PlayAgain(ctx context.Context, id model.GameID, playerID model.PlayerID) (*model.Game, *model.Player, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if game.Phase != model.PhaseFinished {
		return nil, nil, model.ErrGameNotFinished
	}

	player, err := game.GetPlayer(playerID)
	if err != nil {
		return nil, nil, err
	}

	if game.RematchGameID == "" {
		rematch, newPlayer, err := c.CreateGame(ctx, player.Nickname)
		if err != nil {
			return nil, nil, err
		}

		var linked bool
		var existing model.GameID
		_, err = c.storage.UpdateGame(ctx, id, func(game *model.Game) error {
			if game.RematchGameID != "" {
				existing = game.RematchGameID
				return nil
			}
			game.RematchGameID = rematch.ID
			linked = true
			return nil
		})
		if err != nil {
			return nil, nil, err
		}

		if linked {
			c.broadcaster.Broadcast(game.ID, model.EventRematchCreated)
			return rematch, newPlayer, nil
		}

		// Someone else linked a rematch first; discard ours and join theirs
		if err := c.storage.DeleteGame(ctx, rematch.ID); err != nil {
			return nil, nil, err
		}
		game.RematchGameID = existing
	}

	rematch, newPlayer, err := c.JoinGame(ctx, game.RematchGameID, player.Nickname)
	if err != nil {
		// The rematch may itself have started or been swept
		return nil, nil, model.ErrRematchUnavailable
	}
	return rematch, newPlayer, nil
}

// Sweep deletes stale games: anything older than the game TTL, and
// finished games past the shorter finished TTL. Safe to run repeatedly.
func (c *Controller) Sweep(ctx context.Context) (int, error) {
	games, err := c.storage.ListGames(ctx)
	if err != nil {
		return 0, err
	}

	now := c.clock.Now()
	removed := 0
	for _, game := range games {
		if !c.isStale(game, now) {
			continue
		}
		if err := c.storage.DeleteGame(ctx, game.ID); err != nil {
			return removed, err
		}
		c.broadcaster.GameRemoved(game.ID)
		removed++
	}

	if removed > 0 {
		c.logger.Info("stale games swept", slog.Int("removed", removed))
	}
	return removed, nil
}

func (c *Controller) isStale(game *model.Game, now time.Time) bool {
	if now.Sub(game.CreatedAt) > c.cfg.GameTTL {
		return true
	}
	if game.Phase == model.PhaseFinished && game.FinishedAt != nil &&
		now.Sub(*game.FinishedAt) > c.cfg.FinishedGameTTL {
		return true
	}
	return false
}

// GetStats summarizes the games currently in storage
func (c *Controller) GetStats(ctx context.Context) (*Stats, error) {
	games, err := c.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalGames: len(games)}
	for _, game := range games {
		if game.Phase != model.PhaseFinished {
			stats.ActiveGames++
		}
		stats.TotalPlayers += len(game.Players)
	}
	return stats, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, nickname string) (*model.Game, *model.Player, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	JoinGame(ctx context.Context, id model.GameID, nickname string) (*model.Game, *model.Player, error)
	LeaveGame(ctx context.Context, id model.GameID, playerID model.PlayerID) error
	SetVotingTimer(ctx context.Context, id model.GameID, playerID model.PlayerID, seconds int) error
	StartGame(ctx context.Context, id model.GameID, playerID model.PlayerID) (*model.Game, error)
	PlayAgain(ctx context.Context, id model.GameID, playerID model.PlayerID) (*model.Game, *model.Player, error)
	Sweep(ctx context.Context) (int, error)
	GetStats(ctx context.Context) (*Stats, error)
}

var _ ControllerInterface = (*Controller)(nil)
