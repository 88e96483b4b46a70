package game

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mveale/worddragon/internal/dependencies/clock"
	"github.com/mveale/worddragon/internal/model"
	"github.com/mveale/worddragon/internal/services/vote"
	"github.com/mveale/worddragon/internal/sse"
	"github.com/mveale/worddragon/internal/storage"
)

// Controller manages in-round operations: voting, timer expiry and the
// dragon's word guess
type Controller struct {
	storage     storage.Storage
	votes       vote.ServiceInterface
	broadcaster sse.BroadcasterInterface
	clock       clock.Clock
	logger      *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	votes vote.ServiceInterface,
	broadcaster sse.BroadcasterInterface,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:     storage,
		votes:       votes,
		broadcaster: broadcaster,
		clock:       clock,
		logger:      logger.With(slog.String("component", "game")),
	}
}

// StartVoting opens a voting round. Only the host may open voting, and
// only from the playing phase with at least two players left alive.
func (c *Controller) StartVoting(ctx context.Context, id model.GameID, playerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.UpdateGame(ctx, id, func(game *model.Game) error {
		player, err := game.GetPlayer(playerID)
		if err != nil {
			return err
		}
		if !player.IsHost {
			return model.ErrNotHost
		}
		if game.Phase != model.PhasePlaying {
			return model.ErrNotPlaying
		}
		if game.AliveCount() < 2 {
			return model.ErrNotEnoughAlive
		}

		game.Phase = model.PhaseVoting
		game.Votes = make(map[model.PlayerID]model.PlayerID)
		if game.VotingTimerSeconds > 0 {
			now := c.clock.Now()
			game.VotingStartedAt = &now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.broadcaster.Broadcast(game.ID, model.EventVotingStarted)
	return game, nil
}

// SubmitVote records a player's vote, replacing any earlier vote they
// cast this round. Once every living player has voted the round resolves
// immediately.
func (c *Controller) SubmitVote(ctx context.Context, id model.GameID, voterID, targetID model.PlayerID) (*model.Game, error) {
	var expired bool
	var elimination *model.Elimination
	game, err := c.storage.UpdateGame(ctx, id, func(game *model.Game) error {
		if c.applyTimerExpiry(game) {
			// Commit the cancelled round; the vote itself is rejected below
			expired = true
			return nil
		}

		if err := c.votes.Validate(game, voterID, targetID); err != nil {
			return err
		}

		game.Votes[voterID] = targetID

		if !c.votes.AllSubmitted(game) {
			return nil
		}

		e, err := c.votes.Tally(game)
		if err != nil {
			return err
		}
		elimination = e
		c.resolveElimination(game, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if expired {
		c.onTimerExpired(game)
		return nil, model.ErrNotVoting
	}

	if elimination == nil {
		c.broadcaster.Broadcast(game.ID, model.EventVoteSubmitted)
		return game, nil
	}

	c.logger.Info("voting round resolved",
		slog.String("game_id", string(game.ID)),
		slog.String("eliminated", string(elimination.PlayerID)),
		slog.String("role", string(elimination.Role)),
		slog.Bool("was_tie", elimination.WasTie),
		slog.String("next_phase", string(game.Phase)))

	c.broadcaster.Broadcast(game.ID, model.EventVotingComplete)
	return game, nil
}

// resolveElimination advances the phase after a tally. Eliminating the
// dragon hands it one last guess rather than ending the game outright.
func (c *Controller) resolveElimination(game *model.Game, elimination *model.Elimination) {
	if elimination.Role == model.RoleDragon {
		game.Phase = model.PhaseDragonGuess
		return
	}

	if game.AliveCount() <= 2 {
		// The dragon survived to the final two and can no longer be voted out
		c.finish(game, model.WinnerDragon)
		return
	}

	game.Phase = model.PhasePlaying
}

// CheckTimerExpiry applies a lapsed voting timer, returning the game in
// its current state. Expiry cancels the round and discards its votes; no
// one is eliminated by the clock.
func (c *Controller) CheckTimerExpiry(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.expireTimer(ctx, id)
}

func (c *Controller) expireTimer(ctx context.Context, id model.GameID) (*model.Game, error) {
	// Cheap read first so snapshot polls skip the write path
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.timerLapsed(game) {
		return game, nil
	}

	var expired bool
	game, err = c.storage.UpdateGame(ctx, id, func(game *model.Game) error {
		expired = c.applyTimerExpiry(game)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		c.onTimerExpired(game)
	}
	return game, nil
}

// timerLapsed reports whether the game is in a voting round whose timer
// has run out
func (c *Controller) timerLapsed(game *model.Game) bool {
	if game.Phase != model.PhaseVoting {
		return false
	}
	deadline, ok := game.VotingDeadline()
	return ok && !c.clock.Now().Before(deadline)
}

// applyTimerExpiry cancels a timed-out voting round in place, discarding
// its votes. It reports whether the round was cancelled.
func (c *Controller) applyTimerExpiry(game *model.Game) bool {
	if !c.timerLapsed(game) {
		return false
	}
	game.Phase = model.PhasePlaying
	game.Votes = make(map[model.PlayerID]model.PlayerID)
	game.VotingStartedAt = nil
	return true
}

func (c *Controller) onTimerExpired(game *model.Game) {
	c.logger.Info("voting timer expired",
		slog.String("game_id", string(game.ID)))
	c.broadcaster.Broadcast(game.ID, model.EventTimerExpired)
}

// GuessWord resolves the eliminated dragon's final guess. A correct guess
// wins the game for the dragon; anything else hands it to the villagers.
func (c *Controller) GuessWord(ctx context.Context, id model.GameID, playerID model.PlayerID, guess string) (*model.Game, error) {
	game, err := c.storage.UpdateGame(ctx, id, func(game *model.Game) error {
		if game.Phase != model.PhaseDragonGuess {
			return model.ErrNotGuessPhase
		}

		player, err := game.GetPlayer(playerID)
		if err != nil {
			return err
		}
		if player.Role != model.RoleDragon {
			return model.ErrNotDragon
		}

		normalized := strings.ToLower(strings.TrimSpace(guess))
		game.DragonGuess = normalized

		if normalized == strings.ToLower(game.VillagerWord) {
			c.finish(game, model.WinnerDragon)
		} else {
			c.finish(game, model.WinnerVillagers)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("dragon guessed",
		slog.String("game_id", string(game.ID)),
		slog.String("winner", string(game.Winner)))

	c.broadcaster.Broadcast(game.ID, model.EventDragonGuessed)
	return game, nil
}

func (c *Controller) finish(game *model.Game, winner model.Winner) {
	now := c.clock.Now()
	game.Phase = model.PhaseFinished
	game.Winner = winner
	game.FinishedAt = &now
}

// GetSnapshot applies any lapsed voting timer and returns the game as the
// given player is allowed to see it
func (c *Controller) GetSnapshot(ctx context.Context, id model.GameID, playerID model.PlayerID) (*Snapshot, error) {
	game, err := c.expireTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	return SnapshotFor(game, playerID, c.clock.Now())
}

// Interface for dependency injection
type ControllerInterface interface {
	StartVoting(ctx context.Context, id model.GameID, playerID model.PlayerID) (*model.Game, error)
	SubmitVote(ctx context.Context, id model.GameID, voterID, targetID model.PlayerID) (*model.Game, error)
	CheckTimerExpiry(ctx context.Context, id model.GameID) (*model.Game, error)
	GuessWord(ctx context.Context, id model.GameID, playerID model.PlayerID, guess string) (*model.Game, error)
	GetSnapshot(ctx context.Context, id model.GameID, playerID model.PlayerID) (*Snapshot, error)
}

var _ ControllerInterface = (*Controller)(nil)
