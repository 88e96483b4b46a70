package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mveale/worddragon/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// startedGame creates a game with the given players and starts it,
// returning the fresh in-play state and the host's player ID.
func (s *IntegrationSuite) startedGame(nicknames ...string) (*model.Game, model.PlayerID) {
	s.Require().GreaterOrEqual(len(nicknames), model.MinPlayers)

	s.app.MockRandom.QueueString("INTEGGAME000")
	game, host, err := s.app.LobbyController.CreateGame(s.ctx, nicknames[0])
	s.Require().NoError(err)

	for _, nickname := range nicknames[1:] {
		s.app.MockClock.Advance(time.Second)
		_, _, err = s.app.LobbyController.JoinGame(s.ctx, game.ID, nickname)
		s.Require().NoError(err)
	}

	game, err = s.app.LobbyController.StartGame(s.ctx, game.ID, host.ID)
	s.Require().NoError(err)
	s.Require().Equal(model.PhasePlaying, game.Phase)

	return game, host.ID
}

// findDragon locates the dragon in a started game.
func (s *IntegrationSuite) findDragon(game *model.Game) *model.Player {
	for _, p := range game.Players {
		if p.Role == model.RoleDragon {
			return p
		}
	}
	s.FailNow("no dragon assigned")
	return nil
}

// voteOut runs a full voting round where every alive player votes for
// the given target, and returns the resulting game state.
func (s *IntegrationSuite) voteOut(gameID model.GameID, hostID, targetID model.PlayerID) *model.Game {
	game, err := s.app.GameController.StartVoting(s.ctx, gameID, hostID)
	s.Require().NoError(err)
	s.Require().Equal(model.PhaseVoting, game.Phase)

	for _, p := range game.Players {
		if !p.IsAlive {
			continue
		}
		game, err = s.app.GameController.SubmitVote(s.ctx, gameID, p.ID, targetID)
		s.Require().NoError(err)
	}

	s.Require().NotNil(game.LastElimination)
	s.Equal(targetID, game.LastElimination.PlayerID)
	return game
}

// Test: villagers win by voting out the dragon and surviving its guess
func (s *IntegrationSuite) TestVillagersWinByCatchingDragon() {
	game, hostID := s.startedGame("alice", "bob", "carol", "dave", "eve")
	dragon := s.findDragon(game)

	// First round eliminates someone harmless so the game keeps going
	var bystander model.PlayerID
	for _, p := range game.Players {
		if p.Role != model.RoleDragon && p.ID != hostID {
			bystander = p.ID
			break
		}
	}
	game = s.voteOut(game.ID, hostID, bystander)
	s.Equal(model.PhasePlaying, game.Phase)
	s.Equal(4, game.AliveCount())

	// Second round catches the dragon
	game = s.voteOut(game.ID, hostID, dragon.ID)
	s.Equal(model.PhaseDragonGuess, game.Phase)
	s.Empty(game.Winner)

	// A wrong guess seals the villager win
	game, err := s.app.GameController.GuessWord(s.ctx, game.ID, dragon.ID, "chimney")
	s.Require().NoError(err)
	s.Equal(model.PhaseFinished, game.Phase)
	s.Equal(model.WinnerVillagers, game.Winner)
	s.Equal("chimney", game.DragonGuess)
}

// Test: dragon steals the win by guessing the villager word after being caught
func (s *IntegrationSuite) TestDragonWinsByGuessingWord() {
	game, hostID := s.startedGame("alice", "bob", "carol")
	dragon := s.findDragon(game)

	game = s.voteOut(game.ID, hostID, dragon.ID)
	s.Require().Equal(model.PhaseDragonGuess, game.Phase)

	game, err := s.app.GameController.GuessWord(s.ctx, game.ID, dragon.ID, game.VillagerWord)
	s.Require().NoError(err)
	s.Equal(model.PhaseFinished, game.Phase)
	s.Equal(model.WinnerDragon, game.Winner)
}

// Test: dragon wins by surviving to the final two
func (s *IntegrationSuite) TestDragonWinsBySurviving() {
	game, hostID := s.startedGame("alice", "bob", "carol", "dave", "eve")
	dragon := s.findDragon(game)

	// Pick three targets that are neither the dragon nor the host, so the
	// host can keep calling votes until only two players remain
	var targets []model.PlayerID
	for _, p := range game.Players {
		if p.Role != model.RoleDragon && p.ID != hostID {
			targets = append(targets, p.ID)
		}
	}

	// If the host is the dragon there are four candidates; three is enough
	for _, target := range targets[:3] {
		game = s.voteOut(game.ID, hostID, target)
	}

	s.Equal(model.PhaseFinished, game.Phase)
	s.Equal(model.WinnerDragon, game.Winner)
	s.Equal(2, game.AliveCount())
	s.True(game.Players[dragon.ID].IsAlive)
}

// Test: rematch after a finished game carries players into a fresh lobby
func (s *IntegrationSuite) TestRematchFlow() {
	game, hostID := s.startedGame("alice", "bob", "carol")
	dragon := s.findDragon(game)

	game = s.voteOut(game.ID, hostID, dragon.ID)
	game, err := s.app.GameController.GuessWord(s.ctx, game.ID, dragon.ID, "chimney")
	s.Require().NoError(err)
	s.Require().Equal(model.PhaseFinished, game.Phase)

	// First player to ask creates the rematch lobby
	s.app.MockRandom.QueueString("INTEGGAME001")
	rematch, rematchHost, err := s.app.LobbyController.PlayAgain(s.ctx, game.ID, hostID)
	s.Require().NoError(err)
	s.Equal(model.GameID("INTEGGAME001"), rematch.ID)
	s.Equal(model.PhaseLobby, rematch.Phase)
	s.True(rematchHost.IsHost)

	// The finished game now points at the rematch
	finished, err := s.app.LobbyController.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(rematch.ID, finished.RematchGameID)

	// Remaining players follow with their old nicknames
	for _, p := range game.Players {
		if p.ID == hostID {
			continue
		}
		joined, follower, err := s.app.LobbyController.PlayAgain(s.ctx, game.ID, p.ID)
		s.Require().NoError(err)
		s.Equal(rematch.ID, joined.ID)
		s.Equal(p.Nickname, follower.Nickname)
	}

	rematch, err = s.app.LobbyController.GetGame(s.ctx, rematch.ID)
	s.Require().NoError(err)
	s.Len(rematch.Players, 3)
}

// Test: voting timer expiry discards a stalled round
func (s *IntegrationSuite) TestTimerExpiryDiscardsRound() {
	s.app.MockRandom.QueueString("INTEGGAME000")
	game, host, err := s.app.LobbyController.CreateGame(s.ctx, "alice")
	s.Require().NoError(err)
	_, _, err = s.app.LobbyController.JoinGame(s.ctx, game.ID, "bob")
	s.Require().NoError(err)
	_, _, err = s.app.LobbyController.JoinGame(s.ctx, game.ID, "carol")
	s.Require().NoError(err)

	err = s.app.LobbyController.SetVotingTimer(s.ctx, game.ID, host.ID, 60)
	s.Require().NoError(err)

	game, err = s.app.LobbyController.StartGame(s.ctx, game.ID, host.ID)
	s.Require().NoError(err)

	game, err = s.app.GameController.StartVoting(s.ctx, game.ID, host.ID)
	s.Require().NoError(err)
	s.Require().NotNil(game.VotingStartedAt)

	// One vote comes in, then the round stalls past the deadline
	var other model.PlayerID
	for _, p := range game.Players {
		if p.ID != host.ID {
			other = p.ID
			break
		}
	}
	_, err = s.app.GameController.SubmitVote(s.ctx, game.ID, host.ID, other)
	s.Require().NoError(err)

	s.app.MockClock.Advance(61 * time.Second)

	game, err = s.app.GameController.CheckTimerExpiry(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.PhasePlaying, game.Phase)
	s.Empty(game.Votes)
	s.Nil(game.LastElimination)
	s.Equal(3, game.AliveCount())
}
