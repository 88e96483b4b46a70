package vote

import (
	"sort"

	"github.com/mveale/worddragon/internal/dependencies/random"
	"github.com/mveale/worddragon/internal/model"
)

// Service handles vote validation and round tallying
type Service struct {
	random random.Random
}

// New creates a new vote Service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// Validate checks that the given vote is legal in the game's current state
func (s *Service) Validate(game *model.Game, voterID, targetID model.PlayerID) error {
	if game.Phase != model.PhaseVoting {
		return model.ErrNotVoting
	}

	voter, err := game.GetPlayer(voterID)
	if err != nil {
		return err
	}
	if !voter.IsAlive {
		return model.ErrVoterDead
	}

	target, err := game.GetPlayer(targetID)
	if err != nil {
		return err
	}
	if !target.IsAlive {
		return model.ErrTargetDead
	}

	return nil
}

// AllSubmitted reports whether every living player has cast a vote
func (s *Service) AllSubmitted(game *model.Game) bool {
	return len(game.Votes) >= game.AliveCount()
}

// Tally counts the round's votes and eliminates the player with the most.
// Ties are broken uniformly at random among the leaders. The eliminated
// player is marked dead and the votes are consumed.
func (s *Service) Tally(game *model.Game) (*model.Elimination, error) {
	if len(game.Votes) == 0 {
		return nil, model.ErrNoVotes
	}

	counts := make(map[model.PlayerID]int)
	for _, targetID := range game.Votes {
		counts[targetID]++
	}

	maxVotes := 0
	for _, count := range counts {
		if count > maxVotes {
			maxVotes = count
		}
	}

	leaders := make([]model.PlayerID, 0, len(counts))
	for targetID, count := range counts {
		if count == maxVotes {
			leaders = append(leaders, targetID)
		}
	}
	// Stable leader order so the random pick is reproducible in tests
	sort.Slice(leaders, func(i, j int) bool {
		return leaders[i] < leaders[j]
	})

	eliminatedID := leaders[s.random.Intn(len(leaders))]
	eliminated, err := game.GetPlayer(eliminatedID)
	if err != nil {
		return nil, err
	}
	eliminated.IsAlive = false

	elimination := &model.Elimination{
		PlayerID:   eliminated.ID,
		Nickname:   eliminated.Nickname,
		Role:       eliminated.Role,
		VoteCounts: counts,
		WasTie:     len(leaders) > 1,
	}
	game.LastElimination = elimination
	game.Votes = make(map[model.PlayerID]model.PlayerID)
	game.VotingStartedAt = nil

	return elimination, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Validate(game *model.Game, voterID, targetID model.PlayerID) error
	AllSubmitted(game *model.Game) bool
	Tally(game *model.Game) (*model.Elimination, error)
}

var _ ServiceInterface = (*Service)(nil)
