package roles

import (
	"github.com/mveale/worddragon/internal/dependencies/random"
	"github.com/mveale/worddragon/internal/model"
)

// Service handles role distribution and secret word selection for a round
type Service struct {
	random random.Random
}

// New creates a new roles Service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// Distribution returns the role counts for the given player count.
// There is always exactly one dragon; knights scale with the table size.
func (s *Service) Distribution(playerCount int) (dragons, knights, villagers int, err error) {
	if playerCount < model.MinPlayers {
		return 0, 0, 0, model.ErrInsufficientPlayers
	}
	if playerCount > model.MaxPlayers {
		return 0, 0, 0, model.ErrTooManyPlayers
	}

	dragons = 1
	knights = (playerCount - 3) / 2
	villagers = playerCount - dragons - knights
	return dragons, knights, villagers, nil
}

// Assign deals shuffled roles to the given players in place and marks
// which of them know the real word. Only the dragon is kept in the dark.
func (s *Service) Assign(players []*model.Player) error {
	dragons, knights, villagers, err := s.Distribution(len(players))
	if err != nil {
		return err
	}

	pool := make([]model.Role, 0, len(players))
	for i := 0; i < dragons; i++ {
		pool = append(pool, model.RoleDragon)
	}
	for i := 0; i < knights; i++ {
		pool = append(pool, model.RoleKnight)
	}
	for i := 0; i < villagers; i++ {
		pool = append(pool, model.RoleVillager)
	}

	if len(pool) != len(players) {
		return model.ErrRolePoolMismatch
	}

	s.random.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for i, player := range players {
		player.Role = pool[i]
		player.KnowsWord = pool[i] != model.RoleDragon
		player.IsAlive = true
	}
	return nil
}

// PickWordPair selects a uniformly random word pair for the round
func (s *Service) PickWordPair() (model.WordPair, error) {
	if len(model.WordPairs) == 0 {
		return model.WordPair{}, model.ErrNoWordPairs
	}
	return model.WordPairs[s.random.Intn(len(model.WordPairs))], nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Distribution(playerCount int) (dragons, knights, villagers int, err error)
	Assign(players []*model.Player) error
	PickWordPair() (model.WordPair, error)
}

var _ ServiceInterface = (*Service)(nil)
