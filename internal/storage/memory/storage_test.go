package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mveale/worddragon/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newGame(id model.GameID) *model.Game {
	return model.NewGame(id, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.newGame("GAME12345678")
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	got, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.Equal(game.ID, got.ID)
	s.Equal(model.PhaseLobby, got.Phase)
}

func (s *StorageSuite) TestGetMissingGame() {
	_, err := s.storage.GetGame(s.ctx, "MISSING00000")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSaveOverwritesGame() {
	game := s.newGame("GAME12345678")
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	game.Phase = model.PhasePlaying
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	got, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.Equal(model.PhasePlaying, got.Phase)
}

func (s *StorageSuite) TestSaveGameStoresIndependentCopy() {
	game := s.newGame("GAME12345678")
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	game.Phase = model.PhaseVoting
	game.Players["p1"] = &model.Player{ID: "p1", Nickname: "Alice"}

	got, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.Equal(model.PhaseLobby, got.Phase, "mutations after save must not leak into the store")
	s.Empty(got.Players)
}

func (s *StorageSuite) TestGetGameReturnsIndependentCopies() {
	game := s.newGame("GAME12345678")
	game.Players["p1"] = &model.Player{ID: "p1", Nickname: "Alice", IsAlive: true}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	first, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	first.Players["p1"].IsAlive = false
	first.Votes["p1"] = "p1"

	second, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.True(second.Players["p1"].IsAlive, "one reader's copy must not alias another's")
	s.Empty(second.Votes)
}

func (s *StorageSuite) TestUpdateGamePersistsMutation() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("GAME12345678")))

	updated, err := s.storage.UpdateGame(s.ctx, "GAME12345678", func(game *model.Game) error {
		game.Phase = model.PhasePlaying
		return nil
	})
	s.Require().NoError(err)
	s.Equal(model.PhasePlaying, updated.Phase)

	got, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.Equal(model.PhasePlaying, got.Phase)
}

func (s *StorageSuite) TestUpdateGameErrorAbortsSave() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("GAME12345678")))

	errRejected := errors.New("rejected")
	_, err := s.storage.UpdateGame(s.ctx, "GAME12345678", func(game *model.Game) error {
		game.Phase = model.PhasePlaying
		return errRejected
	})
	s.ErrorIs(err, errRejected)

	got, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.Equal(model.PhaseLobby, got.Phase, "a failed update leaves the stored game untouched")
}

func (s *StorageSuite) TestUpdateMissingGame() {
	_, err := s.storage.UpdateGame(s.ctx, "MISSING00000", func(game *model.Game) error {
		return nil
	})
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	game := s.newGame("GAME12345678")
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	s.Require().NoError(s.storage.DeleteGame(s.ctx, "GAME12345678"))

	_, err := s.storage.GetGame(s.ctx, "GAME12345678")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteMissingGameIsNoop() {
	s.NoError(s.storage.DeleteGame(s.ctx, "MISSING00000"))
}

func (s *StorageSuite) TestGameExists() {
	exists, err := s.storage.GameExists(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("GAME12345678")))

	exists, err = s.storage.GameExists(s.ctx, "GAME12345678")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestListGames() {
	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)

	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("GAMEAAAAAAAA")))
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("GAMEBBBBBBBB")))

	games, err = s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 2)
}
