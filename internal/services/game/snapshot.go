package game

import (
	"sort"
	"time"

	"github.com/mveale/worddragon/internal/model"
)

// Self is the requesting player's own view of themselves
type Self struct {
	ID        model.PlayerID `json:"id"`
	Nickname  string         `json:"nickname"`
	IsAlive   bool           `json:"is_alive"`
	IsHost    bool           `json:"is_host"`
	KnowsWord bool           `json:"knows_word"`
	// Word is the secret word as this player sees it: the real word for
	// villagers, the decoy for knights, empty for the dragon
	Word string `json:"word,omitempty"`
	// Vote is this player's current vote target, if any
	Vote model.PlayerID `json:"vote,omitempty"`
}

// Snapshot is one player's permitted view of a game. Hidden information
// never leaves the server: roles are withheld until the game finishes and
// each player sees only the word their role entitles them to.
type Snapshot struct {
	GameID  model.GameID         `json:"game_id"`
	Phase   model.Phase          `json:"phase"`
	Players []model.PublicPlayer `json:"players"`
	You     Self                 `json:"you"`

	PlayerOrder []model.PlayerID `json:"player_order,omitempty"`
	AliveCount  int              `json:"alive_count"`

	// VotedPlayerIDs lists who has voted this round, without targets
	VotedPlayerIDs []model.PlayerID `json:"voted_player_ids,omitempty"`

	VotingTimerSeconds int  `json:"voting_timer_seconds,omitempty"`
	TimeRemaining      *int `json:"time_remaining,omitempty"`

	LastElimination *model.Elimination `json:"last_elimination,omitempty"`

	// Populated only once the game is finished
	Winner        model.Winner `json:"winner,omitempty"`
	VillagerWord  string       `json:"villager_word,omitempty"`
	KnightWord    string       `json:"knight_word,omitempty"`
	DragonGuess   string       `json:"dragon_guess,omitempty"`
	RematchGameID model.GameID `json:"rematch_game_id,omitempty"`
}

// SnapshotFor builds the view of the game the given player may see
func SnapshotFor(g *model.Game, playerID model.PlayerID, now time.Time) (*Snapshot, error) {
	player, err := g.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}

	finished := g.Phase == model.PhaseFinished

	players := g.PlayersByJoinOrder()
	roster := make([]model.PublicPlayer, len(players))
	for i, p := range players {
		roster[i] = p.Public(finished)
	}

	snapshot := &Snapshot{
		GameID:  g.ID,
		Phase:   g.Phase,
		Players: roster,
		You: Self{
			ID:        player.ID,
			Nickname:  player.Nickname,
			IsAlive:   player.IsAlive,
			IsHost:    player.IsHost,
			KnowsWord: player.KnowsWord,
			Word:      wordFor(g, player),
			Vote:      g.Votes[playerID],
		},
		PlayerOrder:        g.PlayerOrder,
		AliveCount:         g.AliveCount(),
		VotingTimerSeconds: g.VotingTimerSeconds,
		LastElimination:    g.LastElimination,
	}

	if g.Phase == model.PhaseVoting {
		voted := make([]model.PlayerID, 0, len(g.Votes))
		for voterID := range g.Votes {
			voted = append(voted, voterID)
		}
		sort.Slice(voted, func(i, j int) bool { return voted[i] < voted[j] })
		snapshot.VotedPlayerIDs = voted

		if remaining, ok := g.VotingTimeRemaining(now); ok {
			snapshot.TimeRemaining = &remaining
		}
	}

	if finished {
		snapshot.Winner = g.Winner
		snapshot.VillagerWord = g.VillagerWord
		snapshot.KnightWord = g.KnightWord
		snapshot.DragonGuess = g.DragonGuess
		snapshot.RematchGameID = g.RematchGameID
	}

	return snapshot, nil
}

// wordFor returns the secret word as the player is entitled to see it
func wordFor(g *model.Game, player *model.Player) string {
	if g.Phase == model.PhaseLobby {
		return ""
	}
	switch player.Role {
	case model.RoleVillager:
		return g.VillagerWord
	case model.RoleKnight:
		return g.KnightWord
	default:
		return ""
	}
}
