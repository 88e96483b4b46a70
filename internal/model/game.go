package model

import (
	"sort"
	"strings"
	"time"
)

// GameID is a URL-safe, human-shareable game identifier
type GameID string

// Phase represents the current position in the game's state machine
type Phase string

const (
	PhaseLobby       Phase = "lobby"
	PhasePlaying     Phase = "playing"
	PhaseVoting      Phase = "voting"
	PhaseDragonGuess Phase = "dragon_guess"
	PhaseFinished    Phase = "finished"
)

// Winner identifies the winning side of a finished game
type Winner string

const (
	WinnerDragon    Winner = "dragon"
	WinnerVillagers Winner = "villagers"
)

const (
	// MinPlayers is the minimum number of players required to start a round
	MinPlayers = 3
	// MaxPlayers is the largest supported player count for role assignment
	MaxPlayers = 12

	// MinTimerSeconds and MaxTimerSeconds bound the optional voting timer
	MinTimerSeconds = 30
	MaxTimerSeconds = 180
)

// Elimination records the outcome of a vote tally
type Elimination struct {
	PlayerID   PlayerID         `json:"player_id"`
	Nickname   string           `json:"nickname"`
	Role       Role             `json:"role"`
	VoteCounts map[PlayerID]int `json:"vote_counts"`
	WasTie     bool             `json:"was_tie"`
}

// Game holds the full mutable state of one game session.
// The broadcast hub for a game lives outside this struct (see the sse
// package) so game state stays a plain serializable value.
type Game struct {
	ID      GameID
	Phase   Phase
	Players map[PlayerID]*Player

	// VillagerWord is the primary secret word; KnightWord is the decoy
	// shown to knights instead. Both empty until the round starts.
	VillagerWord string
	KnightWord   string

	// PlayerOrder is the shuffled turn order, fixed at round start
	PlayerOrder []PlayerID

	// Votes maps voter ID to target ID, cleared on every voting-phase entry
	Votes map[PlayerID]PlayerID

	// VotingTimerSeconds is 0 when no timer is configured
	VotingTimerSeconds int
	VotingStartedAt    *time.Time

	LastElimination *Elimination

	Winner      Winner
	DragonGuess string

	// RematchGameID links a finished game to its replacement lobby
	RematchGameID GameID

	CreatedAt  time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// NewGame constructs a game in the lobby phase
func NewGame(id GameID, now time.Time) *Game {
	return &Game{
		ID:        id,
		Phase:     PhaseLobby,
		Players:   make(map[PlayerID]*Player),
		Votes:     make(map[PlayerID]PlayerID),
		CreatedAt: now,
	}
}

// Clone returns a deep copy of the game sharing no memory with the
// receiver, so a reader holding one copy never observes a writer's
// mutations to another
func (g *Game) Clone() *Game {
	cp := *g
	cp.Players = make(map[PlayerID]*Player, len(g.Players))
	for id, p := range g.Players {
		pc := *p
		cp.Players[id] = &pc
	}
	if g.PlayerOrder != nil {
		cp.PlayerOrder = append([]PlayerID(nil), g.PlayerOrder...)
	}
	cp.Votes = make(map[PlayerID]PlayerID, len(g.Votes))
	for voter, target := range g.Votes {
		cp.Votes[voter] = target
	}
	if g.VotingStartedAt != nil {
		t := *g.VotingStartedAt
		cp.VotingStartedAt = &t
	}
	if g.LastElimination != nil {
		e := *g.LastElimination
		e.VoteCounts = make(map[PlayerID]int, len(g.LastElimination.VoteCounts))
		for id, n := range g.LastElimination.VoteCounts {
			e.VoteCounts[id] = n
		}
		cp.LastElimination = &e
	}
	if g.StartedAt != nil {
		t := *g.StartedAt
		cp.StartedAt = &t
	}
	if g.FinishedAt != nil {
		t := *g.FinishedAt
		cp.FinishedAt = &t
	}
	return &cp
}

// GetPlayer returns the player with the given ID
func (g *Game) GetPlayer(id PlayerID) (*Player, error) {
	p, ok := g.Players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// Host returns the current host player, or nil if none
func (g *Game) Host() *Player {
	for _, p := range g.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// Dragon returns the dragon player, or nil before roles are assigned
func (g *Game) Dragon() *Player {
	for _, p := range g.Players {
		if p.Role == RoleDragon {
			return p
		}
	}
	return nil
}

// PlayersByJoinOrder returns the players sorted by join time, ties broken
// by ID so the order is stable
func (g *Game) PlayersByJoinOrder() []*Player {
	players := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if !players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].JoinedAt.Before(players[j].JoinedAt)
		}
		return players[i].ID < players[j].ID
	})
	return players
}

// AliveCount returns the number of players still alive
func (g *Game) AliveCount() int {
	count := 0
	for _, p := range g.Players {
		if p.IsAlive {
			count++
		}
	}
	return count
}

// CanStart reports whether the minimum player requirement is met
func (g *Game) CanStart() bool {
	return len(g.Players) >= MinPlayers
}

// HasVoted reports whether the player has an outstanding vote this round
func (g *Game) HasVoted(id PlayerID) bool {
	_, ok := g.Votes[id]
	return ok
}

// NicknameTaken reports whether a nickname is already in use,
// compared case-insensitively
func (g *Game) NicknameTaken(nickname string) bool {
	for _, p := range g.Players {
		if strings.EqualFold(p.Nickname, nickname) {
			return true
		}
	}
	return false
}

// VotingDeadline returns the instant the voting timer expires, or false
// when no timer is running. It is a pure function of stored state so the
// same check works from a polling read path or a scheduled timer.
func (g *Game) VotingDeadline() (time.Time, bool) {
	if g.VotingTimerSeconds == 0 || g.VotingStartedAt == nil {
		return time.Time{}, false
	}
	return g.VotingStartedAt.Add(time.Duration(g.VotingTimerSeconds) * time.Second), true
}

// VotingTimeRemaining returns the whole seconds left on the voting timer,
// floored at zero. The second return is false when no timer is running.
func (g *Game) VotingTimeRemaining(now time.Time) (int, bool) {
	deadline, ok := g.VotingDeadline()
	if !ok {
		return 0, false
	}
	remaining := int(deadline.Sub(now).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}
