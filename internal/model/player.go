package model

import "time"

// PlayerID uniquely identifies a player within a game
type PlayerID string

// Role is a player's hidden role, assigned when the round starts
type Role string

const (
	RoleVillager Role = "villager"
	RoleKnight   Role = "knight"
	RoleDragon   Role = "dragon"
)

// Player represents one participant in a game session
type Player struct {
	ID       PlayerID
	Nickname string
	// Role is empty until the round starts
	Role     Role
	IsAlive  bool
	IsHost   bool
	// KnowsWord is false only for the dragon
	KnowsWord bool
	JoinedAt  time.Time
}

// PublicPlayer is the roster entry every participant may see.
// Role is only populated once the game is finished.
type PublicPlayer struct {
	ID       PlayerID `json:"id"`
	Nickname string   `json:"nickname"`
	IsAlive  bool     `json:"is_alive"`
	IsHost   bool     `json:"is_host"`
	Role     Role     `json:"role,omitempty"`
}

// Public returns the hidden-information-safe view of the player.
// Roles are withheld until the game is finished.
func (p *Player) Public(revealRole bool) PublicPlayer {
	pub := PublicPlayer{
		ID:       p.ID,
		Nickname: p.Nickname,
		IsAlive:  p.IsAlive,
		IsHost:   p.IsHost,
	}
	if revealRole {
		pub.Role = p.Role
	}
	return pub
}
