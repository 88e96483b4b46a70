package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case JoinedGame:
		o.printJoinedGame(v)
	case GameState:
		o.printSnapshot(v.State)
	case Stats:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Snapshot is one player's view of a game (matches API)
type Snapshot struct {
	GameID  string         `json:"game_id"`
	Phase   string         `json:"phase"`
	Players []PublicPlayer `json:"players"`
	You     Self           `json:"you"`

	PlayerOrder []string `json:"player_order,omitempty"`
	AliveCount  int      `json:"alive_count"`

	VotedPlayerIDs []string `json:"voted_player_ids,omitempty"`

	VotingTimerSeconds int  `json:"voting_timer_seconds,omitempty"`
	TimeRemaining      *int `json:"time_remaining,omitempty"`

	LastElimination *Elimination `json:"last_elimination,omitempty"`

	Winner        string `json:"winner,omitempty"`
	VillagerWord  string `json:"villager_word,omitempty"`
	KnightWord    string `json:"knight_word,omitempty"`
	DragonGuess   string `json:"dragon_guess,omitempty"`
	RematchGameID string `json:"rematch_game_id,omitempty"`
}

// PublicPlayer response type
type PublicPlayer struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	IsAlive  bool   `json:"is_alive"`
	IsHost   bool   `json:"is_host"`
	Role     string `json:"role,omitempty"`
}

// Self response type
type Self struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	IsAlive   bool   `json:"is_alive"`
	IsHost    bool   `json:"is_host"`
	KnowsWord bool   `json:"knows_word"`
	Word      string `json:"word,omitempty"`
	Vote      string `json:"vote,omitempty"`
}

// Elimination response type
type Elimination struct {
	PlayerID   string         `json:"player_id"`
	Nickname   string         `json:"nickname"`
	Role       string         `json:"role"`
	VoteCounts map[string]int `json:"vote_counts"`
	WasTie     bool           `json:"was_tie"`
}

// JoinedGame response type
type JoinedGame struct {
	GameID   string    `json:"game_id"`
	PlayerID string    `json:"player_id"`
	Token    string    `json:"token"`
	State    *Snapshot `json:"state"`
}

// GameState response type
type GameState struct {
	State *Snapshot `json:"state"`
}

// Stats response type
type Stats struct {
	TotalGames   int `json:"total_games"`
	ActiveGames  int `json:"active_games"`
	TotalPlayers int `json:"total_players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printJoinedGame(j JoinedGame) {
	fmt.Printf("Game: %s\n", j.GameID)
	fmt.Printf("Player: %s\n", j.PlayerID)
	fmt.Println("Token saved")
	if j.State != nil {
		fmt.Println()
		o.printSnapshot(j.State)
	}
}

func (o *Output) printSnapshot(s *Snapshot) {
	if s == nil {
		return
	}

	fmt.Printf("Game: %s\n", s.GameID)
	fmt.Printf("Phase: %s\n", s.Phase)
	fmt.Printf("Alive: %d\n", s.AliveCount)

	fmt.Printf("Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		tags := []string{}
		if p.IsHost {
			tags = append(tags, "host")
		}
		if !p.IsAlive {
			tags = append(tags, "out")
		}
		if p.Role != "" {
			tags = append(tags, p.Role)
		}
		tagStr := ""
		if len(tags) > 0 {
			tagStr = " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Printf("  - %s%s\n", p.Nickname, tagStr)
	}

	if s.You.Word != "" {
		fmt.Printf("Your word: %s\n", s.You.Word)
	} else if s.Phase != "lobby" && !s.You.KnowsWord {
		fmt.Println("You do not know the word")
	}

	if s.Phase == "voting" {
		fmt.Printf("Votes in: %d/%d\n", len(s.VotedPlayerIDs), s.AliveCount)
		if s.You.Vote != "" {
			fmt.Printf("Your vote: %s\n", s.You.Vote)
		}
		if s.TimeRemaining != nil {
			fmt.Printf("Time remaining: %ds\n", *s.TimeRemaining)
		}
	}

	if s.LastElimination != nil {
		fmt.Printf("Last eliminated: %s (%s)\n", s.LastElimination.Nickname, s.LastElimination.Role)
	}

	if s.Winner != "" {
		fmt.Printf("\nWinner: %s\n", s.Winner)
		fmt.Printf("Villager word: %s\n", s.VillagerWord)
		fmt.Printf("Knight word: %s\n", s.KnightWord)
		if s.DragonGuess != "" {
			fmt.Printf("Dragon guessed: %s\n", s.DragonGuess)
		}
		if s.RematchGameID != "" {
			fmt.Printf("Rematch: %s\n", s.RematchGameID)
		}
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Total games: %d\n", s.TotalGames)
	fmt.Printf("Active games: %d\n", s.ActiveGames)
	fmt.Printf("Total players: %d\n", s.TotalPlayers)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
