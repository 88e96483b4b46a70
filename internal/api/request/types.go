package request

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Nickname string `json:"nickname"`
}

// JoinGameRequest is the request body for joining a game
type JoinGameRequest struct {
	Nickname string `json:"nickname"`
}

// SetTimerRequest is the request body for configuring the voting timer
type SetTimerRequest struct {
	Seconds int `json:"seconds"`
}

// VoteRequest is the request body for casting a vote
type VoteRequest struct {
	TargetID string `json:"target_id"`
}

// GuessRequest is the request body for the dragon's word guess
type GuessRequest struct {
	Guess string `json:"guess"`
}
