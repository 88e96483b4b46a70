package model

// EventType identifies a game change notification pushed over the fanout
// channel. Events carry no state; subscribers re-derive a fresh personalized
// snapshot on receipt.
type EventType string

const (
	EventPlayerJoined   EventType = "player_joined"
	EventPlayerLeft     EventType = "player_left"
	EventTimerUpdated   EventType = "timer_updated"
	EventGameStarted    EventType = "game_started"
	EventVotingStarted  EventType = "voting_started"
	EventVoteSubmitted  EventType = "vote_submitted"
	EventVotingComplete EventType = "voting_complete"
	EventTimerExpired   EventType = "timer_expired"
	EventDragonGuessed  EventType = "dragon_guessed"
	EventRematchCreated EventType = "rematch_created"
)
