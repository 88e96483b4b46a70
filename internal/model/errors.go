package model

import "errors"

// Common errors used across the application
var (
	// Lookup errors
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Lobby errors
	ErrGameStarted         = errors.New("game has already started")
	ErrNicknameTaken       = errors.New("nickname is already taken")
	ErrNotHost             = errors.New("player is not the host")
	ErrInsufficientPlayers = errors.New("not enough players to start")
	ErrTooManyPlayers      = errors.New("too many players")
	ErrTimerOutOfRange     = errors.New("timer must be between 30 and 180 seconds")

	// Voting errors
	ErrNotPlaying     = errors.New("can only open voting from the playing phase")
	ErrNotVoting      = errors.New("not in voting phase")
	ErrNotEnoughAlive = errors.New("need at least 2 alive players to vote")
	ErrVoterDead      = errors.New("dead players cannot vote")
	ErrTargetDead     = errors.New("cannot vote for a dead player")
	ErrNoVotes        = errors.New("no votes have been cast")

	// Guess errors
	ErrNotDragon     = errors.New("only the dragon can guess the word")
	ErrNotGuessPhase = errors.New("not in dragon guess phase")

	// Rematch errors
	ErrGameNotFinished    = errors.New("game is not finished")
	ErrRematchUnavailable = errors.New("rematch game is not available")

	// Invariant errors (should never happen; reported but never corrupt state)
	ErrRolePoolMismatch = errors.New("role pool size does not match player count")
	ErrNoWordPairs      = errors.New("no word pairs available")
)
