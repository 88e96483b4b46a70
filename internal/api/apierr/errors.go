package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mveale/worddragon/internal/model"
	"github.com/mveale/worddragon/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeGameStarted         = "GAME_STARTED"
	CodeNicknameTaken       = "NICKNAME_TAKEN"
	CodeNotHost             = "NOT_HOST"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeGameFull            = "GAME_FULL"
	CodeTimerOutOfRange     = "TIMER_OUT_OF_RANGE"
	CodeWrongPhase          = "WRONG_PHASE"
	CodeNotEnoughAlive      = "NOT_ENOUGH_ALIVE"
	CodeDeadPlayer          = "DEAD_PLAYER"
	CodeNotDragon           = "NOT_DRAGON"
	CodeRematchUnavailable  = "REMATCH_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameStarted, "Game has already started"}}
	case errors.Is(err, model.ErrNicknameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNicknameTaken, "Nickname is already taken"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrTooManyPlayers):
		return &httpError{http.StatusConflict, APIError{CodeGameFull, "Game is full"}}
	case errors.Is(err, model.ErrTimerOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodeTimerOutOfRange, "Timer must be between 30 and 180 seconds"}}
	case errors.Is(err, model.ErrNotPlaying):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Voting can only be opened during play"}}
	case errors.Is(err, model.ErrNotVoting):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "No voting round is open"}}
	case errors.Is(err, model.ErrNotEnoughAlive):
		return &httpError{http.StatusConflict, APIError{CodeNotEnoughAlive, "Not enough living players to vote"}}
	case errors.Is(err, model.ErrVoterDead):
		return &httpError{http.StatusForbidden, APIError{CodeDeadPlayer, "Dead players cannot vote"}}
	case errors.Is(err, model.ErrTargetDead):
		return &httpError{http.StatusConflict, APIError{CodeDeadPlayer, "Cannot vote for a dead player"}}
	case errors.Is(err, model.ErrNotDragon):
		return &httpError{http.StatusForbidden, APIError{CodeNotDragon, "Only the dragon can guess the word"}}
	case errors.Is(err, model.ErrNotGuessPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "The dragon is not guessing right now"}}
	case errors.Is(err, model.ErrGameNotFinished):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Game is not finished"}}
	case errors.Is(err, model.ErrRematchUnavailable):
		return &httpError{http.StatusGone, APIError{CodeRematchUnavailable, "Rematch game is no longer available"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid token"}}
	case errors.Is(err, auth.ErrTokenExpired):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Token expired"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
