package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seaquill/battleship-go/internal/model"
	"github.com/seaquill/battleship-go/internal/services/auth"
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
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeAlreadyQueued      = "ALREADY_QUEUED"
	CodeTooManyGames       = "TOO_MANY_ACTIVE_GAMES"
	CodeNotInRoom          = "NOT_IN_ROOM"
	CodeNotParticipant     = "NOT_A_PARTICIPANT"
	CodeRoomMismatch       = "ROOM_MISMATCH"
	CodeGameComplete       = "GAME_COMPLETE"
	CodeOpponentNotReady   = "OPPONENT_NOT_READY"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeShipsAlreadySet    = "SHIPS_ALREADY_SET"
	CodeOutOfBounds        = "TARGET_OUT_OF_BOUNDS"
	CodeTargetRepeated     = "TARGET_ALREADY_SELECTED"
	CodeInvalidFleet       = "INVALID_FLEET"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
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
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrBoardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrAlreadyQueued):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyQueued, "Already waiting in the matchmaking queue"}}
	case errors.Is(err, model.ErrTooManyActiveGames):
		return &httpError{http.StatusConflict, APIError{CodeTooManyGames, "Too many active games"}}
	case errors.Is(err, model.ErrNotAllowedInRoom):
		return &httpError{http.StatusForbidden, APIError{CodeNotInRoom, "Not allowed in this room"}}
	case errors.Is(err, model.ErrNotAParticipant):
		return &httpError{http.StatusForbidden, APIError{CodeNotParticipant, "Not a participant of this game"}}
	case errors.Is(err, model.ErrRoomIDMismatch):
		return &httpError{http.StatusBadRequest, APIError{CodeRoomMismatch, "Room id does not match game id"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameComplete, "Game has already finished"}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{CodeGameComplete, "Game has already finished"}}
	case errors.Is(err, model.ErrOpponentNotReady):
		return &httpError{http.StatusConflict, APIError{CodeOpponentNotReady, "Opponent has not set their ships"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrShipsAlreadySet):
		return &httpError{http.StatusConflict, APIError{CodeShipsAlreadySet, "Ships have already been placed"}}
	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBounds, "Target is out of bounds"}}
	case errors.Is(err, model.ErrTargetAlreadySelected):
		return &httpError{http.StatusConflict, APIError{CodeTargetRepeated, "Target has already been selected"}}
	case errors.Is(err, model.ErrInvalidFleet):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFleet, "Invalid ship layout"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

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
