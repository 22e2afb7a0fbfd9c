package handler

import (
	"net/http"

	"github.com/seaquill/battleship-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeGameNotFound       = apierr.CodeGameNotFound
	CodeAlreadyQueued      = apierr.CodeAlreadyQueued
	CodeTooManyGames       = apierr.CodeTooManyGames
	CodeNotInRoom          = apierr.CodeNotInRoom
	CodeNotParticipant     = apierr.CodeNotParticipant
	CodeRoomMismatch       = apierr.CodeRoomMismatch
	CodeGameComplete       = apierr.CodeGameComplete
	CodeOpponentNotReady   = apierr.CodeOpponentNotReady
	CodeNotYourTurn        = apierr.CodeNotYourTurn
	CodeShipsAlreadySet    = apierr.CodeShipsAlreadySet
	CodeOutOfBounds        = apierr.CodeOutOfBounds
	CodeTargetRepeated     = apierr.CodeTargetRepeated
	CodeInvalidFleet       = apierr.CodeInvalidFleet
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
