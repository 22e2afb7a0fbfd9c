package ws

import (
	"errors"

	"github.com/seaquill/battleship-go/internal/model"
)

// MsgInvalidAuth is sent on the bare "error" event when a connection
// presents no usable credentials.
const MsgInvalidAuth = "Invalid Authorization headers"

// errorMessages maps service errors to the human-readable strings clients
// display. Wording is part of the client contract; do not reword casually.
var errorMessages = map[error]string{
	model.ErrAlreadyQueued:          "You can only have one game in the queue at a given time. Please wait for someone else to match against you.",
	model.ErrTooManyActiveGames:     "You can only have up to 10 active games at any time.",
	model.ErrNotAllowedInRoom:       "You are not allowed in this room",
	model.ErrGameFinished:           "This game has already been finished",
	model.ErrSessionNotFound:        "The game you are trying to modify does not exist",
	model.ErrGameComplete:           "The game you are trying to modify has been completed",
	model.ErrNotAParticipant:        "You are not allowed to make changes to this game",
	model.ErrRoomIDMismatch:         "Incorrect room-id or game-id",
	model.ErrOpponentNotReady:       "Must wait until opponent sets their ships",
	model.ErrNotYourTurn:            "You cannot fire when it is not your turn",
	model.ErrOutOfBounds:            "The target youve selected is out of bounds",
	model.ErrTargetAlreadySelected:  "Target has already been selected",
	model.ErrShipsAlreadySet:        "You have already set your ships for this game",
	model.ErrInvalidFleet:           "Invalid ship layout",
}

const msgInternal = "Something went wrong. Please try again."

// ErrorMessage translates a service error into its client-facing string.
// Unknown errors get a generic message so internals never leak to clients.
func ErrorMessage(err error) string {
	for sentinel, msg := range errorMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return msgInternal
}
