package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Capacity errors
	ErrTooManyActiveGames = errors.New("too many active games")
	ErrAlreadyQueued      = errors.New("player already has a game in the queue")

	// Lookup errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrRoomIDMismatch   = errors.New("room id does not match game id")
	ErrNotAllowedInRoom = errors.New("player is not allowed in this room")
	ErrNotAParticipant  = errors.New("player is not a participant of this game")

	// State errors
	ErrGameFinished     = errors.New("game has already been finished")
	ErrGameComplete     = errors.New("game is already complete")
	ErrOpponentNotReady = errors.New("opponent has not set their ships")
	ErrNotYourTurn      = errors.New("not this player's turn")
	ErrShipsAlreadySet  = errors.New("ships have already been placed")

	// Input errors
	ErrOutOfBounds           = errors.New("target is out of bounds")
	ErrTargetAlreadySelected = errors.New("target has already been selected")
	ErrInvalidFleet          = errors.New("invalid ship layout")

	// Board errors
	ErrBoardNotFound = errors.New("board state not found")
)
