package model

import "time"

// PlayerID uniquely identifies a player across the system. Session and board
// records reference players only by id.
type PlayerID string

// Player is anyone who can queue and play. Guests exist only as long as the
// storage backend keeps them (the redis backend expires them); registered
// players persist.
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool
	CreatedAt   time.Time
}

// RegisteredPlayer holds the credentials for an account. Kept as a separate
// record so the password hash never travels with the Player.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
