package model

import "time"

// GameID uniquely identifies a game session. IDs are monotonic per storage backend.
type GameID int64

// RoomID is the opaque public handle for a session's room
type RoomID string

// SessionStatus represents the lifecycle phase of a session
type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionComplete SessionStatus = "complete"
)

// PlayerRole identifies which slot of a session a player occupies
type PlayerRole string

const (
	RolePlayer1 PlayerRole = "player1"
	RolePlayer2 PlayerRole = "player2"
	RoleNone    PlayerRole = ""
)

// Opponent returns the other role
func (r PlayerRole) Opponent() PlayerRole {
	switch r {
	case RolePlayer1:
		return RolePlayer2
	case RolePlayer2:
		return RolePlayer1
	}
	return RoleNone
}

// GameSession is one match between two players
type GameSession struct {
	ID      GameID
	RoomID  RoomID
	Player1 PlayerID
	Player2 PlayerID // empty until matched
	Status  SessionStatus
	Turn    PlayerRole
	Winner  PlayerRole // empty until complete

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleOf returns the role the given player holds in this session, or RoleNone
func (s *GameSession) RoleOf(playerID PlayerID) PlayerRole {
	switch playerID {
	case s.Player1:
		return RolePlayer1
	case s.Player2:
		return RolePlayer2
	}
	return RoleNone
}

// PlayerFor returns the player occupying the given role
func (s *GameSession) PlayerFor(role PlayerRole) PlayerID {
	switch role {
	case RolePlayer1:
		return s.Player1
	case RolePlayer2:
		return s.Player2
	}
	return ""
}

// HasPlayer reports whether the player participates in this session
func (s *GameSession) HasPlayer(playerID PlayerID) bool {
	return s.RoleOf(playerID) != RoleNone
}

// IsPending reports whether the session is still awaiting a second player
func (s *GameSession) IsPending() bool {
	return s.Status == SessionActive && s.Player2 == ""
}

// IsComplete reports whether the session has finished
func (s *GameSession) IsComplete() bool {
	return s.Status == SessionComplete
}

// QueueSlot is the singleton holding area for random matchmaking.
// Size is 0 or 1: at most one session sits in the queue awaiting a player2.
// First/Last allow a longer waiting chain but only capacity-1 is exercised.
type QueueSlot struct {
	Size  int
	First PlayerID
	Last  PlayerID
}
