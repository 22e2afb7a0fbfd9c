package model

import "time"

// Target is a validated board coordinate such as "A1" or "J10".
// Raw strings become Targets only via the board service's ParseTarget.
type Target string

// Ship is one vessel in a player's fleet
type Ship struct {
	Name   string   `json:"name"`
	Length int      `json:"length"`
	Cells  []Target `json:"cells"`
}

// Occupies reports whether the ship covers the given coordinate
func (s *Ship) Occupies(target Target) bool {
	for _, c := range s.Cells {
		if c == target {
			return true
		}
	}
	return false
}

// IsSunkBy reports whether every cell of the ship appears in the attacker's hit set
func (s *Ship) IsSunkBy(hits []Target) bool {
	for _, c := range s.Cells {
		if !containsTarget(hits, c) {
			return false
		}
	}
	return true
}

// Fleet is a player's committed ship layout. A nil fleet means the player
// has not committed their placement yet.
type Fleet []Ship

// TotalCells returns the sum of all ship lengths
func (f Fleet) TotalCells() int {
	total := 0
	for _, s := range f {
		total += s.Length
	}
	return total
}

// ShipAt returns the ship occupying the given coordinate, or nil
func (f Fleet) ShipAt(target Target) *Ship {
	for i := range f {
		if f[i].Occupies(target) {
			return &f[i]
		}
	}
	return nil
}

// BoardState is the per-session combat bookkeeping record, keyed one-to-one
// with a GameSession. Hits and misses are recorded against the firer: for
// example Player1Hits are coordinates player1 fired at player2's board.
type BoardState struct {
	GameID GameID

	Player1Ships Fleet
	Player2Ships Fleet

	Player1Hits   []Target
	Player1Misses []Target
	Player2Hits   []Target
	Player2Misses []Target

	LastMoveAt time.Time // zero until the first shot
	Winner     PlayerRole
}

// ShipsFor returns the fleet belonging to the given role
func (b *BoardState) ShipsFor(role PlayerRole) Fleet {
	if role == RolePlayer1 {
		return b.Player1Ships
	}
	return b.Player2Ships
}

// SetShipsFor commits the fleet for the given role
func (b *BoardState) SetShipsFor(role PlayerRole, ships Fleet) {
	if role == RolePlayer1 {
		b.Player1Ships = ships
		return
	}
	b.Player2Ships = ships
}

// HitsBy returns the coordinates the given role has hit on the opponent's board
func (b *BoardState) HitsBy(role PlayerRole) []Target {
	if role == RolePlayer1 {
		return b.Player1Hits
	}
	return b.Player2Hits
}

// MissesBy returns the coordinates the given role has missed
func (b *BoardState) MissesBy(role PlayerRole) []Target {
	if role == RolePlayer1 {
		return b.Player1Misses
	}
	return b.Player2Misses
}

// HasFired reports whether the role already fired at the coordinate.
// A coordinate appears in at most one of a firer's hit/miss sets.
func (b *BoardState) HasFired(role PlayerRole, target Target) bool {
	return containsTarget(b.HitsBy(role), target) || containsTarget(b.MissesBy(role), target)
}

// RecordHit appends the coordinate to the role's hit set
func (b *BoardState) RecordHit(role PlayerRole, target Target) {
	if role == RolePlayer1 {
		b.Player1Hits = append(b.Player1Hits, target)
		return
	}
	b.Player2Hits = append(b.Player2Hits, target)
}

// RecordMiss appends the coordinate to the role's miss set
func (b *BoardState) RecordMiss(role PlayerRole, target Target) {
	if role == RolePlayer1 {
		b.Player1Misses = append(b.Player1Misses, target)
		return
	}
	b.Player2Misses = append(b.Player2Misses, target)
}

func containsTarget(set []Target, target Target) bool {
	for _, t := range set {
		if t == target {
			return true
		}
	}
	return false
}
