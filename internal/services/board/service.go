package board

import (
	"strconv"

	"github.com/seaquill/battleship-go/internal/model"
)

// Grid dimensions: columns A-J, rows 1-10
const (
	MinColumn = 'A'
	MaxColumn = 'J'
	MinRow    = 1
	MaxRow    = 10
)

// ShotResult is the outcome of resolving one shot against a defender's fleet
type ShotResult struct {
	Result string // "hit" or "miss"
	Ship   string // name of the struck ship, empty on a miss
	Sunk   bool
}

const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// ParseTarget validates a raw target string and returns it as a coordinate.
// Valid targets are 2-3 characters: a column letter A-J followed by a row
// number 1-10 with no leading zero. Anything else is out of bounds.
func ParseTarget(raw string) (model.Target, error) {
	if len(raw) < 2 || len(raw) > 3 {
		return "", model.ErrOutOfBounds
	}

	col := raw[0]
	if col < MinColumn || col > MaxColumn {
		return "", model.ErrOutOfBounds
	}

	rowStr := raw[1:]
	if rowStr[0] == '0' {
		return "", model.ErrOutOfBounds
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return "", model.ErrOutOfBounds
	}
	if row < MinRow || row > MaxRow {
		return "", model.ErrOutOfBounds
	}

	return model.Target(raw), nil
}

// ResolveShot resolves a coordinate against the defender's fleet. On a hit,
// the struck ship is sunk iff every one of its cells is covered once this
// coordinate joins the attacker's accumulated hit set.
func ResolveShot(target model.Target, defenderShips model.Fleet, attackerHits []model.Target) ShotResult {
	ship := defenderShips.ShipAt(target)
	if ship == nil {
		return ShotResult{Result: ResultMiss}
	}

	hits := append(append([]model.Target{}, attackerHits...), target)
	return ShotResult{
		Result: ResultHit,
		Ship:   ship.Name,
		Sunk:   ship.IsSunkBy(hits),
	}
}

// IsGameWon reports whether the attacker has hit every cell of every
// defender ship. Hit sets never contain duplicates, so a plain count
// comparison suffices.
func IsGameWon(attackerHits []model.Target, defenderShips model.Fleet) bool {
	total := defenderShips.TotalCells()
	return total > 0 && len(attackerHits) >= total
}

// ValidateFleet checks a fleet before it is committed: every ship must name
// itself uniquely, occupy exactly Length valid cells, and no cell may be
// shared between ships.
func ValidateFleet(ships model.Fleet) error {
	if len(ships) == 0 {
		return model.ErrInvalidFleet
	}

	names := make(map[string]struct{}, len(ships))
	occupied := make(map[model.Target]struct{})

	for _, ship := range ships {
		if ship.Name == "" || ship.Length <= 0 || len(ship.Cells) != ship.Length {
			return model.ErrInvalidFleet
		}
		if _, dup := names[ship.Name]; dup {
			return model.ErrInvalidFleet
		}
		names[ship.Name] = struct{}{}

		for _, cell := range ship.Cells {
			if _, err := ParseTarget(string(cell)); err != nil {
				return model.ErrInvalidFleet
			}
			if _, taken := occupied[cell]; taken {
				return model.ErrInvalidFleet
			}
			occupied[cell] = struct{}{}
		}
	}

	return nil
}
