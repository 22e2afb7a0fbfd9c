package combat

import (
	"context"
	"log/slog"

	"github.com/seaquill/battleship-go/internal/dependencies/clock"
	"github.com/seaquill/battleship-go/internal/model"
	"github.com/seaquill/battleship-go/internal/services/board"
	"github.com/seaquill/battleship-go/internal/storage"
)

// Resolver processes shots. Each shot runs as one critical section on its
// session, so validation, recording, and the turn flip cannot interleave
// with a concurrent shot at the same game.
type Resolver struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewResolver creates a new combat Resolver
func NewResolver(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Resolver {
	return &Resolver{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "combat")),
	}
}

// FireResult is the outcome of a resolved shot
type FireResult struct {
	Session *model.GameSession
	Role    model.PlayerRole

	Result string // "hit" or "miss"
	Ship   string // struck ship name, empty on a miss
	Target model.Target
	Sunk   bool

	Win    bool
	Winner model.PlayerRole
}

// Fire resolves one shot by the given player. The session is addressed by
// both its game id and its room id; a mismatch between the two is rejected
// before any state is touched. Exactly one of the firer's hit/miss sets
// gains the coordinate, and on a win the session closes in the same write
// that records the final hit.
func (r *Resolver) Fire(ctx context.Context, playerID model.PlayerID, gameID model.GameID, roomID model.RoomID, rawTarget string) (*FireResult, error) {
	var result *FireResult

	err := r.storage.WithSessionLock(ctx, gameID, func(ctx context.Context) error {
		session, err := r.storage.GetSession(ctx, gameID)
		if err != nil {
			return err
		}
		if session.RoomID != roomID {
			return model.ErrRoomIDMismatch
		}
		if session.IsComplete() {
			return model.ErrGameComplete
		}

		role := session.RoleOf(playerID)
		if role == model.RoleNone {
			return model.ErrNotAParticipant
		}

		state, err := r.storage.GetBoardState(ctx, gameID)
		if err != nil {
			return err
		}

		defender := role.Opponent()
		if state.ShipsFor(defender) == nil {
			return model.ErrOpponentNotReady
		}
		if session.Turn != role {
			return model.ErrNotYourTurn
		}

		target, err := board.ParseTarget(rawTarget)
		if err != nil {
			return err
		}
		if state.HasFired(role, target) {
			return model.ErrTargetAlreadySelected
		}

		shot := board.ResolveShot(target, state.ShipsFor(defender), state.HitsBy(role))
		if shot.Result == board.ResultHit {
			state.RecordHit(role, target)
		} else {
			state.RecordMiss(role, target)
		}

		now := r.clock.Now()
		state.LastMoveAt = now
		session.UpdatedAt = now

		result = &FireResult{
			Session: session,
			Role:    role,
			Result:  shot.Result,
			Ship:    shot.Ship,
			Target:  target,
			Sunk:    shot.Sunk,
		}

		if board.IsGameWon(state.HitsBy(role), state.ShipsFor(defender)) {
			session.Status = model.SessionComplete
			session.Winner = role
			state.Winner = role
			result.Win = true
			result.Winner = role
		} else {
			session.Turn = role.Opponent()
		}

		return r.storage.SaveSessionAndBoard(ctx, session, state)
	})
	if err != nil {
		return nil, err
	}

	if result.Win {
		r.logger.Info("game won",
			slog.Int64("game_id", int64(gameID)),
			slog.String("winner", string(result.Winner)),
		)
	}

	return result, nil
}
