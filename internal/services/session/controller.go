package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/seaquill/battleship-go/internal/dependencies/clock"
	"github.com/seaquill/battleship-go/internal/model"
	"github.com/seaquill/battleship-go/internal/services/board"
	"github.com/seaquill/battleship-go/internal/services/matchmaking"
	"github.com/seaquill/battleship-go/internal/storage"
)

// MaxActiveSessions is the cap on concurrent unfinished games per player
const MaxActiveSessions = 10

// Controller manages session lifecycle: joining (fresh or reconnect) and
// ship placement. Combat itself lives in the combat service.
type Controller struct {
	storage storage.Storage
	queue   *matchmaking.Queue
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new session Controller
func NewController(storage storage.Storage, queue *matchmaking.Queue, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		queue:   queue,
		clock:   clock,
		logger:  logger.With(slog.String("component", "session")),
	}
}

// JoinOutcome describes how a join request resolved
type JoinOutcome struct {
	Session *model.GameSession
	Role    model.PlayerRole
	// Reconnected is true when the player rejoined a room they already occupy
	Reconnected bool
}

// JoinRandom enters the player into random matchmaking, enforcing the
// per-player caps before touching the queue.
func (c *Controller) JoinRandom(ctx context.Context, playerID model.PlayerID) (*JoinOutcome, error) {
	count, err := c.storage.CountActiveSessions(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if count >= MaxActiveSessions {
		return nil, model.ErrTooManyActiveGames
	}

	// A player holding a session in the queue cannot queue another
	if _, err := c.storage.GetPendingSession(ctx, playerID); err == nil {
		return nil, model.ErrAlreadyQueued
	} else if !errors.Is(err, model.ErrSessionNotFound) {
		return nil, err
	}

	result, err := c.queue.JoinRandom(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return &JoinOutcome{Session: result.Session, Role: result.Role}, nil
}

// JoinRoom resolves a join request: "random" goes through matchmaking,
// anything else is treated as a reconnect to an existing room.
func (c *Controller) JoinRoom(ctx context.Context, playerID model.PlayerID, target string) (*JoinOutcome, error) {
	if target == model.JoinTargetRandom {
		return c.JoinRandom(ctx, playerID)
	}
	return c.Reconnect(ctx, playerID, model.RoomID(target))
}

// Reconnect returns the player to a room they already participate in
func (c *Controller) Reconnect(ctx context.Context, playerID model.PlayerID, roomID model.RoomID) (*JoinOutcome, error) {
	session, err := c.storage.GetSessionByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	role := session.RoleOf(playerID)
	if role == model.RoleNone {
		return nil, model.ErrNotAllowedInRoom
	}
	if session.IsComplete() {
		return nil, model.ErrGameFinished
	}

	c.logger.Info("player reconnected",
		slog.Int64("game_id", int64(session.ID)),
		slog.String("room_id", string(session.RoomID)),
	)

	return &JoinOutcome{Session: session, Role: role, Reconnected: true}, nil
}

// CommitShips validates and records a player's fleet placement. A fleet
// commits exactly once; re-commits are rejected. The room is resolved to a
// game id first; the session itself is re-read under the lock, so a fire or
// pairing that lands concurrently is never clobbered by a stale write.
func (c *Controller) CommitShips(ctx context.Context, playerID model.PlayerID, roomID model.RoomID, ships model.Fleet) (*model.GameSession, error) {
	probe, err := c.storage.GetSessionByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var (
		session *model.GameSession
		role    model.PlayerRole
	)
	err = c.storage.WithSessionLock(ctx, probe.ID, func(ctx context.Context) error {
		current, err := c.storage.GetSession(ctx, probe.ID)
		if err != nil {
			return err
		}
		session = current

		role = session.RoleOf(playerID)
		if role == model.RoleNone {
			return model.ErrNotAllowedInRoom
		}
		if session.IsComplete() {
			return model.ErrGameComplete
		}

		if err := board.ValidateFleet(ships); err != nil {
			return err
		}

		state, err := c.storage.GetBoardState(ctx, session.ID)
		if err != nil {
			return err
		}

		if state.ShipsFor(role) != nil {
			return model.ErrShipsAlreadySet
		}
		state.SetShipsFor(role, ships)

		session.UpdatedAt = c.clock.Now()
		return c.storage.SaveSessionAndBoard(ctx, session, state)
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("ships committed",
		slog.Int64("game_id", int64(session.ID)),
		slog.String("role", string(role)),
	)

	return session, nil
}

// Get returns the session behind a room, without membership checks
func (c *Controller) Get(ctx context.Context, roomID model.RoomID) (*model.GameSession, error) {
	return c.storage.GetSessionByRoom(ctx, roomID)
}

// Snapshot returns the session, its board, and the caller's role. Only
// participants may read a session's board.
func (c *Controller) Snapshot(ctx context.Context, playerID model.PlayerID, roomID model.RoomID) (*model.GameSession, *model.BoardState, model.PlayerRole, error) {
	session, err := c.storage.GetSessionByRoom(ctx, roomID)
	if err != nil {
		return nil, nil, model.RoleNone, err
	}

	role := session.RoleOf(playerID)
	if role == model.RoleNone {
		return nil, nil, model.RoleNone, model.ErrNotAllowedInRoom
	}

	state, err := c.storage.GetBoardState(ctx, session.ID)
	if err != nil {
		return nil, nil, model.RoleNone, err
	}

	return session, state, role, nil
}
