package matchmaking

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/seaquill/battleship-go/internal/dependencies/clock"
	"github.com/seaquill/battleship-go/internal/model"
	"github.com/seaquill/battleship-go/internal/storage"
)

// Queue pairs players seeking a random opponent. It operates on the singleton
// queue slot: at most one session sits in the queue awaiting a player2.
type Queue struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewQueue creates a new matchmaking Queue
func NewQueue(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Queue {
	return &Queue{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "matchmaking")),
	}
}

// JoinResult describes the session a player was placed into
type JoinResult struct {
	Session *model.GameSession
	Role    model.PlayerRole
}

// JoinRandom places the player into the queue. With an empty slot a fresh
// session is created and left waiting; with an occupied slot the requester is
// paired into the waiting session and the slot is cleared. The whole exchange
// runs as one critical section so two simultaneous requesters cannot both
// claim the same slot.
func (q *Queue) JoinRandom(ctx context.Context, playerID model.PlayerID) (*JoinResult, error) {
	var result *JoinResult

	err := q.storage.WithQueueLock(ctx, func(ctx context.Context) error {
		slot, err := q.storage.GetQueueSlot(ctx)
		if err != nil {
			return err
		}

		if slot.Size == 0 {
			result, err = q.createWaitingSession(ctx, playerID)
			return err
		}

		// A player may have at most one session in the queue at a time
		if slot.First == playerID {
			return model.ErrAlreadyQueued
		}

		result, err = q.pairWithWaiting(ctx, slot, playerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// createWaitingSession opens a new session with only player1 assigned and
// marks the slot occupied.
func (q *Queue) createWaitingSession(ctx context.Context, playerID model.PlayerID) (*JoinResult, error) {
	id, err := q.storage.NextGameID(ctx)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	session := &model.GameSession{
		ID:        id,
		RoomID:    model.RoomID(uuid.NewString()),
		Player1:   playerID,
		Status:    model.SessionActive,
		Turn:      model.RolePlayer1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	board := &model.BoardState{GameID: id}

	if err := q.storage.SaveSessionAndBoard(ctx, session, board); err != nil {
		return nil, err
	}

	slot := &model.QueueSlot{Size: 1, First: playerID, Last: playerID}
	if err := q.storage.SaveQueueSlot(ctx, slot); err != nil {
		return nil, err
	}

	q.logger.Info("session queued",
		slog.Int64("game_id", int64(session.ID)),
		slog.String("room_id", string(session.RoomID)),
	)

	return &JoinResult{Session: session, Role: model.RolePlayer1}, nil
}

// pairWithWaiting assigns the requester as player2 of the waiting session and
// clears the slot.
func (q *Queue) pairWithWaiting(ctx context.Context, slot *model.QueueSlot, playerID model.PlayerID) (*JoinResult, error) {
	session, err := q.storage.GetPendingSession(ctx, slot.First)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			// The slot pointed at a session that no longer waits; reset it
			// and queue the requester instead.
			if saveErr := q.storage.SaveQueueSlot(ctx, &model.QueueSlot{}); saveErr != nil {
				return nil, saveErr
			}
			return q.createWaitingSession(ctx, playerID)
		}
		return nil, err
	}

	session.Player2 = playerID
	session.UpdatedAt = q.clock.Now()

	if err := q.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	if err := q.storage.SaveQueueSlot(ctx, &model.QueueSlot{}); err != nil {
		return nil, err
	}

	q.logger.Info("players paired",
		slog.Int64("game_id", int64(session.ID)),
		slog.String("room_id", string(session.RoomID)),
	)

	return &JoinResult{Session: session, Role: model.RolePlayer2}, nil
}
