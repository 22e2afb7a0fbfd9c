package storage

import (
	"context"

	"github.com/seaquill/battleship-go/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations own the atomicity guarantees the session engine relies on:
// SaveSessionAndBoard is all-or-nothing, and the With*Lock methods provide a
// scoped critical section so that no two logical operations read-modify-write
// the same session (or the queue slot) concurrently.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Queue slot operations. The slot is a singleton record; writers must hold
	// the queue lock.
	GetQueueSlot(ctx context.Context) (*model.QueueSlot, error)
	SaveQueueSlot(ctx context.Context, slot *model.QueueSlot) error

	// Session operations
	NextGameID(ctx context.Context) (model.GameID, error)
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, id model.GameID) (*model.GameSession, error)
	GetSessionByRoom(ctx context.Context, roomID model.RoomID) (*model.GameSession, error)
	CountActiveSessions(ctx context.Context, playerID model.PlayerID) (int, error)
	// GetPendingSession returns the active session in which the player is the
	// sole participant still awaiting an opponent, or ErrSessionNotFound.
	GetPendingSession(ctx context.Context, playerID model.PlayerID) (*model.GameSession, error)

	// Board operations
	GetBoardState(ctx context.Context, id model.GameID) (*model.BoardState, error)
	// SaveSessionAndBoard persists both records with all-or-nothing semantics.
	SaveSessionAndBoard(ctx context.Context, session *model.GameSession, board *model.BoardState) error

	// WithSessionLock runs fn inside a critical section keyed by the session id.
	// Critical sections are short and must not span player-facing I/O.
	WithSessionLock(ctx context.Context, id model.GameID, fn func(ctx context.Context) error) error

	// WithQueueLock runs fn inside the single-writer critical section guarding
	// the matchmaking queue slot.
	WithQueueLock(ctx context.Context, fn func(ctx context.Context) error) error
}
