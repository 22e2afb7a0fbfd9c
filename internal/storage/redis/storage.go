package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seaquill/battleship-go/internal/model"
	"github.com/seaquill/battleship-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, playerKey(player.ID), data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Queue slot operations

func (s *Storage) GetQueueSlot(ctx context.Context) (*model.QueueSlot, error) {
	data, err := s.client.Get(ctx, queueSlotKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Missing record is an empty queue
			return &model.QueueSlot{}, nil
		}
		return nil, err
	}

	var slot model.QueueSlot
	if err := json.Unmarshal(data, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *Storage) SaveQueueSlot(ctx context.Context, slot *model.QueueSlot) error {
	data, err := json.Marshal(slot)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, queueSlotKey(), data, 0).Err()
}

// Session operations

func (s *Storage) NextGameID(ctx context.Context) (model.GameID, error) {
	id, err := s.client.Incr(ctx, gameIDSeqKey()).Result()
	if err != nil {
		return 0, err
	}
	return model.GameID(id), nil
}

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	s.queueSessionWrite(ctx, pipe, session, data)
	_, err = pipe.Exec(ctx)
	return err
}

// queueSessionWrite adds the session record and its indexes to a pipeline
func (s *Storage) queueSessionWrite(ctx context.Context, pipe redis.Pipeliner, session *model.GameSession, data []byte) {
	pipe.Set(ctx, sessionKey(session.ID), data, 0)
	pipe.Set(ctx, roomIndexKey(session.RoomID), int64(session.ID), 0)
	if session.Player1 != "" {
		pipe.SAdd(ctx, playerSessionsIndexKey(session.Player1), int64(session.ID))
	}
	if session.Player2 != "" {
		pipe.SAdd(ctx, playerSessionsIndexKey(session.Player2), int64(session.ID))
	}
}

func (s *Storage) GetSession(ctx context.Context, id model.GameID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) GetSessionByRoom(ctx context.Context, roomID model.RoomID) (*model.GameSession, error) {
	id, err := s.client.Get(ctx, roomIndexKey(roomID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	return s.GetSession(ctx, model.GameID(id))
}

func (s *Storage) CountActiveSessions(ctx context.Context, playerID model.PlayerID) (int, error) {
	sessions, err := s.sessionsForPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, session := range sessions {
		if session.Status == model.SessionActive && session.HasPlayer(playerID) {
			count++
		}
	}
	return count, nil
}

func (s *Storage) GetPendingSession(ctx context.Context, playerID model.PlayerID) (*model.GameSession, error) {
	sessions, err := s.sessionsForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		if session.IsPending() && session.Player1 == playerID {
			return session, nil
		}
	}
	return nil, model.ErrSessionNotFound
}

// sessionsForPlayer fetches all sessions in the player's index set
func (s *Storage) sessionsForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.GameSession, error) {
	ids, err := s.client.SMembers(ctx, playerSessionsIndexKey(playerID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		keys = append(keys, sessionKey(model.GameID(id)))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.GameSession, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var session model.GameSession
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			continue // Skip invalid data
		}
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

// Board operations

func (s *Storage) GetBoardState(ctx context.Context, id model.GameID) (*model.BoardState, error) {
	data, err := s.client.Get(ctx, boardKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBoardNotFound
		}
		return nil, err
	}

	var board model.BoardState
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) SaveSessionAndBoard(ctx context.Context, session *model.GameSession, board *model.BoardState) error {
	sessionData, err := json.Marshal(session)
	if err != nil {
		return err
	}
	boardData, err := json.Marshal(board)
	if err != nil {
		return err
	}

	// Both records commit in one MULTI/EXEC block
	pipe := s.client.TxPipeline()
	s.queueSessionWrite(ctx, pipe, session, sessionData)
	pipe.Set(ctx, boardKey(board.GameID), boardData, 0)
	_, err = pipe.Exec(ctx)
	return err
}

// Critical sections

func (s *Storage) WithSessionLock(ctx context.Context, id model.GameID, fn func(ctx context.Context) error) error {
	return s.withLock(ctx, sessionLockKey(id), fn)
}

func (s *Storage) WithQueueLock(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.withLock(ctx, queueLockKey(), fn)
}
