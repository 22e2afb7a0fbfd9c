package memory

import (
	"context"
	"sync"

	"github.com/seaquill/battleship-go/internal/model"
	"github.com/seaquill/battleship-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID

	queueSlot  model.QueueSlot
	nextGameID model.GameID
	sessions   map[model.GameID]*model.GameSession
	roomIndex  map[model.RoomID]model.GameID
	boards     map[model.GameID]*model.BoardState

	queueMu    sync.Mutex
	sessionMus sync.Map // model.GameID -> *sync.Mutex
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		sessions:          make(map[model.GameID]*model.GameSession),
		roomIndex:         make(map[model.RoomID]model.GameID),
		boards:            make(map[model.GameID]*model.BoardState),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Queue slot operations

func (s *Storage) GetQueueSlot(ctx context.Context) (*model.QueueSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot := s.queueSlot
	return &slot, nil
}

func (s *Storage) SaveQueueSlot(ctx context.Context, slot *model.QueueSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queueSlot = *slot
	return nil
}

// Session operations

func (s *Storage) NextGameID(ctx context.Context) (model.GameID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGameID++
	return s.nextGameID, nil
}

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveSessionLocked(session)
	return nil
}

func (s *Storage) saveSessionLocked(session *model.GameSession) {
	cp := *session
	s.sessions[cp.ID] = &cp
	s.roomIndex[cp.RoomID] = cp.ID
}

func (s *Storage) GetSession(ctx context.Context, id model.GameID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	cp := *session
	return &cp, nil
}

func (s *Storage) GetSessionByRoom(ctx context.Context, roomID model.RoomID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.roomIndex[roomID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	cp := *session
	return &cp, nil
}

func (s *Storage) CountActiveSessions(ctx context.Context, playerID model.PlayerID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, session := range s.sessions {
		if session.Status == model.SessionActive && session.HasPlayer(playerID) {
			count++
		}
	}
	return count, nil
}

func (s *Storage) GetPendingSession(ctx context.Context, playerID model.PlayerID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, session := range s.sessions {
		if session.IsPending() && session.Player1 == playerID {
			cp := *session
			return &cp, nil
		}
	}
	return nil, model.ErrSessionNotFound
}

// Board operations

func (s *Storage) GetBoardState(ctx context.Context, id model.GameID) (*model.BoardState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[id]
	if !ok {
		return nil, model.ErrBoardNotFound
	}
	cp := *board
	return &cp, nil
}

func (s *Storage) SaveSessionAndBoard(ctx context.Context, session *model.GameSession, board *model.BoardState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveSessionLocked(session)
	cp := *board
	s.boards[cp.GameID] = &cp
	return nil
}

// Critical sections

func (s *Storage) WithSessionLock(ctx context.Context, id model.GameID, fn func(ctx context.Context) error) error {
	muIface, _ := s.sessionMus.LoadOrStore(id, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()
	return fn(ctx)
}

func (s *Storage) WithQueueLock(ctx context.Context, fn func(ctx context.Context) error) error {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return fn(ctx)
}
