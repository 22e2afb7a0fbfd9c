package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/seaquill/battleship-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.LockWait = time.Second
	cfg.LockRetryWait = time.Millisecond

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) sampleSession(id model.GameID, room model.RoomID) *model.GameSession {
	return &model.GameSession{
		ID:      id,
		RoomID:  room,
		Player1: "alice",
		Player2: "bob",
		Status:  model.SessionActive,
		Turn:    model.RolePlayer1,
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "p1", DisplayName: "Alice", IsGuest: false}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", got.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerGetsTTL() {
	player := &model.Player{ID: "g1", DisplayName: "Guest", IsGuest: true}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetPlayer(s.ctx, "g1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestRegisteredPlayerUsernameIndex() {
	rp := &model.RegisteredPlayer{PlayerID: "p1", Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.ctx, rp))

	got, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.PlayerID)
}

// Queue slot tests

func (s *StorageSuite) TestQueueSlotMissingMeansEmpty() {
	slot, err := s.storage.GetQueueSlot(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, slot.Size)
}

func (s *StorageSuite) TestQueueSlotRoundTrip() {
	s.Require().NoError(s.storage.SaveQueueSlot(s.ctx, &model.QueueSlot{Size: 1, First: "alice", Last: "alice"}))

	slot, err := s.storage.GetQueueSlot(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, slot.Size)
	s.Equal(model.PlayerID("alice"), slot.First)
}

// Session tests

func (s *StorageSuite) TestNextGameIDIsMonotonic() {
	first, err := s.storage.NextGameID(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.GameID(1), first)

	second, err := s.storage.NextGameID(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.GameID(2), second)
}

func (s *StorageSuite) TestSessionRoundTripAndRoomIndex() {
	session := s.sampleSession(1, "room-1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	got, err := s.storage.GetSession(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("alice"), got.Player1)
	s.Equal(model.RolePlayer1, got.Turn)

	byRoom, err := s.storage.GetSessionByRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(session.ID, byRoom.ID)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, 42)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestCountActiveSessions() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.sampleSession(1, "room-1")))
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.sampleSession(2, "room-2")))

	done := s.sampleSession(3, "room-3")
	done.Status = model.SessionComplete
	s.Require().NoError(s.storage.SaveSession(s.ctx, done))

	count, err := s.storage.CountActiveSessions(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *StorageSuite) TestGetPendingSession() {
	waiting := &model.GameSession{ID: 1, RoomID: "room-1", Player1: "alice", Status: model.SessionActive}
	s.Require().NoError(s.storage.SaveSession(s.ctx, waiting))

	got, err := s.storage.GetPendingSession(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.GameID(1), got.ID)

	_, err = s.storage.GetPendingSession(s.ctx, "bob")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Board tests

func (s *StorageSuite) TestSaveSessionAndBoard() {
	session := s.sampleSession(1, "room-1")
	board := &model.BoardState{
		GameID:       1,
		Player1Ships: model.Fleet{{Name: "destroyer", Length: 2, Cells: []model.Target{"A1", "A2"}}},
		Player1Hits:  []model.Target{"B3"},
	}
	s.Require().NoError(s.storage.SaveSessionAndBoard(s.ctx, session, board))

	gotBoard, err := s.storage.GetBoardState(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal([]model.Target{"B3"}, gotBoard.Player1Hits)
	s.Len(gotBoard.Player1Ships, 1)

	gotSession, err := s.storage.GetSession(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(session.RoomID, gotSession.RoomID)
}

func (s *StorageSuite) TestGetBoardStateNotFound() {
	_, err := s.storage.GetBoardState(s.ctx, 42)
	s.ErrorIs(err, model.ErrBoardNotFound)
}

// Lock tests

func (s *StorageSuite) TestWithSessionLockRuns() {
	ran := false
	err := s.storage.WithSessionLock(s.ctx, 1, func(ctx context.Context) error {
		ran = true
		return nil
	})
	s.Require().NoError(err)
	s.True(ran)
}

func (s *StorageSuite) TestWithSessionLockReleasesAfterUse() {
	s.Require().NoError(s.storage.WithSessionLock(s.ctx, 1, func(ctx context.Context) error {
		return nil
	}))

	// Immediately reacquirable
	s.Require().NoError(s.storage.WithSessionLock(s.ctx, 1, func(ctx context.Context) error {
		return nil
	}))
}

func (s *StorageSuite) TestWithSessionLockTimesOutWhenHeld() {
	// Simulate another holder
	s.Require().NoError(s.mini.Set(sessionLockKey(1), "someone-else"))

	err := s.storage.WithSessionLock(s.ctx, 1, func(ctx context.Context) error {
		return nil
	})
	s.ErrorIs(err, ErrLockTimeout)
}

func (s *StorageSuite) TestWithQueueLockRuns() {
	ran := false
	err := s.storage.WithQueueLock(s.ctx, func(ctx context.Context) error {
		ran = true
		return nil
	})
	s.Require().NoError(err)
	s.True(ran)
}

func (s *StorageSuite) TestDistinctSessionLocksDoNotConflict() {
	s.Require().NoError(s.mini.Set(sessionLockKey(1), "someone-else"))

	err := s.storage.WithSessionLock(s.ctx, 2, func(ctx context.Context) error {
		return nil
	})
	s.NoError(err)
}
