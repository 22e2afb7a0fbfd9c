package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/seaquill/battleship-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
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

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "p1", DisplayName: "Alice", IsGuest: true}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", got.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestRegisteredPlayerUsernameIndex() {
	rp := &model.RegisteredPlayer{PlayerID: "p1", Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.ctx, rp))

	got, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.PlayerID)

	_, err = s.storage.GetRegisteredPlayerByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestQueueSlotDefaultsEmpty() {
	slot, err := s.storage.GetQueueSlot(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, slot.Size)
	s.Empty(slot.First)
}

func (s *StorageSuite) TestQueueSlotRoundTrip() {
	s.Require().NoError(s.storage.SaveQueueSlot(s.ctx, &model.QueueSlot{Size: 1, First: "alice", Last: "alice"}))

	slot, err := s.storage.GetQueueSlot(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, slot.Size)
	s.Equal(model.PlayerID("alice"), slot.First)
}

func (s *StorageSuite) TestNextGameIDIsMonotonic() {
	first, err := s.storage.NextGameID(s.ctx)
	s.Require().NoError(err)
	second, err := s.storage.NextGameID(s.ctx)
	s.Require().NoError(err)
	s.Equal(first+1, second)
}

func (s *StorageSuite) TestSessionRoundTripAndRoomIndex() {
	session := s.sampleSession(1, "room-1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	got, err := s.storage.GetSession(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("alice"), got.Player1)

	byRoom, err := s.storage.GetSessionByRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(session.ID, byRoom.ID)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, 42)
	s.ErrorIs(err, model.ErrSessionNotFound)

	_, err = s.storage.GetSessionByRoom(s.ctx, "nowhere")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionsAreCopiedOnRead() {
	session := s.sampleSession(1, "room-1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	got, _ := s.storage.GetSession(s.ctx, 1)
	got.Status = model.SessionComplete

	again, _ := s.storage.GetSession(s.ctx, 1)
	s.Equal(model.SessionActive, again.Status)
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

	count, err = s.storage.CountActiveSessions(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Equal(0, count)
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

func (s *StorageSuite) TestSaveSessionAndBoard() {
	session := s.sampleSession(1, "room-1")
	board := &model.BoardState{GameID: 1, Player1Hits: []model.Target{"A1"}}
	s.Require().NoError(s.storage.SaveSessionAndBoard(s.ctx, session, board))

	gotBoard, err := s.storage.GetBoardState(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal([]model.Target{"A1"}, gotBoard.Player1Hits)

	gotSession, err := s.storage.GetSession(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(session.RoomID, gotSession.RoomID)
}

func (s *StorageSuite) TestGetBoardStateNotFound() {
	_, err := s.storage.GetBoardState(s.ctx, 42)
	s.ErrorIs(err, model.ErrBoardNotFound)
}

func (s *StorageSuite) TestWithSessionLockSerializes() {
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.storage.WithSessionLock(s.ctx, 1, func(ctx context.Context) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	s.Equal(50, counter)
}

func (s *StorageSuite) TestWithQueueLockSerializes() {
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.storage.WithQueueLock(s.ctx, func(ctx context.Context) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	s.Equal(50, counter)
}
