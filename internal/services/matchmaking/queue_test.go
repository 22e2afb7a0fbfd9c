package matchmaking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/seaquill/battleship-go/internal/dependencies/mocks"
	"github.com/seaquill/battleship-go/internal/model"
	"github.com/seaquill/battleship-go/internal/storage/memory"
	"github.com/seaquill/battleship-go/internal/testutil"
)

type QueueSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	queue   *Queue
	ctx     context.Context
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueSuite))
}

func (s *QueueSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.queue = NewQueue(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *QueueSuite) TestJoinRandomEmptyQueueCreatesWaitingSession() {
	result, err := s.queue.JoinRandom(s.ctx, "alice")
	s.Require().NoError(err)

	s.Equal(model.RolePlayer1, result.Role)
	s.Equal(model.PlayerID("alice"), result.Session.Player1)
	s.Empty(result.Session.Player2)
	s.Equal(model.SessionActive, result.Session.Status)
	s.Equal(model.RolePlayer1, result.Session.Turn)
	s.NotEmpty(result.Session.RoomID)
	s.Equal(model.GameID(1), result.Session.ID)

	slot, err := s.storage.GetQueueSlot(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, slot.Size)
	s.Equal(model.PlayerID("alice"), slot.First)
}

func (s *QueueSuite) TestJoinRandomCreatesEmptyBoard() {
	result, err := s.queue.JoinRandom(s.ctx, "alice")
	s.Require().NoError(err)

	board, err := s.storage.GetBoardState(s.ctx, result.Session.ID)
	s.Require().NoError(err)
	s.Nil(board.Player1Ships)
	s.Nil(board.Player2Ships)
	s.Empty(board.Player1Hits)
}

func (s *QueueSuite) TestJoinRandomPairsSecondPlayer() {
	first, err := s.queue.JoinRandom(s.ctx, "alice")
	s.Require().NoError(err)

	second, err := s.queue.JoinRandom(s.ctx, "bob")
	s.Require().NoError(err)

	s.Equal(model.RolePlayer2, second.Role)
	s.Equal(first.Session.ID, second.Session.ID)
	s.Equal(first.Session.RoomID, second.Session.RoomID)
	s.Equal(model.PlayerID("alice"), second.Session.Player1)
	s.Equal(model.PlayerID("bob"), second.Session.Player2)

	slot, err := s.storage.GetQueueSlot(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, slot.Size)
}

func (s *QueueSuite) TestJoinRandomRejectsQueuedPlayer() {
	_, err := s.queue.JoinRandom(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.queue.JoinRandom(s.ctx, "alice")
	s.ErrorIs(err, model.ErrAlreadyQueued)

	// The waiting session must be untouched
	slot, _ := s.storage.GetQueueSlot(s.ctx)
	s.Equal(1, slot.Size)
}

func (s *QueueSuite) TestJoinRandomAfterPairingStartsFreshSession() {
	_, err := s.queue.JoinRandom(s.ctx, "alice")
	s.Require().NoError(err)
	_, err = s.queue.JoinRandom(s.ctx, "bob")
	s.Require().NoError(err)

	third, err := s.queue.JoinRandom(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.RolePlayer1, third.Role)
	s.Equal(model.GameID(2), third.Session.ID)
}

func (s *QueueSuite) TestJoinRandomRecoversFromStaleSlot() {
	// Slot points at a player with no pending session
	err := s.storage.SaveQueueSlot(s.ctx, &model.QueueSlot{Size: 1, First: "ghost", Last: "ghost"})
	s.Require().NoError(err)

	result, err := s.queue.JoinRandom(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.RolePlayer1, result.Role)

	slot, _ := s.storage.GetQueueSlot(s.ctx)
	s.Equal(1, slot.Size)
	s.Equal(model.PlayerID("alice"), slot.First)
}

func (s *QueueSuite) TestJoinRandomAssignsMonotonicGameIDs() {
	a, _ := s.queue.JoinRandom(s.ctx, "alice")
	_, _ = s.queue.JoinRandom(s.ctx, "bob")
	c, _ := s.queue.JoinRandom(s.ctx, "carol")

	s.Equal(model.GameID(1), a.Session.ID)
	s.Equal(model.GameID(2), c.Session.ID)
}
