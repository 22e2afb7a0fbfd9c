package response

import (
	"time"

	"github.com/seaquill/battleship-go/internal/model"
	"github.com/seaquill/battleship-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// GameView is the requesting player's view of one game. The opponent's
// fleet is never included; only whether it has been committed.
type GameView struct {
	GameID int64  `json:"game_id"`
	Room   string `json:"room"`
	Status string `json:"status"`
	Turn   string `json:"turn"`
	Winner string `json:"winner,omitempty"`

	You           string `json:"you"` // player1 or player2
	OpponentReady bool   `json:"opponent_ready"`

	Ships  []model.Ship   `json:"ships,omitempty"`
	Hits   []model.Target `json:"hits"`
	Misses []model.Target `json:"misses"`

	// Shots the opponent has landed on your board
	TakenHits   []model.Target `json:"taken_hits"`
	TakenMisses []model.Target `json:"taken_misses"`

	CreatedAt  time.Time `json:"created_at"`
	LastMoveAt time.Time `json:"last_move_at,omitempty"`
}

// GameViewFor builds the role-scoped view of a session and its board
func GameViewFor(session *model.GameSession, board *model.BoardState, role model.PlayerRole) GameView {
	opponent := role.Opponent()
	return GameView{
		GameID:        int64(session.ID),
		Room:          string(session.RoomID),
		Status:        string(session.Status),
		Turn:          string(session.Turn),
		Winner:        string(session.Winner),
		You:           string(role),
		OpponentReady: board.ShipsFor(opponent) != nil,
		Ships:         board.ShipsFor(role),
		Hits:          board.HitsBy(role),
		Misses:        board.MissesBy(role),
		TakenHits:     board.HitsBy(opponent),
		TakenMisses:   board.MissesBy(opponent),
		CreatedAt:     session.CreatedAt,
		LastMoveAt:    board.LastMoveAt,
	}
}
