package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/seaquill/battleship-go/internal/api/middleware"
	"github.com/seaquill/battleship-go/internal/api/response"
	"github.com/seaquill/battleship-go/internal/model"
	"github.com/seaquill/battleship-go/internal/services/session"
)

// SessionHandler handles game session endpoints
type SessionHandler struct {
	sessions *session.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Controller) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

// Get handles GET /api/v1/games/{room}
// Returns the caller's view of the game: their fleet and both shot records,
// never the opponent's ship positions.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room"])

	gameSession, board, role, err := h.sessions.Snapshot(r.Context(), player.ID, roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameViewFor(gameSession, board, role))
}
