package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/seaquill/battleship-go/internal/api/middleware"
	"github.com/seaquill/battleship-go/internal/api/request"
	"github.com/seaquill/battleship-go/internal/api/response"
	"github.com/seaquill/battleship-go/internal/services/auth"
)

// Display names appear verbatim in chat-message payloads, so cap their length
const maxDisplayNameLen = 32

// defaultGuestName is assigned to guests who join without naming themselves
const defaultGuestName = "Sailor"

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	authService *auth.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service) *PlayerHandler {
	return &PlayerHandler{
		authService: authService,
	}
}

// CreateGuest handles POST /api/v1/players/guest
func (h *PlayerHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = defaultGuestName
	}
	if len(name) > maxDisplayNameLen {
		WriteError(w, NewInvalidRequestError("display_name must be at most 32 characters"))
		return
	}

	session, err := h.authService.CreateGuestPlayer(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}
	if len(name) > maxDisplayNameLen {
		WriteError(w, NewInvalidRequestError("display_name must be at most 32 characters"))
		return
	}

	session, err := h.authService.RegisterPlayer(r.Context(), req.Username, req.Password, name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
