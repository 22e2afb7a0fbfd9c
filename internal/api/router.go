package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/seaquill/battleship-go/internal/api/handler"
	"github.com/seaquill/battleship-go/internal/api/middleware"
	"github.com/seaquill/battleship-go/internal/services/auth"
	"github.com/seaquill/battleship-go/internal/services/session"
	"github.com/seaquill/battleship-go/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	SessionController *session.Controller
	Gateway           *ws.Gateway
}

// NewRouter creates a new API router with all routes configured.
// Realtime play happens over the websocket at /ws; the REST surface covers
// accounts and read-only game state for reconnecting clients.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("/{room}", sessionHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Websocket endpoint; the gateway does its own auth so it can report
	// failures over the socket
	if cfg.Gateway != nil {
		r.Handle("/ws", cfg.Gateway)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
