package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seaquill/battleship-go/internal/model"
	"github.com/seaquill/battleship-go/internal/services/auth"
	"github.com/seaquill/battleship-go/internal/services/combat"
	"github.com/seaquill/battleship-go/internal/services/session"
)

// Gateway upgrades HTTP requests to websocket connections and routes game
// events between connected players and the services.
type Gateway struct {
	sessions *session.Controller
	combat   *combat.Resolver
	auth     *auth.Service
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewGateway creates a new Gateway
func NewGateway(sessions *session.Controller, combatResolver *combat.Resolver, authService *auth.Service, hub *Hub, logger *slog.Logger) *Gateway {
	return &Gateway{
		sessions: sessions,
		combat:   combatResolver,
		auth:     authService,
		hub:      hub,
		logger:   logger.With(slog.String("component", "ws-gateway")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and pumps events until it drops.
// Authentication failures are reported over the socket itself so browser
// clients can surface the reason, then the connection is closed.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("upgrade failed", slog.String("error", err.Error()))
		return
	}

	player, err := g.authenticate(r)
	if err != nil {
		g.rejectConn(conn)
		return
	}

	client := newClient(g, conn, *player)
	g.logger.Info("client connected", slog.String("player_id", string(player.ID)))

	go client.writePump()
	client.readPump()

	g.logger.Info("client disconnected", slog.String("player_id", string(player.ID)))
}

// authenticate resolves the connecting player from the request credentials
func (g *Gateway) authenticate(r *http.Request) (*model.Player, error) {
	token := ""
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token = strings.TrimPrefix(authHeader, "Bearer ")
	} else {
		// Browser websocket clients cannot set headers
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return nil, auth.ErrInvalidSession
	}
	return g.auth.GetPlayer(token)
}

// rejectConn tells an unauthenticated peer why it is being dropped
func (g *Gateway) rejectConn(conn *websocket.Conn) {
	msg, err := encodeEvent(model.OutboundError, model.ErrorPayload{Error: MsgInvalidAuth})
	if err == nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteMessage(websocket.TextMessage, msg)
	}
	_ = conn.Close()
}

// dispatch routes one inbound frame. Malformed frames and unknown event
// kinds are dropped without side effects.
func (g *Gateway) dispatch(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		g.logger.Warn("malformed frame",
			slog.String("player_id", string(c.player.ID)),
			slog.String("error", err.Error()))
		return
	}

	ctx := context.Background()

	switch model.InboundKind(env.Event) {
	case model.InboundJoinRoom:
		g.handleJoinRoom(ctx, c, env.Data)
	case model.InboundShipsReady:
		g.handleShipsReady(ctx, c, env.Data)
	case model.InboundFire:
		g.handleFire(ctx, c, env.Data)
	case model.InboundSendMessage:
		g.handleSendMessage(c, env.Data)
	default:
		g.logger.Warn("unrecognized event",
			slog.String("player_id", string(c.player.ID)),
			slog.String("event", env.Event))
	}
}

func (g *Gateway) handleJoinRoom(ctx context.Context, c *Client, data json.RawMessage) {
	var req model.JoinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.SendError(err)
		return
	}

	outcome, err := g.sessions.JoinRoom(ctx, c.player.ID, req.Target)
	if err != nil {
		c.SendError(err)
		return
	}

	g.hub.Join(outcome.Session.RoomID, c)

	if outcome.Reconnected {
		c.Send(model.OutboundReconnected, model.ReconnectedPayload{Room: outcome.Session.RoomID})
		return
	}
	c.Send(model.OutboundJoined, model.JoinedPayload{
		Room:   outcome.Session.RoomID,
		Player: outcome.Role,
		GameID: outcome.Session.ID,
	})
}

func (g *Gateway) handleShipsReady(ctx context.Context, c *Client, data json.RawMessage) {
	var req model.ShipsReadyRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.SendError(err)
		return
	}

	if _, err := g.sessions.CommitShips(ctx, c.player.ID, req.Room, model.Fleet(req.Ships)); err != nil {
		c.SendError(err)
		return
	}

	// Tell the opponent; the committer already knows
	g.hub.BroadcastExcept(req.Room, c, model.OutboundOpponentReady, nil)
}

func (g *Gateway) handleFire(ctx context.Context, c *Client, data json.RawMessage) {
	var req model.FireRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.SendError(err)
		return
	}

	result, err := g.combat.Fire(ctx, c.player.ID, req.GameID, req.RoomID, req.Target)
	if err != nil {
		c.SendError(err)
		return
	}

	// A winning shot announces only the winner, never a shot response
	if result.Win {
		g.hub.Broadcast(req.RoomID, model.OutboundWin, model.WinPayload{Winner: result.Winner})
		return
	}

	payload := model.ShotResponsePayload{
		Result:    result.Result,
		PlayerNum: result.Role,
		Target:    result.Target,
		Sunk:      result.Sunk,
	}
	if result.Ship != "" {
		payload.Ship = &result.Ship
	}

	g.hub.Broadcast(req.RoomID, model.OutboundResponse, payload)
}

func (g *Gateway) handleSendMessage(c *Client, data json.RawMessage) {
	var req model.SendMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.SendError(err)
		return
	}

	if !g.hub.InRoom(req.Room, c) {
		c.SendError(model.ErrNotAllowedInRoom)
		return
	}

	g.hub.BroadcastExcept(req.Room, c, model.OutboundChatMessage, model.ChatMessagePayload{
		Username: c.player.DisplayName,
		Message:  req.Message,
	})
}
