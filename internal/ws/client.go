package ws

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seaquill/battleship-go/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong before the peer is considered gone
	pongWait = 60 * time.Second

	// Ping interval; must be shorter than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Largest inbound frame we accept
	maxMessageSize = 8192

	// Buffer size for outgoing messages
	sendBufferSize = 64
)

// Client is one connected socket belonging to an authenticated player
type Client struct {
	gateway *Gateway
	conn    *websocket.Conn
	player  model.Player
	send    chan []byte

	// rooms this socket joined; guarded by the hub's mutex
	rooms map[model.RoomID]struct{}
}

func newClient(gateway *Gateway, conn *websocket.Conn, player model.Player) *Client {
	return &Client{
		gateway: gateway,
		conn:    conn,
		player:  player,
		send:    make(chan []byte, sendBufferSize),
		rooms:   make(map[model.RoomID]struct{}),
	}
}

// Send queues an event for this socket only
func (c *Client) Send(event model.OutboundKind, payload any) {
	msg, err := encodeEvent(event, payload)
	if err != nil {
		c.gateway.logger.Error("failed to encode event",
			slog.String("event", string(event)),
			slog.String("error", err.Error()))
		return
	}
	select {
	case c.send <- msg:
	default:
		c.gateway.logger.Warn("message dropped - client buffer full",
			slog.String("player_id", string(c.player.ID)),
			slog.String("event", string(event)))
	}
}

// SendError reports a failed action back to this socket only
func (c *Client) SendError(err error) {
	c.Send(model.OutboundErrorMessage, model.ErrorPayload{Error: ErrorMessage(err)})
}

// readPump reads inbound frames and dispatches them until the connection
// drops. It owns all reads on the connection.
func (c *Client) readPump() {
	defer func() {
		c.gateway.hub.Leave(c)
		close(c.send)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.gateway.logger.Warn("unexpected close",
					slog.String("player_id", string(c.player.ID)),
					slog.String("error", err.Error()))
			}
			return
		}
		c.gateway.dispatch(c, raw)
	}
}

// writePump writes queued frames and keepalive pings. It owns all writes
// on the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
