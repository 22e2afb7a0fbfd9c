package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/seaquill/battleship-go/internal/model"
)

// Hub tracks which clients occupy which rooms and fans events out to them.
// A client may sit in several rooms at once, one per concurrent game.
type Hub struct {
	mu    sync.RWMutex
	rooms map[model.RoomID]map[*Client]struct{}

	logger *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[model.RoomID]map[*Client]struct{}),
		logger: logger.With(slog.String("component", "ws-hub")),
	}
}

// Join places the client into the room
func (h *Hub) Join(roomID model.RoomID, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][client] = struct{}{}
	client.rooms[roomID] = struct{}{}
}

// Leave removes the client from every room it joined. Empty rooms are
// dropped from the registry; room state itself lives in storage, so a room
// with no sockets is still a playable game.
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for roomID := range client.rooms {
		if clients, ok := h.rooms[roomID]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	client.rooms = make(map[model.RoomID]struct{})
}

// InRoom reports whether the client has joined the room
func (h *Hub) InRoom(roomID model.RoomID, client *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := client.rooms[roomID]
	return ok
}

// RoomSize returns the number of sockets in a room
func (h *Hub) RoomSize(roomID model.RoomID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// Broadcast sends an event to every socket in the room
func (h *Hub) Broadcast(roomID model.RoomID, event model.OutboundKind, payload any) {
	h.broadcast(roomID, nil, event, payload)
}

// BroadcastExcept sends an event to every socket in the room except one,
// typically the originator of the action.
func (h *Hub) BroadcastExcept(roomID model.RoomID, except *Client, event model.OutboundKind, payload any) {
	h.broadcast(roomID, except, event, payload)
}

func (h *Hub) broadcast(roomID model.RoomID, except *Client, event model.OutboundKind, payload any) {
	msg, err := encodeEvent(event, payload)
	if err != nil {
		h.logger.Error("failed to encode event",
			slog.String("event", string(event)),
			slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		if client == except {
			continue
		}
		select {
		case client.send <- msg:
		default:
			// Slow consumer; drop rather than stall the room
			h.logger.Warn("message dropped - client buffer full",
				slog.String("player_id", string(client.player.ID)),
				slog.String("event", string(event)))
		}
	}
}

// Envelope is the wire framing for every message in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// encodeEvent wraps a payload in the wire envelope. A nil payload produces
// an envelope with no data field, used for bare signals like opponent_ready.
func encodeEvent(event model.OutboundKind, payload any) ([]byte, error) {
	env := Envelope{Event: string(event)}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}
