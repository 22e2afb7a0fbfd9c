package model

// InboundKind enumerates the event kinds a connected player may send.
// Unrecognized kinds are rejected by the gateway without side effects.
type InboundKind string

const (
	InboundJoinRoom    InboundKind = "join_room"
	InboundShipsReady  InboundKind = "ships_ready"
	InboundFire        InboundKind = "fire"
	InboundSendMessage InboundKind = "send-message"
)

// OutboundKind enumerates the event kinds the server emits
type OutboundKind string

const (
	OutboundJoined        OutboundKind = "joined"
	OutboundReconnected   OutboundKind = "reconnected"
	OutboundOpponentReady OutboundKind = "opponent_ready"
	OutboundResponse      OutboundKind = "response"
	OutboundWin           OutboundKind = "win"
	OutboundChatMessage   OutboundKind = "chat-message"
	OutboundErrorMessage  OutboundKind = "error-message"
	OutboundError         OutboundKind = "error"
)

// JoinRoomRequest targets either the random queue or an explicit room
type JoinRoomRequest struct {
	Target string `json:"target"` // "random" or a room id
}

// JoinTargetRandom is the sentinel target for random matchmaking
const JoinTargetRandom = "random"

// ShipsReadyRequest commits the sender's fleet for a session
type ShipsReadyRequest struct {
	Room  RoomID `json:"room"`
	Ships []Ship `json:"ships"`
}

// FireRequest is one shot at the opponent's board
type FireRequest struct {
	Target string `json:"target"`
	GameID GameID `json:"gameId"`
	RoomID RoomID `json:"roomId"`
}

// SendMessageRequest relays a chat line to the rest of the room
type SendMessageRequest struct {
	Room    RoomID `json:"room"`
	Message string `json:"message"`
}

// JoinedPayload acknowledges entry into a newly assigned session
type JoinedPayload struct {
	Room   RoomID     `json:"room"`
	Player PlayerRole `json:"player"`
	GameID GameID     `json:"gameId"`
}

// ReconnectedPayload acknowledges re-attachment to an existing session
type ReconnectedPayload struct {
	Room RoomID `json:"room"`
}

// ShotResponsePayload is broadcast to both participants after a resolved shot.
// Ship is nil on a miss.
type ShotResponsePayload struct {
	Result    string     `json:"result"` // "hit" or "miss"
	Ship      *string    `json:"ship"`
	PlayerNum PlayerRole `json:"playerNum"` // the firer's role
	Target    Target     `json:"target"`
	Sunk      bool       `json:"sunk"`
}

// WinPayload is broadcast to both participants when a fire wins the game
type WinPayload struct {
	Winner PlayerRole `json:"winner"`
}

// ChatMessagePayload relays a chat line to the other sockets in the room
type ChatMessagePayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ErrorPayload carries a human-readable failure reason to the sender only
type ErrorPayload struct {
	Error string `json:"error"`
}
