package redis

import (
	"fmt"

	"github.com/seaquill/battleship-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "bsgame"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// queueSlotKey returns the Redis key for the singleton matchmaking queue slot
func queueSlotKey() string {
	return fmt.Sprintf("%s:queue_slot", keyPrefix)
}

// gameIDSeqKey returns the Redis key for the monotonic game id counter
func gameIDSeqKey() string {
	return fmt.Sprintf("%s:seq:game_id", keyPrefix)
}

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.GameID) string {
	return fmt.Sprintf("%s:session:%d", keyPrefix, id)
}

// roomIndexKey returns the Redis key for the room_id -> game_id index
func roomIndexKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:idx:room:%s", keyPrefix, roomID)
}

// playerSessionsIndexKey returns the Redis key for the SET of a player's session ids
func playerSessionsIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:player_sessions:%s", keyPrefix, playerID)
}

// boardKey returns the Redis key for a BoardState
func boardKey(id model.GameID) string {
	return fmt.Sprintf("%s:board:%d", keyPrefix, id)
}

// sessionLockKey returns the Redis key for a per-session critical-section lock
func sessionLockKey(id model.GameID) string {
	return fmt.Sprintf("%s:lock:session:%d", keyPrefix, id)
}

// queueLockKey returns the Redis key for the queue critical-section lock
func queueLockKey() string {
	return fmt.Sprintf("%s:lock:queue", keyPrefix)
}
