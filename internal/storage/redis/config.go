package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// GuestPlayerTTL expires guest player records; zero means no expiry
	GuestPlayerTTL time.Duration

	// Lock settings for the per-session and queue critical sections
	LockTTL       time.Duration
	LockWait      time.Duration
	LockRetryWait time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		GuestPlayerTTL: 24 * time.Hour,
		LockTTL:        5 * time.Second,
		LockWait:       5 * time.Second,
		LockRetryWait:  20 * time.Millisecond,
	}
}
