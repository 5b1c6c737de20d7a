// Package optimization provides tuning knobs for the server mode:
// channel buffer sizes and database pool settings.
package optimization

import (
	"runtime"
)

// Config holds tuned parameters for the serving path.
type Config struct {
	// Channel buffer sizes
	BroadcastChannelBuffer int
	ClientSendBuffer       int

	// Connection pool
	DBMaxOpenConns int
	DBMaxIdleConns int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	numCPU := runtime.NumCPU()

	return &Config{
		BroadcastChannelBuffer: 256,
		ClientSendBuffer:       64,

		DBMaxOpenConns: numCPU * 2,
		DBMaxIdleConns: numCPU,
	}
}

// LowResourceConfig returns minimal settings for development.
func LowResourceConfig() *Config {
	return &Config{
		BroadcastChannelBuffer: 16,
		ClientSendBuffer:       8,

		DBMaxOpenConns: 2,
		DBMaxIdleConns: 1,
	}
}
