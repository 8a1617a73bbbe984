package wsconn

import (
	"errors"
	"net/http"
	"time"
)

// Errors
var (
	ErrNotConnected = errors.New("link not connected")
	ErrStaleLink    = errors.New("link stale (no ping)")
)

// Config configures a Source and the links it produces.
type Config struct {
	Endpoint         string        // Logical endpoint name, used in logs and events
	URL              string        // WebSocket URL (ws:// or wss://)
	Header           http.Header   // Extra handshake headers (nil = none)
	HandshakeTimeout time.Duration // Dial handshake deadline
	PingInterval     time.Duration // Keepalive ping cadence
	PingTimeout      time.Duration // Max time without ping traffic before the link is stale
	WriteTimeout     time.Duration // Write deadline for sends
	InboxSize        int           // Inbound message buffer size
}

// DefaultConfig returns sensible defaults for everything but Endpoint and URL.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		PingInterval:     15 * time.Second,
		PingTimeout:      60 * time.Second,
		WriteTimeout:     5 * time.Second,
		InboxSize:        1024,
	}
}

// applyDefaults fills zero-valued tuning fields from DefaultConfig.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = def.HandshakeTimeout
	}
	if c.PingInterval == 0 {
		c.PingInterval = def.PingInterval
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = def.PingTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.InboxSize == 0 {
		c.InboxSize = def.InboxSize
	}
}
