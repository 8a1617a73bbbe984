package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultReconnectStrategy  = StrategyDelayed
	DefaultReconnectDelay     = 5 * time.Second
	DefaultReconnectWorkers   = 1
	DefaultReconnectQueueSize = 64
	DefaultHandshakeTimeout   = 10 * time.Second
	DefaultPingInterval       = 15 * time.Second
	DefaultPingTimeout        = 60 * time.Second
	DefaultWriteTimeout       = 5 * time.Second
	DefaultInboxSize          = 1024
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultBatchSize          = 500
	DefaultFlushInterval      = 1 * time.Second
	DefaultBufferSize         = 10000
)

func (c *KeeperConfig) applyDefaults() {
	// Reconnect defaults
	if c.Reconnect.Strategy == "" {
		c.Reconnect.Strategy = DefaultReconnectStrategy
	}
	if c.Reconnect.Delay == 0 {
		c.Reconnect.Delay = DefaultReconnectDelay
	}
	if c.Reconnect.Workers == 0 {
		c.Reconnect.Workers = DefaultReconnectWorkers
	}
	if c.Reconnect.QueueSize == 0 {
		c.Reconnect.QueueSize = DefaultReconnectQueueSize
	}

	// Client defaults
	if c.Client.HandshakeTimeout == 0 {
		c.Client.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Client.PingInterval == 0 {
		c.Client.PingInterval = DefaultPingInterval
	}
	if c.Client.PingTimeout == 0 {
		c.Client.PingTimeout = DefaultPingTimeout
	}
	if c.Client.WriteTimeout == 0 {
		c.Client.WriteTimeout = DefaultWriteTimeout
	}
	if c.Client.InboxSize == 0 {
		c.Client.InboxSize = DefaultInboxSize
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Recorder defaults
	if c.Recorder.BatchSize == 0 {
		c.Recorder.BatchSize = DefaultBatchSize
	}
	if c.Recorder.FlushInterval == 0 {
		c.Recorder.FlushInterval = DefaultFlushInterval
	}
	if c.Recorder.BufferSize == 0 {
		c.Recorder.BufferSize = DefaultBufferSize
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
