package config

import "time"

// Reconnect strategies.
const (
	StrategyDirect  = "direct"
	StrategyDelayed = "delayed"
	StrategyNone    = "none"
)

// KeeperConfig is the root configuration for a linkkeeper instance.
type KeeperConfig struct {
	Instance  InstanceConfig   `yaml:"instance"`
	Endpoints []EndpointConfig `yaml:"endpoints"`
	Reconnect ReconnectConfig  `yaml:"reconnect"`
	Client    ClientConfig     `yaml:"client"`
	Database  DatabaseConfig   `yaml:"database"`
	Recorder  RecorderConfig   `yaml:"recorder"`
}

// InstanceConfig identifies this keeper.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// EndpointConfig describes one endpoint to keep connected.
type EndpointConfig struct {
	Name    string            `yaml:"name"`
	URL     string            `yaml:"url"` // ws:// or wss://
	Headers map[string]string `yaml:"headers"`
}

// ReconnectConfig holds the reconnect dispatch policy.
type ReconnectConfig struct {
	Strategy  string        `yaml:"strategy"` // "direct", "delayed", or "none"
	Delay     time.Duration `yaml:"delay"`    // Wait before a reconnect attempt (delayed strategy)
	Workers   int           `yaml:"workers"`  // Reconnect pool workers; 1 serializes attempts
	QueueSize int           `yaml:"queue_size"`
}

// ClientConfig holds WebSocket client settings shared by all endpoints.
type ClientConfig struct {
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	PingInterval     time.Duration `yaml:"ping_interval"`
	PingTimeout      time.Duration `yaml:"ping_timeout"` // Max time without ping before the link is stale
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	InboxSize        int           `yaml:"inbox_size"`
}

// DatabaseConfig holds the Postgres connection for the event recorder.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// RecorderConfig holds lifecycle-event recorder settings.
type RecorderConfig struct {
	Enabled       bool          `yaml:"enabled"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}
