package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks that all required fields are set and values are valid.
func (c *KeeperConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if len(c.Endpoints) == 0 {
		return errors.New("at least one endpoint is required")
	}
	seen := make(map[string]struct{}, len(c.Endpoints))
	for i, ep := range c.Endpoints {
		if err := ep.validate(fmt.Sprintf("endpoints[%d]", i)); err != nil {
			return err
		}
		if _, dup := seen[ep.Name]; dup {
			return fmt.Errorf("endpoints[%d].name %q is not unique", i, ep.Name)
		}
		seen[ep.Name] = struct{}{}
	}

	switch c.Reconnect.Strategy {
	case StrategyDirect, StrategyDelayed, StrategyNone:
	default:
		return fmt.Errorf("reconnect.strategy must be %q, %q, or %q, got %q",
			StrategyDirect, StrategyDelayed, StrategyNone, c.Reconnect.Strategy)
	}
	if c.Reconnect.Strategy == StrategyDelayed && c.Reconnect.Delay <= 0 {
		return errors.New("reconnect.delay must be > 0 for the delayed strategy")
	}
	if c.Reconnect.Workers < 1 {
		return errors.New("reconnect.workers must be >= 1")
	}
	if c.Reconnect.QueueSize < 1 {
		return errors.New("reconnect.queue_size must be >= 1")
	}

	if c.Client.InboxSize < 1 {
		return errors.New("client.inbox_size must be >= 1")
	}

	if c.Recorder.Enabled {
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
		if c.Recorder.BatchSize < 1 {
			return errors.New("recorder.batch_size must be >= 1")
		}
		if c.Recorder.BufferSize < 1 {
			return errors.New("recorder.buffer_size must be >= 1")
		}
	}

	return nil
}

func (ep *EndpointConfig) validate(prefix string) error {
	if ep.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if ep.URL == "" {
		return fmt.Errorf("%s.url is required", prefix)
	}
	u, err := url.Parse(ep.URL)
	if err != nil {
		return fmt.Errorf("%s.url is invalid: %w", prefix, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("%s.url scheme must be ws or wss, got %q", prefix, u.Scheme)
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	return nil
}
