package wsconn

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/linkkeeper-io/linkkeeper/internal/persist"
)

// Link is one live WebSocket connection produced by a Source.
type Link struct {
	cfg    Config
	logger *slog.Logger

	conn *websocket.Conn

	// Inbound messages buffered for Receive
	inbox chan []byte
	done  chan struct{}

	// Write serialization
	writeMu sync.Mutex

	// State
	mu         sync.RWMutex
	connected  bool
	lastPingAt time.Time
	closed     bool
}

func newLink(cfg Config, conn *websocket.Conn, logger *slog.Logger) *Link {
	return &Link{
		cfg:        cfg,
		logger:     logger,
		conn:       conn,
		inbox:      make(chan []byte, cfg.InboxSize),
		done:       make(chan struct{}),
		connected:  true,
		lastPingAt: time.Now(),
	}
}

// Endpoint returns the logical endpoint name this link belongs to.
func (l *Link) Endpoint() string {
	return l.cfg.Endpoint
}

// Connected reports whether the link is still up.
func (l *Link) Connected() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.connected
}

// Send writes one text message to the link.
func (l *Link) Send(data []byte) error {
	l.mu.RLock()
	if !l.connected {
		l.mu.RUnlock()
		return ErrNotConnected
	}
	l.mu.RUnlock()

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.conn.SetWriteDeadline(time.Now().Add(l.cfg.WriteTimeout))
	return l.conn.WriteMessage(websocket.TextMessage, data)
}

// Receive pops one buffered inbound message without blocking. Returns false
// when no message is waiting.
func (l *Link) Receive() ([]byte, bool) {
	select {
	case data := <-l.inbox:
		return data, true
	default:
		return nil, false
	}
}

// Close tears the link down. Idempotent; the handler's Closed callback fires
// once through the read loop.
func (l *Link) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.connected = false
	l.mu.Unlock()

	close(l.done)

	l.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	return l.conn.Close()
}

// installPingHandlers tracks ping traffic for staleness detection. The
// server's pings are answered with pongs.
func (l *Link) installPingHandlers() {
	l.conn.SetPingHandler(func(data string) error {
		l.touchPing()
		return l.conn.WriteControl(
			websocket.PongMessage,
			[]byte(data),
			time.Now().Add(time.Second),
		)
	})
	l.conn.SetPongHandler(func(string) error {
		l.touchPing()
		return nil
	})
}

func (l *Link) touchPing() {
	l.mu.Lock()
	l.lastPingAt = time.Now()
	l.mu.Unlock()
}

// readLoop pumps inbound messages and handler events for this link. It is the
// only goroutine invoking the handler, so per-link callbacks are ordered and
// non-reentrant. The deferred Closed delivery fires exactly once.
func (l *Link) readLoop(h persist.Handler[*Link]) {
	defer func() {
		l.mu.Lock()
		l.connected = false
		l.mu.Unlock()
		h.Closed(l)
	}()

	for {
		select {
		case <-l.done:
			return
		default:
		}

		_, data, err := l.conn.ReadMessage()
		if err != nil {
			select {
			case <-l.done:
				// Local close; the error is expected.
			default:
				l.logger.Debug("link read failed", "error", err)
			}
			return
		}

		select {
		case l.inbox <- data:
			h.Readable(l)
		case <-l.done:
			return
		default:
			l.logger.Warn("inbox full, dropping message")
		}
	}
}

// heartbeatLoop sends keepalive pings and closes the link when no ping
// traffic arrives within the staleness window.
func (l *Link) heartbeatLoop() {
	ticker := time.NewTicker(l.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(l.cfg.WriteTimeout)
			if err := l.conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				l.logger.Debug("failed to send ping", "error", err)
			}

			l.mu.RLock()
			lastPing := l.lastPingAt
			l.mu.RUnlock()

			if time.Since(lastPing) > l.cfg.PingTimeout {
				l.logger.Warn("no ping received, closing stale link",
					"last_ping", lastPing,
					"timeout", l.cfg.PingTimeout,
				)
				l.Close()
				return
			}
		}
	}
}
