package wsconn

import (
	"context"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/linkkeeper-io/linkkeeper/internal/closeutil"
	"github.com/linkkeeper-io/linkkeeper/internal/persist"
)

// Source opens WebSocket links asynchronously. Safe for use by independent
// managers; each Open is one self-contained attempt.
type Source struct {
	cfg    Config
	logger *slog.Logger
}

// NewSource creates a Source for one endpoint.
func NewSource(cfg Config, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.applyDefaults()

	return &Source{
		cfg:    cfg,
		logger: logger.With("endpoint", cfg.Endpoint),
	}
}

// Open starts one connection attempt. It never blocks; the attempt resolves
// through the returned outcome handle. Canceling the outcome aborts an
// in-flight dial.
func (s *Source) Open(h persist.Handler[*Link]) *persist.Outcome[*Link] {
	ctx, cancel := context.WithCancel(context.Background())
	o := persist.NewOutcome[*Link](cancel)

	go s.open(ctx, cancel, h, o)
	return o
}

func (s *Source) open(ctx context.Context, cancel context.CancelFunc, h persist.Handler[*Link], o *persist.Outcome[*Link]) {
	defer cancel()

	dialer := websocket.Dialer{
		HandshakeTimeout: s.cfg.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, s.cfg.URL, s.cfg.Header)
	if err != nil {
		// If the attempt was canceled the outcome already resolved and
		// Fail is a no-op.
		o.Fail(err)
		return
	}

	link := newLink(s.cfg, conn, s.logger)
	if !o.Resolve(link) {
		// Canceled while dialing; the fresh connection is ours to discard.
		closeutil.CloseWith(s.logger, link)
		return
	}

	link.installPingHandlers()
	go link.heartbeatLoop()

	s.logger.Debug("websocket connected", "url", s.cfg.URL)

	h.Opened(link)
	h.Writable(link)
	link.readLoop(h)
}
