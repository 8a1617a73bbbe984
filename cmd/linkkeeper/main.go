package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/linkkeeper-io/linkkeeper/internal/closeutil"
	"github.com/linkkeeper-io/linkkeeper/internal/config"
	"github.com/linkkeeper-io/linkkeeper/internal/database"
	"github.com/linkkeeper-io/linkkeeper/internal/persist"
	"github.com/linkkeeper-io/linkkeeper/internal/recorder"
	"github.com/linkkeeper-io/linkkeeper/internal/version"
	"github.com/linkkeeper-io/linkkeeper/internal/workpool"
	"github.com/linkkeeper-io/linkkeeper/internal/wsconn"
)

func main() {
	configPath := flag.String("config", "configs/linkkeeper.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting linkkeeper",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"endpoints", len(cfg.Endpoints),
		"strategy", cfg.Reconnect.Strategy,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Optional lifecycle-event recorder
	var (
		db  *pgxpool.Pool
		rec *recorder.Recorder
	)
	if cfg.Recorder.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)

		db, err = database.Connect(ctx, cfg.Database.Postgres)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		rec = recorder.New(recorder.Config{
			BatchSize:     cfg.Recorder.BatchSize,
			FlushInterval: cfg.Recorder.FlushInterval,
			BufferSize:    cfg.Recorder.BufferSize,
		}, db, logger)
		if err := rec.Start(ctx); err != nil {
			logger.Error("failed to start recorder", "error", err)
			os.Exit(1)
		}
	}

	// Reconnect pool. One worker serializes reconnect attempts across all
	// endpoints, which the managers rely on.
	pool := workpool.New(cfg.Reconnect.Workers, cfg.Reconnect.QueueSize, logger)
	dispatcher := dispatcherFor(cfg.Reconnect, pool)

	// One manager per endpoint
	managers := make([]io.Closer, 0, len(cfg.Endpoints))
	trackers := make([]*linkTracker, 0, len(cfg.Endpoints))
	for _, ep := range cfg.Endpoints {
		wsCfg := wsconn.Config{
			Endpoint:         ep.Name,
			URL:              ep.URL,
			Header:           headerFrom(ep.Headers),
			HandshakeTimeout: cfg.Client.HandshakeTimeout,
			PingInterval:     cfg.Client.PingInterval,
			PingTimeout:      cfg.Client.PingTimeout,
			WriteTimeout:     cfg.Client.WriteTimeout,
			InboxSize:        cfg.Client.InboxSize,
		}

		var source persist.Source[*wsconn.Link] = wsconn.NewSource(wsCfg, logger)
		tracker := &linkTracker{endpoint: ep.Name, logger: logger}
		var handler persist.Handler[*wsconn.Link] = tracker

		if rec != nil {
			source = recorder.NewSourceTap(ep.Name, rec, source)
			handler = recorder.NewTap(ep.Name, rec, handler)
		}

		managers = append(managers, persist.Maintain(source, handler, dispatcher, logger))
		trackers = append(trackers, tracker)

		logger.Info("keeping endpoint", "endpoint", ep.Name, "url", ep.URL)
	}

	// Periodic stats reporting
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				connected := 0
				for _, tr := range trackers {
					if tr.connected() {
						connected++
					}
				}
				attrs := []any{
					"connected", connected,
					"endpoints", len(trackers),
				}
				if rec != nil {
					m := rec.Stats()
					attrs = append(attrs,
						"events_inserted", m.Inserts,
						"event_errors", m.Errors,
					)
				}
				logger.Info("linkkeeper stats", attrs...)
			}
		}
	})

	logger.Info("linkkeeper running", "instance_id", cfg.Instance.ID)

	// Wait for shutdown
	<-ctx.Done()
	g.Wait()

	logger.Info("shutting down...")

	// Stop managers first so dropped links no longer trigger reconnects,
	// then close whatever links are still live.
	for _, m := range managers {
		closeutil.CloseWith(logger, m)
	}
	for _, tr := range trackers {
		closeutil.CloseWith(logger, tr.current())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := pool.Shutdown(shutdownCtx, 10*time.Second); err != nil {
		logger.Warn("reconnect pool shutdown", "error", err)
	}

	if rec != nil {
		if err := rec.Stop(shutdownCtx); err != nil {
			logger.Warn("recorder stop", "error", err)
		}
	}

	logger.Info("linkkeeper stopped")
}

// dispatcherFor maps the configured reconnect strategy onto the pool.
func dispatcherFor(cfg config.ReconnectConfig, pool *workpool.Pool) persist.Dispatcher {
	switch cfg.Strategy {
	case config.StrategyNone:
		return persist.Discard()
	case config.StrategyDelayed:
		delay := cfg.Delay
		return persist.DispatcherFunc(func(task func()) {
			time.AfterFunc(delay, func() { pool.Dispatch(task) })
		})
	default:
		return pool
	}
}

func headerFrom(m map[string]string) http.Header {
	if len(m) == 0 {
		return nil
	}
	h := make(http.Header, len(m))
	for k, v := range m {
		h.Set(k, v)
	}
	return h
}

// linkTracker keeps a reference to the latest live link for an endpoint so
// shutdown can close it.
type linkTracker struct {
	endpoint string
	logger   *slog.Logger

	mu   sync.Mutex
	link *wsconn.Link
}

func (t *linkTracker) Opened(link *wsconn.Link) {
	t.mu.Lock()
	t.link = link
	t.mu.Unlock()
	t.logger.Info("link opened", "endpoint", t.endpoint)
}

func (t *linkTracker) Readable(link *wsconn.Link) {
	// Drain the inbox; a real deployment would hand messages off here.
	for {
		msg, ok := link.Receive()
		if !ok {
			return
		}
		t.logger.Debug("message received", "endpoint", t.endpoint, "bytes", len(msg))
	}
}

func (t *linkTracker) Writable(link *wsconn.Link) {}

func (t *linkTracker) Closed(link *wsconn.Link) {
	t.mu.Lock()
	if t.link == link {
		t.link = nil
	}
	t.mu.Unlock()
	t.logger.Info("link closed", "endpoint", t.endpoint)
}

func (t *linkTracker) connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.link != nil && t.link.Connected()
}

// current returns the live link as an io.Closer, or nil when disconnected.
func (t *linkTracker) current() io.Closer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.link == nil {
		return nil
	}
	return t.link
}
