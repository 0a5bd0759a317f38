package postgres

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"resaleops/internal/adapters/changefeed"
)

// DB is the Postgres-backed JobStore. The pool serves queries; one extra
// connection is held for LISTEN once the first subscriber arrives.
type DB struct {
	Pool  *pgxpool.Pool
	Clock clockwork.Clock
	Log   logrus.FieldLogger

	hub        *changefeed.Hub
	listenOnce sync.Once
	listening  atomic.Bool
	listenCtx  context.Context
	stop       context.CancelFunc
	stopped    chan struct{}
}

func Connect(ctx context.Context, url string, log logrus.FieldLogger) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return New(pool, log), nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool, log logrus.FieldLogger) *DB {
	if log == nil {
		log = logrus.StandardLogger()
	}
	ctx, stop := context.WithCancel(context.Background())
	return &DB{
		Pool:      pool,
		Clock:     clockwork.NewRealClock(),
		Log:       log,
		hub:       changefeed.NewHub(),
		listenCtx: ctx,
		stop:      stop,
		stopped:   make(chan struct{}),
	}
}

// Close stops the change-feed listener, if one was started, and the pool.
func (db *DB) Close() {
	db.stop()
	if db.listening.Load() {
		<-db.stopped
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *DB) now() time.Time { return db.Clock.Now().UTC().Truncate(time.Microsecond) }
