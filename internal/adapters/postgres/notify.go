package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

const jobsChannel = "jobs_changed"

// Subscribe registers onChange for the jobs_changed channel. The LISTEN
// connection is opened lazily and kept until Close.
func (db *DB) Subscribe(onChange func()) (func(), error) {
	unsubscribe, err := db.hub.Subscribe(onChange)
	if err != nil {
		return nil, err
	}
	db.listenOnce.Do(func() {
		db.listening.Store(true)
		go db.listen(db.listenCtx, db.listenConn)
	})
	return unsubscribe, nil
}

// listenSession holds one LISTEN connection until it fails. It calls
// listening once the LISTEN command has succeeded.
type listenSession func(ctx context.Context, listening func()) error

func newListenBackoff() retry.Backoff {
	return retry.WithCappedDuration(5*time.Second, retry.NewExponential(100*time.Millisecond))
}

func (db *DB) listen(ctx context.Context, session listenSession) {
	defer close(db.stopped)
	backoff := newListenBackoff()
	for ctx.Err() == nil {
		err := session(ctx, func() { backoff = newListenBackoff() })
		if ctx.Err() != nil {
			return
		}
		wait, _ := backoff.Next()
		db.Log.WithError(err).WithFields(logrus.Fields{
			"event":    "listen_error",
			"retry_in": wait.String(),
		}).Warn("job change feed dropped, reconnecting")
		// Anything may have changed while disconnected.
		db.hub.Notify()
		select {
		case <-ctx.Done():
			return
		case <-db.Clock.After(wait):
		}
	}
}

func (db *DB) listenConn(ctx context.Context, listening func()) error {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen conn: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+jobsChannel); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	listening()
	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			return err
		}
		db.hub.Notify()
	}
}
