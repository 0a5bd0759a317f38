package ports

import (
	"context"

	"resaleops/internal/domain"
)

// JobStore is durable storage for jobs. Every Update is a compare-and-swap:
// it fails with domain.ErrConflict instead of overwriting a job whose status
// or version moved underneath the caller.
type JobStore interface {
	Create(ctx context.Context, draft domain.Draft) (domain.Job, error)
	Get(ctx context.Context, id string) (domain.Job, error)
	Update(ctx context.Context, id string, expect domain.Precondition, patch domain.Patch) (domain.Job, error)
	// List returns a snapshot ordered by CreatedAt, newest first.
	List(ctx context.Context, filter domain.Filter) ([]domain.Job, error)
	ChangeFeed
}

// ChangeFeed delivers best-effort "something changed" wake-ups. Notifications
// may be coalesced and carry no payload; consumers re-list.
type ChangeFeed interface {
	Subscribe(onChange func()) (unsubscribe func(), err error)
}

// Executor hands a dispatched job to the external worker. A nil error is an
// acknowledgment only; per-target results arrive later through ReportResult.
type Executor interface {
	Process(ctx context.Context, job domain.Job) error
}
