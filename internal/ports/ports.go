package ports

import (
	"context"

	"resaleops/internal/domain"
)

// Lifecycle creates jobs and drives them through their status transitions.
type Lifecycle interface {
	Create(ctx context.Context, draft domain.Draft) (domain.Job, error)
	Get(ctx context.Context, id string) (domain.Job, error)
	List(ctx context.Context, filter domain.Filter) ([]domain.Job, error)
	Statistics(ctx context.Context, filter domain.Filter) (domain.Statistics, error)

	Dispatch(ctx context.Context, id string) (domain.Job, error)
	ReportResult(ctx context.Context, id, target string, outcome domain.Outcome) (domain.Job, error)
	Confirm(ctx context.Context, id string) (domain.Job, error)
	Retry(ctx context.Context, id string) (domain.Job, error)
	Cancel(ctx context.Context, id, reason string) (domain.Job, error)
}
