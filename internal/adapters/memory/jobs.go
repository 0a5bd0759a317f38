// Package memory is an in-process JobStore used for local runs without
// Postgres and by tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"resaleops/internal/adapters/changefeed"
	"resaleops/internal/domain"
)

type JobStore struct {
	*changefeed.Hub

	mu    sync.RWMutex
	jobs  map[string]domain.Job
	clock clockwork.Clock
}

func NewJobStore(clock clockwork.Clock) *JobStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &JobStore{
		Hub:   changefeed.NewHub(),
		jobs:  make(map[string]domain.Job),
		clock: clock,
	}
}

func (s *JobStore) now() time.Time { return s.clock.Now().UTC().Truncate(time.Microsecond) }

func (s *JobStore) Create(ctx context.Context, draft domain.Draft) (domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return domain.Job{}, err
	}
	job, err := domain.NewJob(uuid.NewString(), draft, s.now())
	if err != nil {
		return domain.Job{}, err
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	s.Notify()
	return job.Clone(), nil
}

func (s *JobStore) Get(ctx context.Context, id string) (domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return domain.Job{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return domain.Job{}, domain.NotFound("get", id)
	}
	return job.Clone(), nil
}

func (s *JobStore) Update(ctx context.Context, id string, expect domain.Precondition, patch domain.Patch) (domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return domain.Job{}, err
	}
	s.mu.Lock()
	current, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return domain.Job{}, domain.NotFound("update", id)
	}
	if !expect.Holds(current) {
		s.mu.Unlock()
		return domain.Job{}, domain.Conflictf("update", id, "expected %s v%d, found %s v%d",
			expect.Status, expect.Version, current.Status, current.Version)
	}
	next := patch.Apply(current)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return domain.Job{}, domain.Conflictf("update", id, "%v", err)
	}
	next.Version = current.Version + 1
	next.UpdatedAt = s.now()
	if next.UpdatedAt.Before(current.UpdatedAt) {
		next.UpdatedAt = current.UpdatedAt
	}
	s.jobs[id] = next
	s.mu.Unlock()

	s.Notify()
	return next.Clone(), nil
}

func (s *JobStore) List(ctx context.Context, filter domain.Filter) ([]domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	jobs := make([]domain.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		if filter.Matches(job) {
			jobs = append(jobs, job.Clone())
		}
	}
	s.mu.RUnlock()

	domain.SortNewestFirst(jobs)
	return jobs, nil
}
