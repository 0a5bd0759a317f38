// Package lifecycle is the state machine for listing and delisting jobs.
//
//	pending -> processing -> completed | failed | partially_failed
//	pending | processing -> cancelled
//	failed | partially_failed -> pending   (retry)
//
// Every operation re-reads the job and commits through a compare-and-swap
// update, so a racing process gets domain.ErrConflict instead of a silent
// overwrite.
package lifecycle

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"resaleops/internal/domain"
	"resaleops/internal/ports"
	"resaleops/internal/services/statistics"
)

type Service struct {
	store             ports.JobStore
	executor          ports.Executor
	clock             clockwork.Clock
	log               logrus.FieldLogger
	defaultMaxRetries int
}

type Option func(*Service)

func WithClock(c clockwork.Clock) Option { return func(s *Service) { s.clock = c } }

func WithLogger(l logrus.FieldLogger) Option { return func(s *Service) { s.log = l } }

// WithDefaultMaxRetries applies to drafts that leave MaxRetries unset.
func WithDefaultMaxRetries(n int) Option { return func(s *Service) { s.defaultMaxRetries = n } }

func New(store ports.JobStore, executor ports.Executor, opts ...Option) *Service {
	s := &Service{
		store:             store,
		executor:          executor,
		clock:             clockwork.NewRealClock(),
		log:               logrus.StandardLogger(),
		defaultMaxRetries: 3,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now() time.Time { return s.clock.Now().UTC().Truncate(time.Microsecond) }

func (s *Service) Create(ctx context.Context, draft domain.Draft) (domain.Job, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Job{}, err
	}
	draft.Targets = normalizeTargets(draft.Targets)
	if len(draft.Targets) == 0 {
		return domain.Job{}, domain.Validationf("targets must not be empty")
	}
	if draft.MaxRetries == nil {
		n := s.defaultMaxRetries
		draft.MaxRetries = &n
	}
	if draft.ScheduledFor.IsZero() {
		draft.ScheduledFor = s.now()
	}
	job, err := s.store.Create(ctx, draft)
	if err != nil {
		return domain.Job{}, err
	}
	s.log.WithFields(logrus.Fields{
		"event":   "job_created",
		"job_id":  job.ID,
		"kind":    job.Kind,
		"trigger": job.TriggerType,
		"targets": job.Targets,
	}).Info("job created")
	return job, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Job, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter domain.Filter) ([]domain.Job, error) {
	return s.store.List(ctx, filter)
}

// Statistics computes the dashboard projection over a fresh snapshot.
func (s *Service) Statistics(ctx context.Context, filter domain.Filter) (domain.Statistics, error) {
	jobs, err := s.store.List(ctx, filter)
	if err != nil {
		return domain.Statistics{}, err
	}
	return statistics.Compute(jobs, s.now()), nil
}

func (s *Service) logger(op string, job domain.Job) logrus.FieldLogger {
	return s.log.WithFields(logrus.Fields{"op": op, "job_id": job.ID, "status": job.Status})
}
