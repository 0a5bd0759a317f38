// Package jobrunner dispatches due jobs and watches for jobs stuck in
// processing. One re-list routine is driven by a single invalidate signal;
// the change feed and the fallback ticker only ever raise that signal.
package jobrunner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"

	"resaleops/internal/domain"
	"resaleops/internal/ports"
)

// Dispatcher performs the pending -> processing transition.
type Dispatcher interface {
	Dispatch(ctx context.Context, id string) (domain.Job, error)
}

type Config struct {
	Workers      int
	PollInterval time.Duration
	// ProcessingTimeout raises an alert for jobs processing longer than
	// this. Zero disables the check.
	ProcessingTimeout time.Duration
	// RetryBackoff is the first cooldown after a dispatch that did not go
	// through; it doubles per consecutive failure up to MaxRetryBackoff.
	RetryBackoff    time.Duration
	MaxRetryBackoff time.Duration
}

// cooldown keeps a job out of relist after a failed dispatch.
type cooldown struct {
	until   time.Time
	backoff retry.Backoff
}

type Runner struct {
	store      ports.JobStore
	dispatcher Dispatcher
	cfg        Config
	clock      clockwork.Clock
	log        logrus.FieldLogger

	invalidate chan struct{}

	mu        sync.Mutex
	inflight  map[string]struct{}
	alerted   map[string]time.Time
	cooldowns map[string]*cooldown
}

func New(store ports.JobStore, dispatcher Dispatcher, cfg Config, clock clockwork.Clock, log logrus.FieldLogger) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 5 * time.Second
	}
	if cfg.MaxRetryBackoff < cfg.RetryBackoff {
		cfg.MaxRetryBackoff = 5 * time.Minute
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{
		store:      store,
		dispatcher: dispatcher,
		cfg:        cfg,
		clock:      clock,
		log:        log.WithField("component", "jobrunner"),
		invalidate: make(chan struct{}, 1),
		inflight:   make(map[string]struct{}),
		alerted:    make(map[string]time.Time),
		cooldowns:  make(map[string]*cooldown),
	}
}

// Invalidate asks for a re-list. Calls made before the previous one is
// consumed collapse into it.
func (r *Runner) Invalidate() {
	select {
	case r.invalidate <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is cancelled and all workers have returned.
func (r *Runner) Run(ctx context.Context) {
	unsubscribe, err := r.store.Subscribe(r.Invalidate)
	if err != nil {
		r.log.WithError(err).Warn("change feed unavailable, relying on poll interval")
	} else {
		defer unsubscribe()
	}

	jobsCh := make(chan string, r.cfg.Workers)
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			r.work(ctx, idx, jobsCh)
		}(i)
	}
	r.log.WithField("workers", r.cfg.Workers).Info("job runner started")

	ticker := r.clock.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()
	r.Invalidate()

	for {
		select {
		case <-ctx.Done():
			close(jobsCh)
			wg.Wait()
			r.log.Info("job runner stopped")
			return
		case <-ticker.Chan():
			r.Invalidate()
		case <-r.invalidate:
			r.relist(ctx, jobsCh)
		}
	}
}

func (r *Runner) relist(ctx context.Context, jobsCh chan<- string) {
	jobs, err := r.store.List(ctx, domain.Filter{
		Statuses: []domain.Status{domain.StatusPending, domain.StatusProcessing},
	})
	if err != nil {
		if ctx.Err() == nil {
			r.log.WithError(err).WithField("event", "relist_error").Error("listing active jobs failed")
		}
		return
	}
	now := r.clock.Now()
	r.checkStuck(jobs, now)
	r.pruneCooldowns(jobs)

	// Oldest first so the backlog drains in creation order.
	for i := len(jobs) - 1; i >= 0; i-- {
		job := jobs[i]
		if job.Status != domain.StatusPending || job.AwaitingConfirmation() || !job.Due(now) {
			continue
		}
		if !r.claim(job.ID, now) {
			continue
		}
		select {
		case <-ctx.Done():
			r.release(job.ID)
			return
		case jobsCh <- job.ID:
		}
	}
}

func (r *Runner) work(ctx context.Context, idx int, jobsCh <-chan string) {
	for id := range jobsCh {
		if ctx.Err() != nil {
			r.release(id)
			continue
		}
		log := r.log.WithFields(logrus.Fields{"worker_id": idx, "job_id": id})
		_, err := r.dispatcher.Dispatch(ctx, id)
		// The cooldown is set before the claim is released: a failed dispatch
		// reverts the job to pending, and the change it publishes must not
		// hand the job straight back to a worker.
		switch {
		case err == nil:
			r.forget(id)
		case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrNotFound):
			r.forget(id)
			log.WithError(err).Debug("job no longer dispatchable")
		case errors.Is(err, domain.ErrConflict):
			wait := r.backOff(id)
			log.WithError(err).WithFields(logrus.Fields{"event": "dispatch_conflict", "retry_in": wait.String()}).Warn("dispatch did not go through")
		default:
			wait := r.backOff(id)
			log.WithError(err).WithFields(logrus.Fields{"event": "dispatch_error", "retry_in": wait.String()}).Error("dispatch failed")
		}
		r.release(id)
	}
}

// claim marks id in flight unless it already is or is cooling down.
func (r *Runner) claim(id string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inflight[id]; busy {
		return false
	}
	if c, ok := r.cooldowns[id]; ok && now.Before(c.until) {
		return false
	}
	r.inflight[id] = struct{}{}
	return true
}

// backOff starts or extends the cooldown for id and returns its length.
func (r *Runner) backOff(id string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cooldowns[id]
	if !ok {
		c = &cooldown{backoff: retry.WithCappedDuration(r.cfg.MaxRetryBackoff, retry.NewExponential(r.cfg.RetryBackoff))}
		r.cooldowns[id] = c
	}
	wait, _ := c.backoff.Next()
	c.until = r.clock.Now().Add(wait)
	return wait
}

func (r *Runner) forget(id string) {
	r.mu.Lock()
	delete(r.cooldowns, id)
	r.mu.Unlock()
}

// pruneCooldowns drops cooldowns for jobs that are no longer active. A job
// seen in processing keeps its cooldown: a failing dispatch passes through
// processing before it reverts to pending.
func (r *Runner) pruneCooldowns(jobs []domain.Job) {
	active := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		active[job.ID] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.cooldowns {
		if _, ok := active[id]; !ok {
			delete(r.cooldowns, id)
		}
	}
}

func (r *Runner) release(id string) {
	r.mu.Lock()
	delete(r.inflight, id)
	r.mu.Unlock()
}

// checkStuck alerts once per processing attempt that outlives the timeout.
func (r *Runner) checkStuck(jobs []domain.Job, now time.Time) {
	if r.cfg.ProcessingTimeout <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	active := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		if job.Status != domain.StatusProcessing || job.StartedAt == nil {
			continue
		}
		active[job.ID] = struct{}{}
		if now.Sub(*job.StartedAt) <= r.cfg.ProcessingTimeout {
			continue
		}
		if at, ok := r.alerted[job.ID]; ok && at.Equal(*job.StartedAt) {
			continue
		}
		r.alerted[job.ID] = *job.StartedAt
		r.log.WithFields(logrus.Fields{
			"event":      "job_stuck",
			"job_id":     job.ID,
			"started_at": job.StartedAt.Format(time.RFC3339),
			"elapsed":    now.Sub(*job.StartedAt).String(),
			"pending":    len(job.Targets) - len(job.CompletedTargets) - len(job.FailedTargets),
		}).Warn("job stuck in processing")
	}
	for id := range r.alerted {
		if _, ok := active[id]; !ok {
			delete(r.alerted, id)
		}
	}
}

// Stuck returns the ids currently flagged as stuck.
func (r *Runner) Stuck() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.alerted))
	for id := range r.alerted {
		ids = append(ids, id)
	}
	return ids
}
