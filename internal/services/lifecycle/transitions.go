package lifecycle

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"resaleops/internal/domain"
)

// Dispatch moves a due pending job to processing and hands it to the
// executor. If the executor does not acknowledge, the job goes back to
// pending and a Conflict-class error is returned.
func (s *Service) Dispatch(ctx context.Context, id string) (domain.Job, error) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	return s.dispatch(ctx, job)
}

func (s *Service) dispatch(ctx context.Context, job domain.Job) (domain.Job, error) {
	const op = "dispatch"
	now := s.now()
	switch {
	case job.Status != domain.StatusPending:
		return domain.Job{}, domain.InvalidStatef(op, job.ID, "cannot dispatch a %s job", job.Status)
	case job.AwaitingConfirmation():
		return domain.Job{}, domain.InvalidStatef(op, job.ID, "job is awaiting confirmation")
	case !job.Due(now):
		return domain.Job{}, domain.InvalidStatef(op, job.ID, "job is scheduled for %s", job.ScheduledFor.Format(time.RFC3339))
	}

	if len(job.Targets) == 0 {
		completed, empty := domain.StatusCompleted, []string{}
		done, err := s.store.Update(ctx, job.ID, domain.Expect(job), domain.Patch{
			Status:           &completed,
			CompletedTargets: &empty,
			FailedTargets:    &empty,
			StartedAt:        domain.At(now),
			CompletedAt:      domain.At(now),
		})
		if err != nil {
			return domain.Job{}, err
		}
		s.logger(op, done).Warn("job has no targets, completed without execution")
		return done, nil
	}

	processing := domain.StatusProcessing
	started, err := s.store.Update(ctx, job.ID, domain.Expect(job), domain.Patch{
		Status:    &processing,
		StartedAt: domain.At(now),
	})
	if err != nil {
		return domain.Job{}, err
	}

	if err := s.executor.Process(ctx, started); err != nil {
		s.revertDispatch(ctx, started, err)
		return domain.Job{}, domain.Transient(op, job.ID, err)
	}
	s.logger(op, started).WithField("event", "job_dispatched").Info("job dispatched")
	return started, nil
}

// revertDispatch puts an unacknowledged job back to pending. If the worker
// already reported against it the CAS fails and the job is left alone.
func (s *Service) revertDispatch(ctx context.Context, started domain.Job, cause error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	pending := domain.StatusPending
	_, err := s.store.Update(ctx, started.ID, domain.Expect(started), domain.Patch{
		Status:    &pending,
		StartedAt: domain.Clear(),
	})
	log := s.logger("dispatch", started).WithError(cause)
	if err != nil {
		log.WithField("revert_error", err.Error()).Error("executor call failed and job could not be reverted to pending")
		return
	}
	log.WithField("event", "dispatch_reverted").Warn("executor call failed, job returned to pending")
}

// ReportResult records one target's outcome for a processing job. A target
// already reported is a no-op, even once the job has finished, and so is
// any result for a cancelled job.
func (s *Service) ReportResult(ctx context.Context, id, target string, outcome domain.Outcome) (domain.Job, error) {
	const op = "report_result"
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	target = NormalizeTarget(target)
	if !outcome.Valid() {
		return domain.Job{}, &domain.Error{Kind: domain.ErrValidation, Op: op, JobID: id, Msg: fmt.Sprintf("unknown outcome %q", outcome)}
	}

	switch {
	case job.Status == domain.StatusCancelled:
		s.logger(op, job).WithField("target", target).Info("ignoring result for cancelled job")
		return job, nil
	case job.Reported(target):
		// Redelivery, possibly after the job already finished.
		s.logger(op, job).WithField("target", target).Debug("duplicate result ignored")
		return job, nil
	case job.Status != domain.StatusProcessing:
		return domain.Job{}, domain.InvalidStatef(op, id, "cannot report results for a %s job", job.Status)
	}
	if !slices.Contains(job.Targets, target) {
		return domain.Job{}, &domain.Error{Kind: domain.ErrValidation, Op: op, JobID: id, Msg: fmt.Sprintf("%q is not a target of this job", target)}
	}

	completed := slices.Clone(job.CompletedTargets)
	failed := slices.Clone(job.FailedTargets)
	if outcome == domain.OutcomeSuccess {
		completed = append(completed, target)
	} else {
		failed = append(failed, target)
	}
	patch := domain.Patch{CompletedTargets: &completed, FailedTargets: &failed}
	if len(completed)+len(failed) == len(job.Targets) {
		final := finalStatus(len(completed), len(failed))
		patch.Status = &final
		patch.CompletedAt = domain.At(s.now())
	}

	updated, err := s.store.Update(ctx, id, domain.Expect(job), patch)
	if err != nil {
		return domain.Job{}, err
	}
	log := s.logger(op, updated).WithFields(logrus.Fields{"target": target, "outcome": outcome})
	if updated.Status != domain.StatusProcessing {
		log.WithField("event", "job_finished").Info("job finished")
	} else {
		log.Debug("result recorded")
	}
	return updated, nil
}

func finalStatus(completed, failed int) domain.Status {
	switch {
	case failed == 0:
		return domain.StatusCompleted
	case completed == 0:
		return domain.StatusFailed
	default:
		return domain.StatusPartiallyFailed
	}
}

// Confirm records approval for a job that needs it and dispatches it at
// once, pulling a future ScheduledFor forward to now.
func (s *Service) Confirm(ctx context.Context, id string) (domain.Job, error) {
	const op = "confirm"
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	if job.Status != domain.StatusPending {
		return domain.Job{}, domain.InvalidStatef(op, id, "cannot confirm a %s job", job.Status)
	}
	if !job.RequiresConfirmation {
		return domain.Job{}, domain.InvalidStatef(op, id, "job does not require confirmation")
	}

	if job.ConfirmedAt == nil {
		now := s.now()
		patch := domain.Patch{ConfirmedAt: domain.At(now)}
		if job.ScheduledFor.After(now) {
			patch.ScheduledFor = &now
		}
		job, err = s.store.Update(ctx, id, domain.Expect(job), patch)
		if err != nil {
			return domain.Job{}, err
		}
		s.logger(op, job).WithField("event", "job_confirmed").Info("job confirmed")
	}
	return s.dispatch(ctx, job)
}

// Retry sends a failed or partially failed job back to pending for another
// attempt against all of its targets.
func (s *Service) Retry(ctx context.Context, id string) (domain.Job, error) {
	const op = "retry"
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	// An exhausted budget wins over the status check, whatever the status.
	if job.RetryCount >= job.MaxRetries {
		return domain.Job{}, &domain.Error{
			Kind:  domain.ErrRetryExhausted,
			Op:    op,
			JobID: id,
			Msg:   fmt.Sprintf("retried %d of %d allowed times", job.RetryCount, job.MaxRetries),
		}
	}
	if job.Status != domain.StatusFailed && job.Status != domain.StatusPartiallyFailed {
		return domain.Job{}, domain.InvalidStatef(op, id, "cannot retry a %s job", job.Status)
	}

	now := s.now()
	pending, count, empty := domain.StatusPending, job.RetryCount+1, []string{}
	updated, err := s.store.Update(ctx, id, domain.Expect(job), domain.Patch{
		Status:           &pending,
		RetryCount:       &count,
		CompletedTargets: &empty,
		FailedTargets:    &empty,
		ScheduledFor:     &now,
		StartedAt:        domain.Clear(),
		CompletedAt:      domain.Clear(),
	})
	if err != nil {
		return domain.Job{}, err
	}
	s.logger(op, updated).WithFields(logrus.Fields{
		"event":       "job_retried",
		"retry_count": updated.RetryCount,
		"max_retries": updated.MaxRetries,
	}).Info("job queued for retry")
	return updated, nil
}

// Cancel stops tracking a job as active. It does not recall work already
// handed to the executor; late results are ignored by ReportResult.
func (s *Service) Cancel(ctx context.Context, id, reason string) (domain.Job, error) {
	const op = "cancel"
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	if job.Status != domain.StatusPending && job.Status != domain.StatusProcessing {
		return domain.Job{}, domain.InvalidStatef(op, id, "cannot cancel a %s job", job.Status)
	}

	cancelled := domain.StatusCancelled
	reason = strings.TrimSpace(reason)
	updated, err := s.store.Update(ctx, id, domain.Expect(job), domain.Patch{
		Status:       &cancelled,
		CancelReason: &reason,
		CancelledAt:  domain.At(s.now()),
	})
	if err != nil {
		return domain.Job{}, err
	}
	s.logger(op, updated).WithFields(logrus.Fields{"event": "job_cancelled", "reason": reason}).Info("job cancelled")
	return updated, nil
}
