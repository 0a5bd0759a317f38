package domain

import (
	"fmt"
	"slices"
	"time"
)

// Timestamp is a nullable time for Patch: Valid=false clears the field.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

func At(t time.Time) *Timestamp { return &Timestamp{Time: t, Valid: true} }

// Clear returns a Timestamp that resets the field to null.
func Clear() *Timestamp { return &Timestamp{} }

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Status           *Status
	CompletedTargets *[]string
	FailedTargets    *[]string
	ScheduledFor     *time.Time
	ConfirmedAt      *Timestamp
	StartedAt        *Timestamp
	CompletedAt      *Timestamp
	CancelledAt      *Timestamp
	CancelReason     *string
	RetryCount       *int
}

// Precondition is the compare-and-swap predicate for Update. A zero Version
// accepts any version; Status is always compared.
type Precondition struct {
	Status  Status
	Version int64
}

func Expect(j Job) Precondition { return Precondition{Status: j.Status, Version: j.Version} }

// Holds reports whether current satisfies p.
func (p Precondition) Holds(current Job) bool {
	if current.Status != p.Status {
		return false
	}
	return p.Version == 0 || p.Version == current.Version
}

// Apply returns a copy of j with the patch applied. Bookkeeping fields
// (Version, UpdatedAt) are the store's job.
func (p Patch) Apply(j Job) Job {
	out := j.Clone()
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.CompletedTargets != nil {
		out.CompletedTargets = slices.Clone(*p.CompletedTargets)
	}
	if p.FailedTargets != nil {
		out.FailedTargets = slices.Clone(*p.FailedTargets)
	}
	if p.ScheduledFor != nil {
		out.ScheduledFor = *p.ScheduledFor
	}
	out.ConfirmedAt = applyTimestamp(out.ConfirmedAt, p.ConfirmedAt)
	out.StartedAt = applyTimestamp(out.StartedAt, p.StartedAt)
	out.CompletedAt = applyTimestamp(out.CompletedAt, p.CompletedAt)
	out.CancelledAt = applyTimestamp(out.CancelledAt, p.CancelledAt)
	if p.CancelReason != nil {
		out.CancelReason = *p.CancelReason
	}
	if p.RetryCount != nil {
		out.RetryCount = *p.RetryCount
	}
	return out
}

func applyTimestamp(cur *time.Time, ts *Timestamp) *time.Time {
	if ts == nil {
		return cur
	}
	if !ts.Valid {
		return nil
	}
	v := ts.Time
	return &v
}

// Validate checks the record invariants every stored job must satisfy.
func (j Job) Validate() error {
	if !j.Status.Valid() {
		return fmt.Errorf("unknown status %q", j.Status)
	}
	if j.RetryCount < 0 || j.MaxRetries < 0 {
		return fmt.Errorf("retry counters must be non-negative")
	}
	if j.RetryCount > j.MaxRetries {
		return fmt.Errorf("retry count %d exceeds max retries %d", j.RetryCount, j.MaxRetries)
	}
	if hasDuplicates(j.Targets) || hasDuplicates(j.CompletedTargets) || hasDuplicates(j.FailedTargets) {
		return fmt.Errorf("duplicate target")
	}
	for _, t := range j.CompletedTargets {
		if !slices.Contains(j.Targets, t) {
			return fmt.Errorf("completed target %q is not a job target", t)
		}
		if slices.Contains(j.FailedTargets, t) {
			return fmt.Errorf("target %q is both completed and failed", t)
		}
	}
	for _, t := range j.FailedTargets {
		if !slices.Contains(j.Targets, t) {
			return fmt.Errorf("failed target %q is not a job target", t)
		}
	}

	switch j.Status {
	case StatusCompleted:
		if len(j.CompletedTargets) != len(j.Targets) {
			return fmt.Errorf("completed job must have every target completed")
		}
	case StatusPartiallyFailed:
		if len(j.CompletedTargets) == 0 || len(j.FailedTargets) == 0 {
			return fmt.Errorf("partially failed job needs both successes and failures")
		}
	case StatusFailed:
		if len(j.CompletedTargets) != 0 {
			return fmt.Errorf("failed job cannot have completed targets")
		}
	}

	if j.StartedAt != nil && j.StartedAt.Before(j.ScheduledFor) {
		return fmt.Errorf("started_at precedes scheduled_for")
	}
	if j.CompletedAt != nil {
		if j.StartedAt == nil {
			return fmt.Errorf("completed_at set without started_at")
		}
		if j.CompletedAt.Before(*j.StartedAt) {
			return fmt.Errorf("completed_at precedes started_at")
		}
	}
	return nil
}

func hasDuplicates(xs []string) bool {
	seen := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			return true
		}
		seen[x] = struct{}{}
	}
	return false
}
