package domain

import (
	"slices"
	"strings"
	"time"
)

// NewJob builds the initial pending record for a draft. Stores call it after
// assigning an id so both backends agree on creation defaults.
func NewJob(id string, d Draft, now time.Time) (Job, error) {
	if len(d.Targets) == 0 {
		return Job{}, Validationf("targets must not be empty")
	}
	if !d.Kind.Valid() {
		return Job{}, Validationf("unknown kind %q", d.Kind)
	}
	if !d.TriggerType.Valid() {
		return Job{}, Validationf("unknown trigger type %q", d.TriggerType)
	}
	scheduled := d.ScheduledFor
	if scheduled.IsZero() {
		scheduled = now
	}
	maxRetries := 0
	if d.MaxRetries != nil {
		maxRetries = *d.MaxRetries
	}
	j := Job{
		ID:                   id,
		Kind:                 d.Kind,
		ItemID:               d.ItemID,
		ItemTitle:            d.ItemTitle,
		Status:               StatusPending,
		TriggerType:          d.TriggerType,
		Targets:              slices.Clone(d.Targets),
		CompletedTargets:     []string{},
		FailedTargets:        []string{},
		RequiresConfirmation: d.RequiresConfirmation,
		ScheduledFor:         scheduled.UTC().Truncate(time.Microsecond),
		MaxRetries:           maxRetries,
		Version:              1,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := j.Validate(); err != nil {
		return Job{}, Validationf("%v", err)
	}
	return j, nil
}

// Matches applies f in memory. The Postgres store expresses the same
// conjunction in SQL.
func (f Filter) Matches(j Job) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, j.Status) {
		return false
	}
	if len(f.TriggerTypes) > 0 && !slices.Contains(f.TriggerTypes, j.TriggerType) {
		return false
	}
	if len(f.Kinds) > 0 && !slices.Contains(f.Kinds, j.Kind) {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(j.ItemTitle), strings.ToLower(q)) {
			return false
		}
	}
	return true
}

// SortNewestFirst orders jobs by CreatedAt descending, breaking ties on ID.
func SortNewestFirst(jobs []Job) {
	slices.SortFunc(jobs, func(a, b Job) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
}
