package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"resaleops/internal/domain"
)

func draft(title string, targets ...string) domain.Draft {
	two := 2
	return domain.Draft{
		Kind:        domain.KindDelisting,
		ItemTitle:   title,
		TriggerType: domain.TriggerManual,
		Targets:     targets,
		MaxRetries:  &two,
	}
}

func TestCreateAndGet(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	s := NewJobStore(clock)
	ctx := context.Background()

	job, err := s.Create(ctx, draft("jacket", "ebay", "poshmark"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.ID == "" || job.Status != domain.StatusPending || job.RetryCount != 0 || job.Version != 1 {
		t.Fatalf("unexpected new job: %+v", job)
	}
	if !job.CreatedAt.Equal(clock.Now()) || !job.UpdatedAt.Equal(job.CreatedAt) {
		t.Errorf("timestamps: created %v updated %v", job.CreatedAt, job.UpdatedAt)
	}
	if !job.ScheduledFor.Equal(clock.Now()) {
		t.Errorf("ScheduledFor defaults to now, got %v", job.ScheduledFor)
	}

	got, err := s.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.Targets[0] = "mutated"
	again, _ := s.Get(ctx, job.ID)
	if again.Targets[0] != "ebay" {
		t.Error("Get returned a slice shared with the store")
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := s.Create(ctx, draft("empty")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for empty targets, got %v", err)
	}
}

func TestUpdateCompareAndSwap(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewJobStore(clock)
	ctx := context.Background()
	job, _ := s.Create(ctx, draft("lamp", "ebay"))

	processing := domain.StatusProcessing
	clock.Advance(time.Second)
	started, err := s.Update(ctx, job.ID, domain.Expect(job), domain.Patch{Status: &processing, StartedAt: domain.At(clock.Now())})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if started.Version != 2 || !started.UpdatedAt.After(job.UpdatedAt) {
		t.Errorf("version/updated_at not bumped: %+v", started)
	}

	// A second writer still holding the pending snapshot must lose.
	pending := domain.StatusPending
	_, err = s.Update(ctx, job.ID, domain.Expect(job), domain.Patch{Status: &pending})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("stale precondition: expected conflict, got %v", err)
	}
	cur, _ := s.Get(ctx, job.ID)
	if cur.Status != domain.StatusProcessing || cur.Version != 2 {
		t.Errorf("conflicting update leaked: %+v", cur)
	}

	// Patches that break an invariant are conflicts and change nothing.
	bogus := []string{"mercari"}
	_, err = s.Update(ctx, job.ID, domain.Expect(cur), domain.Patch{CompletedTargets: &bogus})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("invariant violation: expected conflict, got %v", err)
	}
	after, _ := s.Get(ctx, job.ID)
	if after.Version != cur.Version || len(after.CompletedTargets) != 0 {
		t.Errorf("partial mutation after rejected patch: %+v", after)
	}

	if _, err := s.Update(ctx, "missing", domain.Precondition{Status: domain.StatusPending}, domain.Patch{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListOrderAndFilter(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewJobStore(clock)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"Red Dress", "Blue Jeans", "red scarf"} {
		j, err := s.Create(ctx, draft(title, "ebay"))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, j.ID)
		clock.Advance(time.Minute)
	}

	all, err := s.List(ctx, domain.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Fatalf("expected newest first, got %v", []string{all[0].ID, all[1].ID, all[2].ID})
	}

	red, _ := s.List(ctx, domain.Filter{Query: "RED"})
	if len(red) != 2 {
		t.Errorf("query filter: got %d jobs", len(red))
	}
	none, _ := s.List(ctx, domain.Filter{Statuses: []domain.Status{domain.StatusFailed}})
	if len(none) != 0 {
		t.Errorf("status filter: got %d jobs", len(none))
	}
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	s := NewJobStore(nil)
	changed := make(chan struct{}, 8)
	unsubscribe, err := s.Subscribe(func() { changed <- struct{}{} })
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Create(context.Background(), draft("mug", "ebay")); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification after Create")
	}

	unsubscribe()
	unsubscribe()
	if n := s.Len(); n != 0 {
		t.Errorf("subscribers after unsubscribe = %d", n)
	}
}

func TestCancelledContext(t *testing.T) {
	s := NewJobStore(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.List(ctx, domain.Filter{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
