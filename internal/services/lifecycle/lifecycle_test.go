package lifecycle

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"resaleops/internal/adapters/memory"
	"resaleops/internal/domain"
	"resaleops/internal/ports"
)

type fakeExecutor struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeExecutor) Process(ctx context.Context, job domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, job.ID)
	return f.err
}

func (f *fakeExecutor) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

type harness struct {
	svc   *Service
	store *memory.JobStore
	exec  *fakeExecutor
	clock *clockwork.FakeClock
	logs  *test.Hook
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC))
	store := memory.NewJobStore(clock)
	exec := &fakeExecutor{}
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return &harness{
		svc:   New(store, exec, WithClock(clock), WithLogger(log), WithDefaultMaxRetries(2)),
		store: store,
		exec:  exec,
		clock: clock,
		logs:  hook,
	}
}

func (h *harness) create(t *testing.T, d domain.Draft) domain.Job {
	t.Helper()
	if d.Kind == "" {
		d.Kind = domain.KindDelisting
	}
	if d.TriggerType == "" {
		d.TriggerType = domain.TriggerManual
	}
	job, err := h.svc.Create(context.Background(), d)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return job
}

func (h *harness) get(t *testing.T, id string) domain.Job {
	t.Helper()
	job, err := h.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := job.Validate(); err != nil {
		t.Fatalf("stored job violates invariants: %v", err)
	}
	return job
}

func (h *harness) report(t *testing.T, id, target string, outcome domain.Outcome) domain.Job {
	t.Helper()
	h.clock.Advance(time.Second)
	job, err := h.svc.ReportResult(context.Background(), id, target, outcome)
	if err != nil {
		t.Fatalf("ReportResult(%s, %s): %v", target, outcome, err)
	}
	return job
}

// failRun dispatches a pending job and reports every target as failed.
func (h *harness) failRun(t *testing.T, id string) domain.Job {
	t.Helper()
	job, err := h.svc.Dispatch(context.Background(), id)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	for _, target := range job.Targets {
		job = h.report(t, id, target, domain.OutcomeFailure)
	}
	if job.Status != domain.StatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	return job
}

func TestConfirmDispatchesAndPartialFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.create(t, domain.Draft{
		Targets:              []string{"ebay", "poshmark"},
		RequiresConfirmation: true,
		ScheduledFor:         h.clock.Now().Add(24 * time.Hour),
	})

	if _, err := h.svc.Dispatch(ctx, job.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("dispatch before confirmation: expected invalid state, got %v", err)
	}

	confirmed, err := h.svc.Confirm(ctx, job.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.Status != domain.StatusProcessing || confirmed.StartedAt == nil || confirmed.ConfirmedAt == nil {
		t.Fatalf("confirm should dispatch immediately: %+v", confirmed)
	}
	if !confirmed.ScheduledFor.Equal(*confirmed.StartedAt) {
		t.Errorf("future schedule should be pulled to now: scheduled %v started %v", confirmed.ScheduledFor, confirmed.StartedAt)
	}
	if calls := h.exec.Calls(); len(calls) != 1 || calls[0] != job.ID {
		t.Errorf("executor calls = %v", calls)
	}

	h.report(t, job.ID, "ebay", domain.OutcomeSuccess)
	final := h.report(t, job.ID, "poshmark", domain.OutcomeFailure)

	if final.Status != domain.StatusPartiallyFailed {
		t.Fatalf("status = %s, want partially_failed", final.Status)
	}
	if !reflect.DeepEqual(final.CompletedTargets, []string{"ebay"}) || !reflect.DeepEqual(final.FailedTargets, []string{"poshmark"}) {
		t.Errorf("results: completed %v failed %v", final.CompletedTargets, final.FailedTargets)
	}
	if final.CompletedAt == nil || final.CompletedAt.Before(*final.StartedAt) {
		t.Errorf("CompletedAt = %v", final.CompletedAt)
	}
	h.get(t, job.ID)
}

func TestConfirmRejections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	plain := h.create(t, domain.Draft{Targets: []string{"ebay"}})
	if _, err := h.svc.Confirm(ctx, plain.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("confirm without requirement: expected invalid state, got %v", err)
	}

	needs := h.create(t, domain.Draft{Targets: []string{"ebay"}, RequiresConfirmation: true})
	if _, err := h.svc.Cancel(ctx, needs.ID, "changed my mind"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.svc.Confirm(ctx, needs.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("confirm after cancel: expected invalid state, got %v", err)
	}
	if _, err := h.svc.Confirm(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("confirm unknown: expected not found, got %v", err)
	}
}

func TestAllSucceededCompletes(t *testing.T) {
	h := newHarness(t)
	job := h.create(t, domain.Draft{Targets: []string{"ebay", "mercari"}})
	if _, err := h.svc.Dispatch(context.Background(), job.ID); err != nil {
		t.Fatal(err)
	}
	h.report(t, job.ID, "mercari", domain.OutcomeSuccess)
	final := h.report(t, job.ID, "ebay", domain.OutcomeSuccess)

	if final.Status != domain.StatusCompleted {
		t.Fatalf("status = %s", final.Status)
	}
	got := slices.Clone(final.CompletedTargets)
	slices.Sort(got)
	if !reflect.DeepEqual(got, []string{"ebay", "mercari"}) || len(final.FailedTargets) != 0 {
		t.Errorf("completed job must have every target completed: %+v", final)
	}
}

func TestRetryUntilExhausted(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	two := 2
	job := h.create(t, domain.Draft{Targets: []string{"ebay"}, MaxRetries: &two})

	h.failRun(t, job.ID)
	for want := 1; want <= 2; want++ {
		h.clock.Advance(time.Minute)
		retried, err := h.svc.Retry(ctx, job.ID)
		if err != nil {
			t.Fatalf("retry %d: %v", want, err)
		}
		if retried.RetryCount != want || retried.Status != domain.StatusPending {
			t.Fatalf("retry %d: %+v", want, retried)
		}
		if len(retried.CompletedTargets)+len(retried.FailedTargets) != 0 || retried.StartedAt != nil || retried.CompletedAt != nil {
			t.Fatalf("retry %d did not reset the attempt: %+v", want, retried)
		}
		if !retried.ScheduledFor.Equal(h.clock.Now()) {
			t.Errorf("retry %d: ScheduledFor = %v", want, retried.ScheduledFor)
		}
		h.failRun(t, job.ID)
	}

	before := h.get(t, job.ID)
	_, err := h.svc.Retry(ctx, job.ID)
	if !errors.Is(err, domain.ErrRetryExhausted) {
		t.Fatalf("third retry: expected retry exhausted, got %v", err)
	}
	if after := h.get(t, job.ID); !reflect.DeepEqual(before, after) {
		t.Errorf("exhausted retry changed the job:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestRetryOnlyFromFailedStates(t *testing.T) {
	h := newHarness(t)
	job := h.create(t, domain.Draft{Targets: []string{"ebay"}})
	if _, err := h.svc.Retry(context.Background(), job.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("retry pending: expected invalid state, got %v", err)
	}
}

func TestRetryWithNoBudgetIsExhaustedInAnyStatus(t *testing.T) {
	h := newHarness(t)
	zero := 0
	job := h.create(t, domain.Draft{Targets: []string{"ebay"}, MaxRetries: &zero})
	if _, err := h.svc.Retry(context.Background(), job.ID); !errors.Is(err, domain.ErrRetryExhausted) {
		t.Errorf("retry pending with max_retries 0: expected retry exhausted, got %v", err)
	}
	if after := h.get(t, job.ID); after.Version != job.Version {
		t.Errorf("rejected retry changed the job")
	}
}

func TestCancelTwice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.create(t, domain.Draft{Targets: []string{"ebay"}})

	first, err := h.svc.Cancel(ctx, job.ID, " sold in store ")
	if err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if first.Status != domain.StatusCancelled || first.CancelReason != "sold in store" || first.CancelledAt == nil {
		t.Fatalf("cancelled job: %+v", first)
	}

	h.clock.Advance(time.Minute)
	if _, err := h.svc.Cancel(ctx, job.ID, "again"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("second cancel: expected invalid state, got %v", err)
	}
	if after := h.get(t, job.ID); !reflect.DeepEqual(first, after) {
		t.Errorf("second cancel changed the job")
	}
}

func TestCancelProcessingThenLateResultIsIgnored(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.create(t, domain.Draft{Targets: []string{"ebay", "depop"}})
	if _, err := h.svc.Dispatch(ctx, job.ID); err != nil {
		t.Fatal(err)
	}
	cancelled, err := h.svc.Cancel(ctx, job.ID, "")
	if err != nil {
		t.Fatal(err)
	}

	late, err := h.svc.ReportResult(ctx, job.ID, "ebay", domain.OutcomeSuccess)
	if err != nil {
		t.Fatalf("late result should be a no-op, got %v", err)
	}
	if !reflect.DeepEqual(late, cancelled) {
		t.Errorf("late result mutated a cancelled job")
	}
}

func TestDuplicateResultIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.create(t, domain.Draft{Targets: []string{"ebay", "poshmark"}})
	if _, err := h.svc.Dispatch(ctx, job.ID); err != nil {
		t.Fatal(err)
	}

	once := h.report(t, job.ID, "ebay", domain.OutcomeSuccess)
	twice := h.report(t, job.ID, "ebay", domain.OutcomeSuccess)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("duplicate delivery changed the job")
	}
	if _, err := h.svc.ReportResult(ctx, job.ID, "ebay", "bogus"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("redelivery with a malformed outcome: expected validation error, got %v", err)
	}
	// A conflicting duplicate is ignored too: the first report wins.
	flipped := h.report(t, job.ID, "ebay", domain.OutcomeFailure)
	if !reflect.DeepEqual(once, flipped) {
		t.Errorf("duplicate with different outcome changed the job")
	}

	final := h.report(t, job.ID, "poshmark", domain.OutcomeSuccess)
	replay := h.report(t, job.ID, "poshmark", domain.OutcomeSuccess)
	if final.Status != domain.StatusCompleted || !reflect.DeepEqual(final, replay) {
		t.Errorf("replay after completion changed the job: %s then %s", final.Status, replay.Status)
	}
}

func TestReportResultRejections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.create(t, domain.Draft{Targets: []string{"ebay"}})

	if _, err := h.svc.ReportResult(ctx, job.ID, "ebay", domain.OutcomeSuccess); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("report on pending: expected invalid state, got %v", err)
	}
	if _, err := h.svc.Dispatch(ctx, job.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := h.svc.ReportResult(ctx, job.ID, "mercari", domain.OutcomeSuccess); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown target: expected validation error, got %v", err)
	}
	if _, err := h.svc.ReportResult(ctx, job.ID, "ebay", "maybe"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown outcome: expected validation error, got %v", err)
	}
	// Targets are matched after normalisation.
	done, err := h.svc.ReportResult(ctx, job.ID, "https://www.ebay.com/itm/42", domain.OutcomeSuccess)
	if err != nil || done.Status != domain.StatusCompleted {
		t.Errorf("normalised target: %v %+v", err, done)
	}
}

func TestDispatchWaitsForSchedule(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.create(t, domain.Draft{Targets: []string{"ebay"}, ScheduledFor: h.clock.Now().Add(time.Hour)})

	if _, err := h.svc.Dispatch(ctx, job.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("early dispatch: expected invalid state, got %v", err)
	}
	if len(h.exec.Calls()) != 0 {
		t.Fatal("executor called for a job that is not due")
	}

	h.clock.Advance(time.Hour)
	started, err := h.svc.Dispatch(ctx, job.ID)
	if err != nil {
		t.Fatalf("due dispatch: %v", err)
	}
	if started.Status != domain.StatusProcessing || !started.StartedAt.Equal(h.clock.Now()) {
		t.Errorf("started job: %+v", started)
	}
	if _, err := h.svc.Dispatch(ctx, job.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("double dispatch: expected invalid state, got %v", err)
	}
}

func TestExecutorFailureLeavesJobPending(t *testing.T) {
	h := newHarness(t)
	h.exec.err = errors.New("connection refused")
	job := h.create(t, domain.Draft{Targets: []string{"ebay"}})

	_, err := h.svc.Dispatch(context.Background(), job.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict-class transient error, got %v", err)
	}
	after := h.get(t, job.ID)
	if after.Status != domain.StatusPending || after.StartedAt != nil {
		t.Errorf("job should be back to pending: %+v", after)
	}

	var warned bool
	for _, e := range h.logs.AllEntries() {
		if e.Data["event"] == "dispatch_reverted" {
			warned = true
		}
	}
	if !warned {
		t.Error("revert was not logged")
	}

	h.exec.err = nil
	if _, err := h.svc.Dispatch(context.Background(), job.ID); err != nil {
		t.Errorf("dispatch after executor recovered: %v", err)
	}
}

// racingStore lets another writer move the job between a lifecycle
// operation's read and its write.
type racingStore struct {
	ports.JobStore
	once   sync.Once
	before func()
}

func (r *racingStore) Update(ctx context.Context, id string, expect domain.Precondition, patch domain.Patch) (domain.Job, error) {
	r.once.Do(r.before)
	return r.JobStore.Update(ctx, id, expect, patch)
}

func TestConcurrentWriterCausesConflict(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.create(t, domain.Draft{Targets: []string{"ebay"}})

	racing := &racingStore{JobStore: h.store}
	racing.before = func() {
		cancelled, reason := domain.StatusCancelled, "other user"
		if _, err := h.store.Update(ctx, job.ID, domain.Expect(job), domain.Patch{
			Status: &cancelled, CancelReason: &reason, CancelledAt: domain.At(h.clock.Now()),
		}); err != nil {
			t.Errorf("interloper update: %v", err)
		}
	}
	svc := New(racing, h.exec, WithClock(h.clock), WithLogger(logrus.New()))

	if _, err := svc.Dispatch(ctx, job.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if after := h.get(t, job.ID); after.Status != domain.StatusCancelled {
		t.Errorf("racing dispatch clobbered the job: %s", after.Status)
	}
	if len(h.exec.Calls()) != 0 {
		t.Error("executor called after a failed transition")
	}
}

func TestCreateNormalisesAndValidates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	job := h.create(t, domain.Draft{Targets: []string{"eBay", "https://www.ebay.com/itm/1", "poshmark.com"}})
	if !reflect.DeepEqual(job.Targets, []string{"ebay", "poshmark"}) {
		t.Errorf("targets = %v", job.Targets)
	}
	if job.MaxRetries != 2 {
		t.Errorf("default max retries not applied: %d", job.MaxRetries)
	}

	tests := []struct {
		name  string
		draft domain.Draft
	}{
		{"no targets", domain.Draft{Kind: domain.KindDelisting, TriggerType: domain.TriggerManual}},
		{"blank targets", domain.Draft{Kind: domain.KindDelisting, TriggerType: domain.TriggerManual, Targets: []string{"  "}}},
		{"bad kind", domain.Draft{Kind: "relisting", TriggerType: domain.TriggerManual, Targets: []string{"ebay"}}},
		{"missing trigger", domain.Draft{Kind: domain.KindListing, Targets: []string{"ebay"}}},
	}
	for _, tt := range tests {
		if _, err := h.svc.Create(ctx, tt.draft); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tt.name, err)
		}
	}
}

func TestStatisticsUsesFreshSnapshot(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	job := h.create(t, domain.Draft{Targets: []string{"ebay"}})
	if _, err := h.svc.Dispatch(ctx, job.ID); err != nil {
		t.Fatal(err)
	}
	h.report(t, job.ID, "ebay", domain.OutcomeSuccess)
	h.create(t, domain.Draft{Targets: []string{"ebay"}})

	st, err := h.svc.Statistics(ctx, domain.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 2 || st.SuccessRate != 0.5 || st.CompletedActions != 1 || st.MostActiveTarget != "ebay" {
		t.Errorf("statistics: %+v", st)
	}
}
