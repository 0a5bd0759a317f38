package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func baseJob() Job {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return Job{
		ID:               "j1",
		Kind:             KindDelisting,
		Status:           StatusPending,
		TriggerType:      TriggerManual,
		Targets:          []string{"ebay", "poshmark"},
		CompletedTargets: []string{},
		FailedTargets:    []string{},
		ScheduledFor:     t0,
		MaxRetries:       2,
		Version:          1,
		CreatedAt:        t0,
		UpdatedAt:        t0,
	}
}

func ptr[T any](v T) *T { return &v }

func TestValidate(t *testing.T) {
	t0 := baseJob().ScheduledFor
	tests := []struct {
		name   string
		mutate func(*Job)
		want   string
	}{
		{"fresh job", func(*Job) {}, ""},
		{"target in both sets", func(j *Job) {
			j.Status = StatusProcessing
			j.CompletedTargets = []string{"ebay"}
			j.FailedTargets = []string{"ebay"}
		}, "both completed and failed"},
		{"result outside targets", func(j *Job) { j.CompletedTargets = []string{"mercari"} }, "not a job target"},
		{"completed with missing target", func(j *Job) {
			j.Status = StatusCompleted
			j.CompletedTargets = []string{"ebay"}
		}, "every target completed"},
		{"partially failed without success", func(j *Job) {
			j.Status = StatusPartiallyFailed
			j.FailedTargets = []string{"ebay"}
		}, "both successes and failures"},
		{"failed with a success", func(j *Job) {
			j.Status = StatusFailed
			j.CompletedTargets = []string{"ebay"}
			j.FailedTargets = []string{"poshmark"}
		}, "cannot have completed targets"},
		{"completed before started", func(j *Job) {
			j.StartedAt = ptr(t0.Add(time.Minute))
			j.CompletedAt = ptr(t0)
		}, "completed_at precedes started_at"},
		{"completed without started", func(j *Job) { j.CompletedAt = ptr(t0) }, "without started_at"},
		{"started before schedule", func(j *Job) { j.StartedAt = ptr(t0.Add(-time.Second)) }, "precedes scheduled_for"},
		{"retry count over max", func(j *Job) { j.RetryCount = 3 }, "exceeds max retries"},
		{"duplicate target", func(j *Job) { j.Targets = []string{"ebay", "ebay"} }, "duplicate"},
		{"unknown status", func(j *Job) { j.Status = "archived" }, "unknown status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := baseJob()
			tt.mutate(&j)
			err := j.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestPatchApplyDoesNotAlias(t *testing.T) {
	j := baseJob()
	completed := []string{"ebay"}
	p := Patch{
		Status:           ptr(StatusProcessing),
		CompletedTargets: &completed,
		StartedAt:        At(j.ScheduledFor),
	}
	out := p.Apply(j)
	completed[0] = "mutated"

	if out.CompletedTargets[0] != "ebay" {
		t.Errorf("patch slice aliased into result: %v", out.CompletedTargets)
	}
	if j.Status != StatusPending || len(j.CompletedTargets) != 0 || j.StartedAt != nil {
		t.Errorf("Apply modified its input: %+v", j)
	}
	if out.StartedAt == nil || !out.StartedAt.Equal(j.ScheduledFor) {
		t.Errorf("StartedAt = %v", out.StartedAt)
	}

	cleared := Patch{StartedAt: Clear()}.Apply(out)
	if cleared.StartedAt != nil {
		t.Errorf("Clear did not reset StartedAt")
	}
}

func TestPreconditionHolds(t *testing.T) {
	j := baseJob()
	j.Version = 4
	if !(Precondition{Status: StatusPending}).Holds(j) {
		t.Error("zero version should accept any version")
	}
	if !Expect(j).Holds(j) {
		t.Error("Expect(j) should hold for j")
	}
	if (Precondition{Status: StatusPending, Version: 3}).Holds(j) {
		t.Error("stale version accepted")
	}
	if (Precondition{Status: StatusProcessing}).Holds(j) {
		t.Error("wrong status accepted")
	}
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Transient("dispatch", "j1", cause)
	if !errors.Is(err, ErrConflict) || !errors.Is(err, cause) {
		t.Fatalf("transient error should match ErrConflict and its cause: %v", err)
	}
	if errors.Is(err, ErrInvalidState) {
		t.Fatal("transient error matched the wrong kind")
	}
	if got := NotFound("get", "j9").Error(); got != "get j9: job not found" {
		t.Errorf("NotFound message = %q", got)
	}
}

func TestNewJobRejectsEmptyTargets(t *testing.T) {
	_, err := NewJob("x", Draft{Kind: KindDelisting, TriggerType: TriggerManual}, time.Now())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFilterMatches(t *testing.T) {
	j := baseJob()
	j.ItemTitle = "Vintage Levi's 501"
	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"empty", Filter{}, true},
		{"status hit", Filter{Statuses: []Status{StatusPending, StatusFailed}}, true},
		{"status miss", Filter{Statuses: []Status{StatusFailed}}, false},
		{"trigger miss", Filter{TriggerTypes: []TriggerType{TriggerAutomatic}}, false},
		{"kind hit", Filter{Kinds: []Kind{KindDelisting}}, true},
		{"query case-insensitive", Filter{Query: "levi"}, true},
		{"query miss", Filter{Query: "nike"}, false},
		{"conjunction", Filter{Statuses: []Status{StatusPending}, Query: "nike"}, false},
	}
	for _, tt := range tests {
		if got := tt.f.Matches(j); got != tt.want {
			t.Errorf("%s: Matches = %v, want %v", tt.name, got, tt.want)
		}
	}
}
