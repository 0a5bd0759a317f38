package domain

import (
	"slices"
	"time"
)

// Core domain models used internally. HTTP request/response shapes live in
// internal/adapters/http; keep these decoupled where helpful.

type Status string

const (
	StatusPending         Status = "pending"
	StatusProcessing      Status = "processing"
	StatusCompleted       Status = "completed"
	StatusFailed          Status = "failed"
	StatusPartiallyFailed Status = "partially_failed"
	StatusCancelled       Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusFailed,
	StatusPartiallyFailed,
	StatusCancelled,
}

func (s Status) Valid() bool { return slices.Contains(Statuses, s) }

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool { return s == StatusCompleted || s == StatusCancelled }

type TriggerType string

const (
	TriggerAutomatic TriggerType = "automatic"
	TriggerManual    TriggerType = "manual"
	TriggerScheduled TriggerType = "scheduled"
)

func (t TriggerType) Valid() bool {
	switch t {
	case TriggerAutomatic, TriggerManual, TriggerScheduled:
		return true
	}
	return false
}

// Kind separates listing-creation jobs from delisting jobs.
type Kind string

const (
	KindListing   Kind = "listing"
	KindDelisting Kind = "delisting"
)

func (k Kind) Valid() bool { return k == KindListing || k == KindDelisting }

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

func (o Outcome) Valid() bool { return o == OutcomeSuccess || o == OutcomeFailure }

// Job is one unit of listing or delisting work against one or more marketplaces.
type Job struct {
	ID                   string
	Kind                 Kind
	ItemID               string
	ItemTitle            string
	Status               Status
	TriggerType          TriggerType
	Targets              []string
	CompletedTargets     []string
	FailedTargets        []string
	RequiresConfirmation bool
	ConfirmedAt          *time.Time
	ScheduledFor         time.Time
	StartedAt            *time.Time
	CompletedAt          *time.Time
	CancelledAt          *time.Time
	CancelReason         string
	RetryCount           int
	MaxRetries           int
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Reported reports whether target already has a result in either set.
func (j Job) Reported(target string) bool {
	return slices.Contains(j.CompletedTargets, target) || slices.Contains(j.FailedTargets, target)
}

// AwaitingConfirmation is true while a job that needs approval has not got it.
func (j Job) AwaitingConfirmation() bool {
	return j.RequiresConfirmation && j.ConfirmedAt == nil
}

// Due reports whether the job may be dispatched at now.
func (j Job) Due(now time.Time) bool { return !now.Before(j.ScheduledFor) }

// Clone returns a deep copy so callers can hand jobs out without sharing slices.
func (j Job) Clone() Job {
	out := j
	out.Targets = slices.Clone(j.Targets)
	out.CompletedTargets = slices.Clone(j.CompletedTargets)
	out.FailedTargets = slices.Clone(j.FailedTargets)
	out.ConfirmedAt = cloneTime(j.ConfirmedAt)
	out.StartedAt = cloneTime(j.StartedAt)
	out.CompletedAt = cloneTime(j.CompletedAt)
	out.CancelledAt = cloneTime(j.CancelledAt)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// Draft is what a caller supplies to create a job.
type Draft struct {
	Kind                 Kind        `json:"kind" validate:"required,oneof=listing delisting"`
	ItemID               string      `json:"item_id" validate:"max=128"`
	ItemTitle            string      `json:"item_title" validate:"max=512"`
	TriggerType          TriggerType `json:"trigger_type" validate:"required,oneof=automatic manual scheduled"`
	Targets              []string    `json:"targets" validate:"required,min=1,dive,required,max=255"`
	RequiresConfirmation bool        `json:"requires_confirmation"`
	ScheduledFor         time.Time   `json:"scheduled_for"`
	MaxRetries           *int        `json:"max_retries" validate:"omitempty,gte=0,lte=100"`
}

// Filter is a conjunction; empty fields match everything.
type Filter struct {
	Statuses     []Status
	TriggerTypes []TriggerType
	Kinds        []Kind
	// Query matches ItemTitle case-insensitively.
	Query string
}
