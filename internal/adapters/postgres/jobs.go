package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"resaleops/internal/domain"
)

const jobColumns = `id::text, kind, item_id, item_title, status, trigger_type,
    targets, completed_targets, failed_targets, requires_confirmation, confirmed_at,
    scheduled_for, started_at, completed_at, cancelled_at, cancel_reason,
    retry_count, max_retries, version, created_at, updated_at`

func scanJob(row pgx.Row) (domain.Job, error) {
	var (
		j                     domain.Job
		kind, status, trigger string
	)
	err := row.Scan(
		&j.ID, &kind, &j.ItemID, &j.ItemTitle, &status, &trigger,
		&j.Targets, &j.CompletedTargets, &j.FailedTargets, &j.RequiresConfirmation, &j.ConfirmedAt,
		&j.ScheduledFor, &j.StartedAt, &j.CompletedAt, &j.CancelledAt, &j.CancelReason,
		&j.RetryCount, &j.MaxRetries, &j.Version, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return j, err
	}
	j.Kind = domain.Kind(kind)
	j.Status = domain.Status(status)
	j.TriggerType = domain.TriggerType(trigger)
	// pgx decodes timestamptz in the local zone.
	for _, t := range []*time.Time{&j.ScheduledFor, &j.CreatedAt, &j.UpdatedAt, j.ConfirmedAt, j.StartedAt, j.CompletedAt, j.CancelledAt} {
		if t != nil {
			*t = t.UTC()
		}
	}
	return j, nil
}

func (db *DB) Create(ctx context.Context, draft domain.Draft) (domain.Job, error) {
	job, err := domain.NewJob(uuid.NewString(), draft, db.now())
	if err != nil {
		return domain.Job{}, err
	}
	_, err = db.Pool.Exec(ctx, `
        INSERT INTO jobs (id, kind, item_id, item_title, status, trigger_type, targets,
            completed_targets, failed_targets, requires_confirmation, scheduled_for,
            retry_count, max_retries, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
    `, job.ID, string(job.Kind), job.ItemID, job.ItemTitle, string(job.Status), string(job.TriggerType), job.Targets,
		job.CompletedTargets, job.FailedTargets, job.RequiresConfirmation, job.ScheduledFor,
		job.RetryCount, job.MaxRetries, job.Version, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return domain.Job{}, err
	}
	return job, nil
}

func (db *DB) Get(ctx context.Context, id string) (domain.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Job{}, domain.NotFound("get", id)
	}
	job, err := scanJob(db.Pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Job{}, domain.NotFound("get", id)
	}
	return job, err
}

// Update locks the row, checks the precondition and invariants in Go, then
// writes with the same precondition in the WHERE clause.
func (db *DB) Update(ctx context.Context, id string, expect domain.Precondition, patch domain.Patch) (out domain.Job, err error) {
	if _, perr := uuid.Parse(id); perr != nil {
		return out, domain.NotFound("update", id)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return out, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	current, err := scanJob(tx.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return out, domain.NotFound("update", id)
	}
	if err != nil {
		return out, err
	}
	if !expect.Holds(current) {
		return out, domain.Conflictf("update", id, "expected %s v%d, found %s v%d",
			expect.Status, expect.Version, current.Status, current.Version)
	}
	next := patch.Apply(current)
	if err = next.Validate(); err != nil {
		return out, domain.Conflictf("update", id, "%v", err)
	}

	err = tx.QueryRow(ctx, `
        UPDATE jobs SET
            status = $3, completed_targets = $4, failed_targets = $5, scheduled_for = $6,
            confirmed_at = $7, started_at = $8, completed_at = $9, cancelled_at = $10,
            cancel_reason = $11, retry_count = $12,
            version = version + 1, updated_at = GREATEST(updated_at, $13)
        WHERE id = $1 AND status = $2 AND version = $14
        RETURNING version, updated_at
    `, id, string(current.Status), string(next.Status), next.CompletedTargets, next.FailedTargets, next.ScheduledFor,
		next.ConfirmedAt, next.StartedAt, next.CompletedAt, next.CancelledAt,
		next.CancelReason, next.RetryCount, db.now(), current.Version).Scan(&next.Version, &next.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return out, domain.Conflictf("update", id, "row changed concurrently")
	}
	if err != nil {
		return out, err
	}
	next.UpdatedAt = next.UpdatedAt.UTC()
	return next, nil
}

func (db *DB) List(ctx context.Context, filter domain.Filter) ([]domain.Job, error) {
	where, args := filterClause(filter)
	rows, err := db.Pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE `+where+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func filterClause(f domain.Filter) (string, []any) {
	conds := []string{"TRUE"}
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if len(f.Statuses) > 0 {
		add("status = ANY($%d)", toStrings(f.Statuses))
	}
	if len(f.TriggerTypes) > 0 {
		add("trigger_type = ANY($%d)", toStrings(f.TriggerTypes))
	}
	if len(f.Kinds) > 0 {
		add("kind = ANY($%d)", toStrings(f.Kinds))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		add(`item_title ILIKE $%d ESCAPE '\'`, "%"+escapeLike(q)+"%")
	}
	return strings.Join(conds, " AND "), args
}

func toStrings[T ~string](xs []T) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = string(x)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
