package repository

import (
	"context"
	"encoding/json"
	"time"

	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
)

// Job is one queued background task. Jobs are written in the same
// transaction as the state change that triggers them, so a committed
// write always has its follow-up work enqueued.
type Job struct {
	ID       int64
	Kind     string
	Payload  []byte
	Attempts int
}

type OutboxRepository struct{}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, dbtx db.DBTX, kind string, payload any, runAt time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return infra.WrapRepoErr("failed to encode job payload", err)
	}
	_, err = dbtx.Exec(ctx, `
		INSERT INTO outbox_jobs (kind, payload, run_at) VALUES ($1, $2, $3)`,
		kind, body, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue job", err)
	}
	return nil
}

// ClaimDue picks up to limit runnable jobs, bumping their attempt count.
// SKIP LOCKED keeps concurrent worker processes from double-claiming.
func (r *OutboxRepository) ClaimDue(ctx context.Context, dbtx db.DBTX, limit int) ([]Job, error) {
	rows, err := dbtx.Query(ctx, `
		UPDATE outbox_jobs SET attempts = attempts + 1
		WHERE id IN (
			SELECT id FROM outbox_jobs
			WHERE completed_at IS NULL AND run_at <= now()
			ORDER BY run_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, payload, attempts`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim jobs", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Kind, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan job row", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate jobs", err)
	}
	return jobs, nil
}

func (r *OutboxRepository) MarkCompleted(ctx context.Context, dbtx db.DBTX, id int64) error {
	_, err := dbtx.Exec(ctx, `UPDATE outbox_jobs SET completed_at = now(), last_error = '' WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to complete job", err)
	}
	return nil
}

// Reschedule pushes a failed job into the future, recording the error.
func (r *OutboxRepository) Reschedule(ctx context.Context, dbtx db.DBTX, id int64, runAt time.Time, lastError string) error {
	_, err := dbtx.Exec(ctx, `UPDATE outbox_jobs SET run_at = $2, last_error = $3 WHERE id = $1`, id, runAt, lastError)
	if err != nil {
		return infra.WrapRepoErr("failed to reschedule job", err)
	}
	return nil
}

// Abandon marks a job completed with its terminal error after the retry
// budget is exhausted.
func (r *OutboxRepository) Abandon(ctx context.Context, dbtx db.DBTX, id int64, lastError string) error {
	_, err := dbtx.Exec(ctx, `UPDATE outbox_jobs SET completed_at = now(), last_error = $2 WHERE id = $1`, id, lastError)
	if err != nil {
		return infra.WrapRepoErr("failed to abandon job", err)
	}
	return nil
}
