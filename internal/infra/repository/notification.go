package repository

import (
	"context"
	"time"

	"parkhub/internal/infra"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db infra.DBTX
}

func NewNotificationRepository(db infra.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx infra.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO notification_jobs (id, kind, topic, payload, run_at, status)
		 VALUES ($1, $2, $3, $4, $5, 'pending')`,
		uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue marks a batch of due jobs as processing and returns them. SKIP
// LOCKED lets multiple workers drain the outbox without contention.
func (r *NotificationRepository) ClaimDue(ctx context.Context, limit int32) ([]NotificationJob, error) {
	rows, err := r.db.Query(ctx,
		`UPDATE notification_jobs
		 SET status = 'processing', updated_at = now()
		 WHERE id IN (
		     SELECT id FROM notification_jobs
		     WHERE status = 'pending' AND run_at <= now()
		     ORDER BY run_at
		     LIMIT $1
		     FOR UPDATE SKIP LOCKED
		 )
		 RETURNING id, kind, topic, payload, attempts`,
		limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", rows.Err())
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSucceeded(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notification_jobs
		 SET status = 'succeeded', attempts = attempts + 1, last_error = NULL, updated_at = now()
		 WHERE id = $1`,
		id)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job succeeded", err)
	}
	return nil
}

// MarkFailed reschedules the job with linear backoff until maxAttempts is
// reached, then parks it as failed for an operator to inspect.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, cause string, maxAttempts int32) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notification_jobs
		 SET attempts = attempts + 1,
		     last_error = $2,
		     status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'pending' END,
		     run_at = now() + make_interval(secs => (attempts + 1) * 30),
		     updated_at = now()
		 WHERE id = $1`,
		id, cause, maxAttempts)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
