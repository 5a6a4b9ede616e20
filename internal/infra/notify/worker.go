package notify

import (
	"context"
	"log/slog"
	"time"

	"parkhub/internal/infra/repository"
	"parkhub/internal/pkg/config"

	"github.com/google/uuid"
)

type JobStore interface {
	ClaimDue(ctx context.Context, limit int32) ([]repository.NotificationJob, error)
	MarkSucceeded(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause string, maxAttempts int32) error
}

// Worker drains the notification outbox on a fixed interval. Jobs are written
// in the same transaction as the state change they announce, so a publish
// failure never loses the event, only delays it.
type Worker struct {
	store     JobStore
	publisher Publisher
	cfg       config.NotifierConfig
}

func NewWorker(store JobStore, publisher Publisher, cfg config.NotifierConfig) *Worker {
	return &Worker{store: store, publisher: publisher, cfg: cfg}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	jobs, err := w.store.ClaimDue(ctx, w.cfg.BatchSize)
	if err != nil {
		slog.Error("failed to claim notification jobs", "error", err.Error())
		return
	}

	for _, job := range jobs {
		if err := w.publisher.Publish(ctx, job.Topic, job.Payload); err != nil {
			slog.Warn("failed to publish notification",
				"job_id", job.ID, "topic", job.Topic, "attempts", job.Attempts+1,
				"error", err.Error())
			if err := w.store.MarkFailed(ctx, job.ID, err.Error(), w.cfg.MaxAttempts); err != nil {
				slog.Error("failed to mark notification job failed", "job_id", job.ID, "error", err.Error())
			}
			continue
		}
		if err := w.store.MarkSucceeded(ctx, job.ID); err != nil {
			slog.Error("failed to mark notification job succeeded", "job_id", job.ID, "error", err.Error())
		}
	}
}
