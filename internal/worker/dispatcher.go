package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"grocery-api/internal/infra/db"
	"grocery-api/internal/infra/repository"
	"grocery-api/internal/pkg/config"
	"grocery-api/internal/usecase/shared"
)

// Handler processes one kind of outbox job.
type Handler interface {
	Kind() string
	Handle(ctx context.Context, job repository.Job) error
}

// Dispatcher polls the outbox table and fans claimed jobs out to their
// handlers. Claiming bumps the attempt counter up front, so a crash
// mid-handling still burns an attempt when the job is retried.
type Dispatcher struct {
	uow      shared.UnitOfWork
	outbox   shared.OutboxRepository
	handlers map[string]Handler

	pollInterval time.Duration
	concurrency  int
	maxAttempts  int
	batchSize    int
}

func NewDispatcher(uow shared.UnitOfWork, outbox shared.OutboxRepository, cfg config.Config, handlers []Handler) *Dispatcher {
	byKind := make(map[string]Handler, len(handlers))
	for _, h := range handlers {
		byKind[h.Kind()] = h
	}
	return &Dispatcher{
		uow:          uow,
		outbox:       outbox,
		handlers:     byKind,
		pollInterval: cfg.Worker.PollInterval,
		concurrency:  cfg.Worker.Concurrency,
		maxAttempts:  cfg.Worker.MaxAttempts,
		batchSize:    100,
	}
}

// Run polls until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.runOnce(ctx); err != nil {
				slog.Error("outbox poll failed", "error", err.Error())
			}
		}
	}
}

func (d *Dispatcher) runOnce(ctx context.Context) error {
	var jobs []repository.Job
	err := d.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		claimed, err := d.outbox.ClaimDue(ctx, dbtx, d.batchSize)
		if err != nil {
			return err
		}
		jobs = claimed
		return nil
	})
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for _, job := range jobs {
		g.Go(func() error {
			d.process(gctx, job)
			return nil
		})
	}
	return g.Wait()
}

func (d *Dispatcher) process(ctx context.Context, job repository.Job) {
	handler, ok := d.handlers[job.Kind]
	if !ok {
		slog.Error("no handler for job kind", "kind", job.Kind, "job_id", job.ID)
		d.finish(ctx, func(ctx context.Context, dbtx db.DBTX) error {
			return d.outbox.Abandon(ctx, dbtx, job.ID, fmt.Sprintf("no handler for kind %q", job.Kind))
		})
		return
	}

	err := handler.Handle(ctx, job)
	if err == nil {
		d.finish(ctx, func(ctx context.Context, dbtx db.DBTX) error {
			return d.outbox.MarkCompleted(ctx, dbtx, job.ID)
		})
		return
	}

	if job.Attempts >= d.maxAttempts {
		slog.Error("job abandoned after max attempts",
			"kind", job.Kind, "job_id", job.ID, "attempts", job.Attempts, "error", err.Error())
		d.finish(ctx, func(ctx context.Context, dbtx db.DBTX) error {
			return d.outbox.Abandon(ctx, dbtx, job.ID, err.Error())
		})
		return
	}

	delay := retryDelay(job.Attempts)
	slog.Warn("job failed, rescheduling",
		"kind", job.Kind, "job_id", job.ID, "attempts", job.Attempts,
		"retry_in", delay.String(), "error", err.Error())
	d.finish(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return d.outbox.Reschedule(ctx, dbtx, job.ID, time.Now().Add(delay), err.Error())
	})
}

func (d *Dispatcher) finish(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) {
	if err := d.uow.WithDB(ctx, fn); err != nil {
		slog.Error("failed to record job outcome", "error", err.Error())
	}
}

// retryDelay doubles per attempt: 30s, 1m, 2m, ...
func retryDelay(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return 30 * time.Second << (attempts - 1)
}
