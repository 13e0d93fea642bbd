package jobs

import (
	"context"
	"log/slog"
	"time"

	"pichuka/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CartJanitorJob periodically drains carts that have sat untouched longer
// than the configured TTL. Drained carts keep their row; only the lines go,
// so a returning customer starts from an empty cart instead of stale dishes.
type CartJanitorJob struct {
	handler  commands.ExpireStaleCartsCommandHandler
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCartJanitorJob creates the janitor. The schedule is a six-field cron
// expression (seconds granularity); the TTL decides which carts count as stale.
func NewCartJanitorJob(
	handler commands.ExpireStaleCartsCommandHandler,
	ttl time.Duration,
	schedule string,
	logger *slog.Logger,
) *CartJanitorJob {
	return &CartJanitorJob{
		handler:  handler,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "cart_janitor_job"),
	}
}

// Start schedules the janitor on its cron expression.
func (j *CartJanitorJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireStaleCartsCommand(j.ttl)
		if err != nil {
			j.logger.ErrorContext(ctx, "Cart janitor misconfigured", "error", err)
			return
		}

		drained, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Cart janitor run failed", "error", err)
			return
		}

		if drained > 0 {
			j.logger.InfoContext(ctx, "Drained stale carts", "count", drained, "ttl", j.ttl)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cart janitor started", "schedule", j.schedule)
	return nil
}

// Stop stops the janitor.
func (j *CartJanitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cart janitor stopped")
}
