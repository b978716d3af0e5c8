package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Job interface {
	Run(ctx context.Context) error
}

// Schedule registers job on c under spec. Each run gets its own context
// bounded by timeout.
func Schedule(c *cron.Cron, spec string, timeout time.Duration, name string, job Job, logger *slog.Logger) (cron.EntryID, error) {
	logCtx := logger.With("job", name, "schedule", spec)
	return c.AddJob(spec, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		logCtx.Info("Cron triggered batch job.")
		if err := job.Run(ctx); err != nil {
			logCtx.Error("Batch job execution failed", slog.Any("error", err))
			return
		}
		logCtx.Info("Batch job completed.")
	}))
}
