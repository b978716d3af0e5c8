package batch

import (
	"context"
	"credit-engine/internal/infrastructure/monitoring"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

type PortfolioSource interface {
	PortfolioSummary(ctx context.Context, today time.Time) (int64, decimal.Decimal, error)
}

// PortfolioSnapshotJob publishes the active loan count and total outstanding
// customer debt as gauges.
type PortfolioSnapshotJob struct {
	source PortfolioSource
	logger *slog.Logger
	now    func() time.Time
}

func NewPortfolioSnapshotJob(source PortfolioSource, logger *slog.Logger) *PortfolioSnapshotJob {
	if source == nil || logger == nil {
		panic("PortfolioSnapshotJob dependencies cannot be nil")
	}
	return &PortfolioSnapshotJob{
		source: source,
		logger: logger.With("job", "PortfolioSnapshot"),
		now:    time.Now,
	}
}

func (j *PortfolioSnapshotJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting portfolio snapshot job.")

	activeLoans, debt, err := j.source.PortfolioSummary(ctx, j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to compute portfolio summary, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to summarize portfolio: %w", err)
	}

	monitoring.RecordPortfolioSnapshot(activeLoans, debt.InexactFloat64(), j.now())

	j.logger.InfoContext(ctx, "Portfolio snapshot job finished successfully.",
		slog.Int64("active_loans", activeLoans),
		slog.String("outstanding_debt", debt.StringFixed(2)),
		slog.Duration("duration", time.Since(startTime)))
	return nil
}
