package event

import (
	"context"
	"log/slog"
)

// LogPublisher stands in for the broker when messaging is disabled.
type LogPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "LogPublisher")}
}

func (p *LogPublisher) PublishCustomerRegistered(ctx context.Context, event CustomerRegisteredEvent) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping event",
		slog.String("routingKey", RoutingKeyCustomerRegistered),
		slog.String("eventId", event.EventID),
		slog.Int64("customerId", event.CustomerID))
	return nil
}

func (p *LogPublisher) PublishLoanApproved(ctx context.Context, event LoanApprovedEvent) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping event",
		slog.String("routingKey", RoutingKeyLoanApproved),
		slog.String("eventId", event.EventID),
		slog.Int64("loanId", event.LoanID))
	return nil
}
