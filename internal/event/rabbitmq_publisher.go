package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	RoutingKeyCustomerRegistered = "customer.registered"
	RoutingKeyLoanApproved       = "loan.approved"

	publisherAppID = "credit-engine"
)

type EventPublisher interface {
	PublishCustomerRegistered(ctx context.Context, event CustomerRegisteredEvent) error
	PublishLoanApproved(ctx context.Context, event LoanApprovedEvent) error
}

// amqpChannel is the subset of *amqp.Channel the publisher uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// RabbitMQEventPublisher publishes JSON events to a durable topic exchange.
// It keeps one channel open and reopens it when the broker closes it.
type RabbitMQEventPublisher struct {
	openChannel  func() (amqpChannel, error)
	exchangeName string
	logger       *slog.Logger

	mu sync.Mutex
	ch amqpChannel
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, errors.New("RabbitMQ connection cannot be nil")
	}
	return newPublisher(func() (amqpChannel, error) { return conn.Channel() }, exchangeName, logger)
}

func newPublisher(open func() (amqpChannel, error), exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if exchangeName == "" {
		return nil, errors.New("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	p := &RabbitMQEventPublisher{
		openChannel:  open,
		exchangeName: exchangeName,
		logger:       logger.With("component", "RabbitMQEventPublisher", "exchange", exchangeName),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.channel(); err != nil {
		return nil, err
	}
	p.logger.Info("Ensured RabbitMQ exchange exists", "type", amqp.ExchangeTopic)
	return p, nil
}

// channel returns the open channel, declaring the exchange on a fresh one.
// Callers must hold p.mu.
func (p *RabbitMQEventPublisher) channel() (amqpChannel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	ch, err := p.openChannel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", p.exchangeName, err)
	}
	p.ch = ch
	return ch, nil
}

func (p *RabbitMQEventPublisher) PublishCustomerRegistered(ctx context.Context, event CustomerRegisteredEvent) error {
	return p.publish(ctx, RoutingKeyCustomerRegistered, event.EventID, event.Timestamp, event)
}

func (p *RabbitMQEventPublisher) PublishLoanApproved(ctx context.Context, event LoanApprovedEvent) error {
	return p.publish(ctx, RoutingKeyLoanApproved, event.EventID, event.Timestamp, event)
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey, eventID string, at time.Time, payload any) error {
	logCtx := p.logger.With(slog.String("routingKey", routingKey), slog.String("eventId", eventID))

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    eventID,
		Type:         routingKey,
		Timestamp:    at,
		AppId:        publisherAppID,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		logCtx.ErrorContext(ctx, "RabbitMQ channel unavailable", slog.Any("error", err))
		return err
	}
	if err := ch.PublishWithContext(ctx, p.exchangeName, routingKey, false, false, msg); err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish message to RabbitMQ", slog.Any("error", err))
		return fmt.Errorf("failed to publish %s event: %w", routingKey, err)
	}

	logCtx.DebugContext(ctx, "Published event", slog.Int("bodySize", len(body)))
	return nil
}

// Close releases the publisher's channel. The connection is owned by the caller.
func (p *RabbitMQEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}
