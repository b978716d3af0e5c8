package customer

import (
	"context"
	"credit-engine/internal/event"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const customerNotFound = "Customer not found by repository"

type RegisterInput struct {
	FirstName     string
	LastName      string
	Age           int
	MonthlyIncome int64
	PhoneNumber   int64
}

type CustomerService interface {
	// Register returns the stored customer and whether it was created by this call.
	Register(ctx context.Context, input RegisterInput) (*Customer, bool, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, publisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	if publisher == nil {
		publisher = event.NewLogPublisher(logger)
	}

	return &customerService{
		repo:   repo,
		pub:    publisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func validateRegistration(input RegisterInput) error {
	var errs apperrors.ValidationErrors
	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "first_name", Message: "This field may not be blank."})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "last_name", Message: "This field may not be blank."})
	}
	if input.Age <= 0 {
		errs = append(errs, &apperrors.ValidationError{Field: "age", Message: "Ensure this value is greater than 0."})
	}
	if input.MonthlyIncome < 0 {
		errs = append(errs, &apperrors.ValidationError{Field: "monthly_income", Message: "Ensure this value is greater than or equal to 0."})
	}
	if input.PhoneNumber <= 0 {
		errs = append(errs, &apperrors.ValidationError{Field: "phone_number", Message: "Ensure this value is greater than 0."})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *customerService) Register(ctx context.Context, input RegisterInput) (*Customer, bool, error) {
	logger := s.logger.With(slog.Int64("phoneNumber", input.PhoneNumber))
	logger.DebugContext(ctx, "Attempting to register customer")

	if err := validateRegistration(input); err != nil {
		logger.WarnContext(ctx, "Registration rejected by validation", slog.Any("error", err))
		return nil, false, err
	}

	cust := NewCustomer(input.FirstName, input.LastName, input.Age, input.PhoneNumber, input.MonthlyIncome)

	created, err := s.repo.CreateIfAbsent(ctx, cust)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return nil, false, fmt.Errorf("failed to register customer: %w", err)
	}

	if !created {
		existing, err := s.repo.FindByPhone(ctx, input.PhoneNumber)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to load existing customer by phone", slog.Any("error", err))
			return nil, false, fmt.Errorf("failed to load existing customer: %w", err)
		}
		logger.InfoContext(ctx, "Customer with phone number already registered", slog.Int64("customerId", existing.CustomerID))
		return existing, false, nil
	}

	monitoring.RecordCustomerRegistered()
	logger.InfoContext(ctx, "Customer registered", slog.Int64("customerId", cust.CustomerID), slog.Int64("approvedLimit", cust.ApprovedLimit))

	ev := event.NewCustomerRegisteredEvent(cust.CustomerID, cust.PhoneNumber, cust.MonthlyIncome, cust.ApprovedLimit)
	if err := s.pub.PublishCustomerRegistered(ctx, ev); err != nil {
		logger.ErrorContext(ctx, "Failed to publish customer registered event", slog.Any("error", err))
	}

	return cust, true, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerId", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
		} else {
			logger.ErrorContext(ctx, "Failed to get customer from repository", slog.Any("error", err))
		}
		return nil, err
	}
	return cust, nil
}
