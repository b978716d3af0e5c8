package lending

import (
	"context"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// ErrNoLoans is returned when a customer has no loans to report.
var ErrNoLoans = fmt.Errorf("no loans found for this customer: %w", apperrors.ErrNotFound)

type LoanReporter interface {
	ViewLoan(ctx context.Context, loanID int64) (*LoanView, error)
	ViewCustomerLoans(ctx context.Context, customerID int64) ([]CustomerLoanView, error)
}

var _ LoanReporter = (*loanReporter)(nil)

type loanReporter struct {
	customers customer.CustomerService
	loans     loan.Repository
	logger    *slog.Logger
	now       func() time.Time
}

func NewLoanReporter(customers customer.CustomerService, loans loan.Repository, logger *slog.Logger) LoanReporter {
	if customers == nil || loans == nil {
		panic("customer service and loan repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &loanReporter{
		customers: customers,
		loans:     loans,
		logger:    logger.With(slog.String("component", "loanReporter")),
		now:       time.Now,
	}
}

func (r *loanReporter) ViewLoan(ctx context.Context, loanID int64) (*LoanView, error) {
	logger := r.logger.With(slog.Int64("loanId", loanID))

	l, err := r.loans.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Loan not found")
		} else {
			logger.ErrorContext(ctx, "Failed to load loan", slog.Any("error", err))
		}
		return nil, err
	}

	cust, err := r.customers.GetCustomer(ctx, l.CustomerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load loan owner", slog.Int64("customerId", l.CustomerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to load customer %d for loan %d: %w", l.CustomerID, loanID, err)
	}

	return &LoanView{
		LoanID: l.LoanID,
		Customer: CustomerSummary{
			CustomerID:  cust.CustomerID,
			FirstName:   cust.FirstName,
			LastName:    cust.LastName,
			PhoneNumber: cust.PhoneNumber,
			Age:         cust.Age,
		},
		LoanAmount:         l.LoanAmount,
		InterestRate:       l.InterestRate,
		MonthlyInstallment: loan.EMI(l.LoanAmount, l.InterestRate, l.Tenure),
		Tenure:             l.Tenure,
	}, nil
}

func (r *loanReporter) ViewCustomerLoans(ctx context.Context, customerID int64) ([]CustomerLoanView, error) {
	logger := r.logger.With(slog.Int64("customerId", customerID))

	loans, err := r.loans.ListByCustomer(ctx, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list customer loans", slog.Any("error", err))
		return nil, err
	}
	if len(loans) == 0 {
		logger.InfoContext(ctx, "No loans found for customer")
		return nil, ErrNoLoans
	}

	today := loan.DateOf(r.now())
	views := make([]CustomerLoanView, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		views = append(views, CustomerLoanView{
			LoanID:             l.LoanID,
			LoanAmount:         l.LoanAmount,
			InterestRate:       l.InterestRate,
			MonthlyInstallment: loan.EMI(l.LoanAmount, l.InterestRate, l.Tenure),
			RepaymentsLeft:     l.RepaymentsLeft(today),
		})
	}
	return views, nil
}
