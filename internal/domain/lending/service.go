package lending

import (
	"context"
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/event"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

type LendingService interface {
	CheckEligibility(ctx context.Context, req LoanRequest) (*EligibilityResult, error)
	// CreateLoan reports a missing customer as a rejected decision, not an error.
	// On unexpected failures it returns both a rejected decision and the error.
	CreateLoan(ctx context.Context, req LoanRequest) (*LoanDecision, error)
}

var _ LendingService = (*lendingService)(nil)

type lendingService struct {
	customers customer.CustomerRepository
	loans     loan.Repository
	policy    *credit.Policy
	pub       event.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewLendingService(customers customer.CustomerRepository, loans loan.Repository, policy *credit.Policy, publisher event.EventPublisher, logger *slog.Logger) LendingService {
	if customers == nil {
		panic("customer repository cannot be nil")
	}
	if loans == nil {
		panic("loan repository cannot be nil")
	}
	if policy == nil {
		policy = credit.NewPolicy(credit.DefaultMaxEMIIncomeRatio)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewLendingService, using default stderr handler")
	}
	if publisher == nil {
		publisher = event.NewLogPublisher(logger)
	}

	return &lendingService{
		customers: customers,
		loans:     loans,
		policy:    policy,
		pub:       publisher,
		logger:    logger.With(slog.String("component", "lendingService")),
		now:       time.Now,
	}
}

func (s *lendingService) today() time.Time {
	return loan.DateOf(s.now())
}

func (s *lendingService) CheckEligibility(ctx context.Context, req LoanRequest) (*EligibilityResult, error) {
	logger := s.logger.With(slog.Int64("customerId", req.CustomerID))

	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.ErrorContext(ctx, "Failed to load customer for eligibility", slog.Any("error", err))
		}
		return nil, err
	}

	history, err := s.loans.ListByCustomer(ctx, req.CustomerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load loan history for eligibility", slog.Any("error", err))
		return nil, fmt.Errorf("failed to load loans for customer %d: %w", req.CustomerID, err)
	}

	today := s.today()
	score := credit.Score(cust, history, today)
	installment, err := loan.InstallmentFor(req.LoanAmount, req.InterestRate, req.Tenure)
	if err != nil {
		logger.WarnContext(ctx, "Requested terms have no finite installment", slog.Int("tenure", req.Tenure))
		return nil, err
	}

	result := &EligibilityResult{
		CustomerID:            req.CustomerID,
		InterestRate:          req.InterestRate,
		CorrectedInterestRate: req.InterestRate,
		Tenure:                req.Tenure,
		MonthlyInstallment:    decimal.Zero,
	}

	if !s.policy.WithinIncomeCap(installment, history, cust.MonthlyIncome, today) {
		logger.InfoContext(ctx, "Eligibility rejected by income cap", slog.String("score", score.String()))
		monitoring.RecordEligibilityCheck(OutcomeRejectedCap)
		return result, nil
	}

	quote := s.policy.QuoteRate(score, req.InterestRate)
	result.Approval = quote.Approved
	result.CorrectedInterestRate = quote.CorrectedRate
	if !quote.CorrectedRate.Equal(req.InterestRate) {
		if installment, err = loan.InstallmentFor(req.LoanAmount, quote.CorrectedRate, req.Tenure); err != nil {
			return nil, err
		}
	}
	result.MonthlyInstallment = loan.RoundCurrency(installment)

	outcome := "rejected"
	if result.Approval {
		outcome = "approved"
	}
	monitoring.RecordEligibilityCheck(outcome)
	logger.InfoContext(ctx, "Eligibility evaluated",
		slog.String("score", score.String()),
		slog.Bool("approval", result.Approval),
		slog.String("correctedRate", result.CorrectedInterestRate.String()))

	return result, nil
}

func (s *lendingService) CreateLoan(ctx context.Context, req LoanRequest) (decision *LoanDecision, err error) {
	logger := s.logger.With(slog.Int64("customerId", req.CustomerID))
	outcome := OutcomeError

	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.loans.BeginTx(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		monitoring.RecordLoanDecision(outcome)
		return s.serverError(req, err), fmt.Errorf("%w: could not begin transaction: %w", apperrors.ErrInternalServer, err)
	}

	committed := false
	defer func() {
		monitoring.RecordLoanDecision(outcome)
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "Panic occurred during loan origination", slog.Any("error", p))
			_ = s.loans.RollbackTx(ctx, tx)
			panic(p)
		}
		if committed {
			return
		}
		if err != nil {
			logger.ErrorContext(ctx, "Rolling back transaction due to error", slog.Any("error", err))
			decision = s.serverError(req, err)
		}
		_ = s.loans.RollbackTx(ctx, tx)
	}()

	cust, err := s.customers.FindByIDForUpdate(ctx, tx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Loan requested for unknown customer")
			outcome = OutcomeCustomerNotFound
			return &LoanDecision{
				CustomerID:         req.CustomerID,
				Message:            MessageCustomerNotFound,
				MonthlyInstallment: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("failed to lock customer %d: %w", req.CustomerID, err)
	}

	history, err := s.loans.ListByCustomerInTx(ctx, tx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load loans for customer %d: %w", req.CustomerID, err)
	}

	today := s.today()
	score := credit.Score(cust, history, today)
	installment, err := loan.InstallmentFor(req.LoanAmount, req.InterestRate, req.Tenure)
	if err != nil {
		return nil, err
	}

	if !s.policy.WithinIncomeCap(installment, history, cust.MonthlyIncome, today) {
		logger.InfoContext(ctx, "Loan rejected by income cap", slog.String("score", score.String()))
		outcome = OutcomeRejectedCap
		return s.rejected(req, MessageIncomeCapBreach, installment), nil
	}

	floor, grantable := s.policy.RequiredRateFloor(score)
	if !grantable {
		logger.InfoContext(ctx, "Loan rejected by credit score", slog.String("score", score.String()))
		outcome = OutcomeRejectedScore
		return s.rejected(req, MessageScoreTooLow, installment), nil
	}

	// A zero floor never corrects the requested rate.
	approvedRate := req.InterestRate
	if !floor.IsZero() && req.InterestRate.LessThan(floor) {
		approvedRate = floor
	}

	newLoan, err := loan.NewLoan(req.CustomerID, req.LoanAmount, req.Tenure, approvedRate, today)
	if err != nil {
		return nil, err
	}

	created, err := s.loans.CreateLoanInTx(ctx, tx, newLoan)
	if err != nil {
		return nil, fmt.Errorf("failed to persist loan: %w", err)
	}

	if err = s.customers.IncreaseDebtInTx(ctx, tx, req.CustomerID, req.LoanAmount); err != nil {
		return nil, fmt.Errorf("failed to update customer debt: %w", err)
	}

	if err = s.loans.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: could not commit transaction: %w", apperrors.ErrInternalServer, err)
	}
	committed = true
	outcome = OutcomeApproved

	logger.InfoContext(ctx, "Loan approved",
		slog.Int64("loanId", created.LoanID),
		slog.String("score", score.String()),
		slog.String("approvedRate", approvedRate.String()))

	ev := event.NewLoanApprovedEvent(created.LoanID, created.CustomerID, created.LoanAmount.String(),
		created.InterestRate.String(), created.Tenure, created.MonthlyPayment.StringFixed(2))
	if pubErr := s.pub.PublishLoanApproved(ctx, ev); pubErr != nil {
		logger.ErrorContext(ctx, "Failed to publish loan approved event", slog.Any("error", pubErr))
	}

	loanID := created.LoanID
	return &LoanDecision{
		LoanID:             &loanID,
		CustomerID:         req.CustomerID,
		LoanApproved:       true,
		Message:            MessageApproved,
		MonthlyInstallment: created.MonthlyPayment,
	}, nil
}

func (s *lendingService) rejected(req LoanRequest, message string, installment float64) *LoanDecision {
	return &LoanDecision{
		CustomerID:         req.CustomerID,
		Message:            message,
		MonthlyInstallment: loan.RoundCurrency(installment),
	}
}

func (s *lendingService) serverError(req LoanRequest, err error) *LoanDecision {
	return &LoanDecision{
		CustomerID:         req.CustomerID,
		Message:            serverErrorPrefix + err.Error(),
		MonthlyInstallment: decimal.Zero,
	}
}
