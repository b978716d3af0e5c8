package postgres

import (
	"context"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const loanColumns = `loan_id, customer_id, loan_amount, tenure, interest_rate, monthly_payment, emis_paid_on_time, start_date, end_date, created_at`

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return beginTx(ctx, r.db, r.logger)
}

func (r *LoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return commitTx(ctx, tx, r.logger)
}

func (r *LoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return rollbackTx(ctx, tx, r.logger)
}

func scanLoan(row pgx.Row) (loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.LoanID, &l.CustomerID, &l.LoanAmount, &l.Tenure, &l.InterestRate,
		&l.MonthlyPayment, &l.EMIsPaidOnTime, &l.StartDate, &l.EndDate, &l.CreatedAt,
	)
	return l, err
}

func (r *LoanRepository) CreateLoanInTx(ctx context.Context, tx pgx.Tx, newLoan *loan.Loan) (*loan.Loan, error) {
	if newLoan == nil {
		return nil, fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}

	query := `
        INSERT INTO loans (customer_id, loan_amount, tenure, interest_rate, monthly_payment, emis_paid_on_time, start_date, end_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
        RETURNING loan_id, created_at`

	created := *newLoan
	start := time.Now()
	err := tx.QueryRow(ctx, query,
		newLoan.CustomerID,
		newLoan.LoanAmount,
		newLoan.Tenure,
		newLoan.InterestRate,
		newLoan.MonthlyPayment,
		newLoan.EMIsPaidOnTime,
		newLoan.StartDate,
		newLoan.EndDate,
	).Scan(&created.LoanID, &created.CreatedAt)
	recordQuery("CreateLoan", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "customer_id", newLoan.CustomerID, "error", err)
		return nil, translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Loan inserted", "loan_id", created.LoanID, "customer_id", created.CustomerID)
	return &created, nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1`

	start := time.Now()
	l, err := scanLoan(r.db.QueryRow(ctx, query, loanID))
	recordQuery("GetLoanByID", start, err)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
			return nil, loan.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan by ID", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &l, nil
}

func (r *LoanRepository) ListByCustomer(ctx context.Context, customerID int64) ([]loan.Loan, error) {
	return r.listByCustomer(ctx, r.db, customerID)
}

func (r *LoanRepository) ListByCustomerInTx(ctx context.Context, tx pgx.Tx, customerID int64) ([]loan.Loan, error) {
	return r.listByCustomer(ctx, tx, customerID)
}

func (r *LoanRepository) listByCustomer(ctx context.Context, q querier, customerID int64) ([]loan.Loan, error) {
	logCtx := r.logger.With(slog.String("operation", "ListByCustomer"), slog.Int64("customer_id", customerID))
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY loan_id`

	start := time.Now()
	rows, err := q.Query(ctx, query, customerID)
	if err != nil {
		recordQuery("ListLoansByCustomer", start, err)
		logCtx.ErrorContext(ctx, "Failed to query customer loans", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query loans: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans := make([]loan.Loan, 0)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			recordQuery("ListLoansByCustomer", start, err)
			logCtx.ErrorContext(ctx, "Failed to scan loan row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed scanning loan: %w", apperrors.ErrDatabase, err)
		}
		loans = append(loans, l)
	}

	err = rows.Err()
	recordQuery("ListLoansByCustomer", start, err)
	if err != nil {
		logCtx.ErrorContext(ctx, "Error iterating loan rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating loans: %w", apperrors.ErrDatabase, err)
	}

	logCtx.DebugContext(ctx, "Loaded customer loans", slog.Int("count", len(loans)))
	return loans, nil
}

func (r *LoanRepository) UpsertLoan(ctx context.Context, l *loan.Loan) error {
	if l == nil {
		return fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}

	query := `
        INSERT INTO loans (loan_id, customer_id, loan_amount, tenure, interest_rate, monthly_payment, emis_paid_on_time, start_date, end_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
        ON CONFLICT (loan_id) DO UPDATE
        SET customer_id = EXCLUDED.customer_id,
            loan_amount = EXCLUDED.loan_amount,
            tenure = EXCLUDED.tenure,
            interest_rate = EXCLUDED.interest_rate,
            monthly_payment = EXCLUDED.monthly_payment,
            emis_paid_on_time = EXCLUDED.emis_paid_on_time,
            start_date = EXCLUDED.start_date,
            end_date = EXCLUDED.end_date`

	start := time.Now()
	_, err := r.db.Exec(ctx, query,
		l.LoanID,
		l.CustomerID,
		l.LoanAmount,
		l.Tenure,
		l.InterestRate,
		l.MonthlyPayment,
		l.EMIsPaidOnTime,
		l.StartDate,
		l.EndDate,
	)
	recordQuery("UpsertLoan", start, err)

	if err != nil {
		return translateDBError(err, r.logger.With("loan_id", l.LoanID))
	}
	return nil
}

// SyncIDSequence moves the loan id sequence past the highest stored id.
func (r *LoanRepository) SyncIDSequence(ctx context.Context) error {
	query := `SELECT setval(pg_get_serial_sequence('loans', 'loan_id'), COALESCE((SELECT MAX(loan_id) FROM loans), 0) + 1, false)`

	start := time.Now()
	_, err := r.db.Exec(ctx, query)
	recordQuery("SyncLoanSequence", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to sync loan id sequence", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

// PortfolioSummary counts loans active on today and sums every customer's
// outstanding debt.
func (r *LoanRepository) PortfolioSummary(ctx context.Context, today time.Time) (int64, decimal.Decimal, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM loans WHERE end_date >= $1),
            (SELECT COALESCE(SUM(current_debt), 0) FROM customers)`

	var activeLoans int64
	var debt decimal.Decimal

	start := time.Now()
	err := r.db.QueryRow(ctx, query, loan.DateOf(today)).Scan(&activeLoans, &debt)
	recordQuery("PortfolioSummary", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to compute portfolio summary", "error", err)
		return 0, decimal.Zero, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return activeLoans, debt, nil
}
