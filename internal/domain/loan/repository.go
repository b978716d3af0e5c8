package loan

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateLoanInTx(ctx context.Context, tx pgx.Tx, loan *Loan) (*Loan, error)

	GetLoanByID(ctx context.Context, loanID int64) (*Loan, error)

	ListByCustomer(ctx context.Context, customerID int64) ([]Loan, error)

	ListByCustomerInTx(ctx context.Context, tx pgx.Tx, customerID int64) ([]Loan, error)

	UpsertLoan(ctx context.Context, loan *Loan) error

	SyncIDSequence(ctx context.Context) error

	PortfolioSummary(ctx context.Context, today time.Time) (activeLoans int64, outstandingDebt decimal.Decimal, err error)

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
