package lending

import (
	"context"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/event"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type TxMock struct {
	pgx.Tx
}

type MockCustomerRepository struct {
	mock.Mock
}

var _ customer.CustomerRepository = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) CreateIfAbsent(ctx context.Context, c *customer.Customer) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	var c *customer.Customer
	if args.Get(0) != nil {
		c = args.Get(0).(*customer.Customer)
	}
	return c, args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phoneNumber int64) (*customer.Customer, error) {
	args := m.Called(ctx, phoneNumber)
	var c *customer.Customer
	if args.Get(0) != nil {
		c = args.Get(0).(*customer.Customer)
	}
	return c, args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, tx, customerID)
	var c *customer.Customer
	if args.Get(0) != nil {
		c = args.Get(0).(*customer.Customer)
	}
	return c, args.Error(1)
}

func (m *MockCustomerRepository) IncreaseDebtInTx(ctx context.Context, tx pgx.Tx, customerID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, tx, customerID, amount)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpsertCustomer(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) SyncIDSequence(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockLoanRepository struct {
	mock.Mock
}

var _ loan.Repository = (*MockLoanRepository)(nil)

func (m *MockLoanRepository) CreateLoanInTx(ctx context.Context, tx pgx.Tx, l *loan.Loan) (*loan.Loan, error) {
	args := m.Called(ctx, tx, l)
	var created *loan.Loan
	if args.Get(0) != nil {
		created = args.Get(0).(*loan.Loan)
	}
	return created, args.Error(1)
}

func (m *MockLoanRepository) GetLoanByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, loanID)
	var l *loan.Loan
	if args.Get(0) != nil {
		l = args.Get(0).(*loan.Loan)
	}
	return l, args.Error(1)
}

func (m *MockLoanRepository) ListByCustomer(ctx context.Context, customerID int64) ([]loan.Loan, error) {
	args := m.Called(ctx, customerID)
	var loans []loan.Loan
	if args.Get(0) != nil {
		loans = args.Get(0).([]loan.Loan)
	}
	return loans, args.Error(1)
}

func (m *MockLoanRepository) ListByCustomerInTx(ctx context.Context, tx pgx.Tx, customerID int64) ([]loan.Loan, error) {
	args := m.Called(ctx, tx, customerID)
	var loans []loan.Loan
	if args.Get(0) != nil {
		loans = args.Get(0).([]loan.Loan)
	}
	return loans, args.Error(1)
}

func (m *MockLoanRepository) UpsertLoan(ctx context.Context, l *loan.Loan) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoanRepository) SyncIDSequence(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLoanRepository) PortfolioSummary(ctx context.Context, today time.Time) (int64, decimal.Decimal, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockLoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockLoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockLoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

var _ event.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) PublishCustomerRegistered(ctx context.Context, ev event.CustomerRegisteredEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockEventPublisher) PublishLoanApproved(ctx context.Context, ev event.LoanApprovedEvent) error {
	return m.Called(ctx, ev).Error(0)
}
