package customer

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

var _ CustomerRepository = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) CreateIfAbsent(ctx context.Context, customer *Customer) (bool, error) {
	args := m.Called(ctx, customer)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	args := m.Called(ctx, customerID)
	var cust *Customer
	if args.Get(0) != nil {
		cust = args.Get(0).(*Customer)
	}
	return cust, args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phoneNumber int64) (*Customer, error) {
	args := m.Called(ctx, phoneNumber)
	var cust *Customer
	if args.Get(0) != nil {
		cust = args.Get(0).(*Customer)
	}
	return cust, args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID int64) (*Customer, error) {
	args := m.Called(ctx, tx, customerID)
	var cust *Customer
	if args.Get(0) != nil {
		cust = args.Get(0).(*Customer)
	}
	return cust, args.Error(1)
}

func (m *MockCustomerRepository) IncreaseDebtInTx(ctx context.Context, tx pgx.Tx, customerID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, tx, customerID, amount)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpsertCustomer(ctx context.Context, customer *Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SyncIDSequence(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
