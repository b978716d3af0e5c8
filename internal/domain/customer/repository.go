package customer

import (
	"context"
	"credit-engine/internal/pkg/apperrors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var ErrNotFound = fmt.Errorf("customer %w", apperrors.ErrNotFound)

type CustomerRepository interface {
	// CreateIfAbsent inserts the customer unless the phone number is taken.
	// On insert it fills CustomerID and timestamps and returns true.
	CreateIfAbsent(ctx context.Context, customer *Customer) (bool, error)

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByPhone(ctx context.Context, phoneNumber int64) (*Customer, error)

	// FindByIDForUpdate row-locks the customer until tx ends.
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID int64) (*Customer, error)

	IncreaseDebtInTx(ctx context.Context, tx pgx.Tx, customerID int64, amount decimal.Decimal) error

	UpsertCustomer(ctx context.Context, customer *Customer) error

	SyncIDSequence(ctx context.Context) error
}
