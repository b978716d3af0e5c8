package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const customerColumns = `customer_id, first_name, last_name, age, phone_number, monthly_income, approved_limit, current_debt, created_at, updated_at`

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.CustomerID, &c.FirstName, &c.LastName, &c.Age, &c.PhoneNumber,
		&c.MonthlyIncome, &c.ApprovedLimit, &c.CurrentDebt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) CreateIfAbsent(ctx context.Context, cust *customer.Customer) (bool, error) {
	if cust == nil {
		return false, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	r.logger.DebugContext(ctx, "Attempting to insert new customer", slog.Int64("phoneNumber", cust.PhoneNumber))

	query := `
        INSERT INTO customers (first_name, last_name, age, phone_number, monthly_income, approved_limit, current_debt, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        ON CONFLICT (phone_number) DO NOTHING
        RETURNING customer_id, created_at, updated_at`

	start := time.Now()
	err := r.db.QueryRow(ctx, query,
		cust.FirstName,
		cust.LastName,
		cust.Age,
		cust.PhoneNumber,
		cust.MonthlyIncome,
		cust.ApprovedLimit,
		cust.CurrentDebt,
	).Scan(&cust.CustomerID, &cust.CreatedAt, &cust.UpdatedAt)
	recordQuery("CreateCustomerIfAbsent", start, err)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.InfoContext(ctx, "Customer with phone number already exists", slog.Int64("phoneNumber", cust.PhoneNumber))
			return false, nil
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return false, translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.CustomerID))
	return true, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`

	start := time.Now()
	cust, err := scanCustomer(r.db.QueryRow(ctx, query, customerID))
	recordQuery("FindCustomerByID", start, err)
	return r.found(ctx, cust, err, slog.Int64("customerID", customerID))
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, phoneNumber int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone_number = $1`

	start := time.Now()
	cust, err := scanCustomer(r.db.QueryRow(ctx, query, phoneNumber))
	recordQuery("FindCustomerByPhone", start, err)
	return r.found(ctx, cust, err, slog.Int64("phoneNumber", phoneNumber))
}

func (r *CustomerRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 FOR UPDATE`

	start := time.Now()
	cust, err := scanCustomer(tx.QueryRow(ctx, query, customerID))
	recordQuery("FindCustomerByIDForUpdate", start, err)
	return r.found(ctx, cust, err, slog.Int64("customerID", customerID))
}

func (r *CustomerRepository) found(ctx context.Context, cust *customer.Customer, err error, key slog.Attr) (*customer.Customer, error) {
	if err == nil {
		return cust, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.WarnContext(ctx, "Customer not found", key)
		return nil, customer.ErrNotFound
	}
	r.logger.ErrorContext(ctx, "Failed to query customer", key, slog.Any("error", err))
	return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}

func (r *CustomerRepository) IncreaseDebtInTx(ctx context.Context, tx pgx.Tx, customerID int64, amount decimal.Decimal) error {
	query := `
        UPDATE customers
        SET current_debt = current_debt + $1,
            updated_at = NOW()
        WHERE customer_id = $2`

	start := time.Now()
	tag, err := tx.Exec(ctx, query, amount, customerID)
	recordQuery("IncreaseCustomerDebt", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to increase customer debt", slog.Int64("customerID", customerID), slog.Any("error", err))
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) UpsertCustomer(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	query := `
        INSERT INTO customers (customer_id, first_name, last_name, age, phone_number, monthly_income, approved_limit, current_debt, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        ON CONFLICT (customer_id) DO UPDATE
        SET first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name,
            age = EXCLUDED.age,
            phone_number = EXCLUDED.phone_number,
            monthly_income = EXCLUDED.monthly_income,
            approved_limit = EXCLUDED.approved_limit,
            current_debt = EXCLUDED.current_debt,
            updated_at = NOW()`

	start := time.Now()
	_, err := r.db.Exec(ctx, query,
		cust.CustomerID,
		cust.FirstName,
		cust.LastName,
		cust.Age,
		cust.PhoneNumber,
		cust.MonthlyIncome,
		cust.ApprovedLimit,
		cust.CurrentDebt,
	)
	recordQuery("UpsertCustomer", start, err)

	if err != nil {
		return translateDBError(err, r.logger.With(slog.Int64("customerID", cust.CustomerID)))
	}
	return nil
}

// SyncIDSequence moves the customer id sequence past the highest stored id.
func (r *CustomerRepository) SyncIDSequence(ctx context.Context) error {
	query := `SELECT setval(pg_get_serial_sequence('customers', 'customer_id'), COALESCE((SELECT MAX(customer_id) FROM customers), 0) + 1, false)`

	start := time.Now()
	_, err := r.db.Exec(ctx, query)
	recordQuery("SyncCustomerSequence", start, err)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to sync customer id sequence", slog.Any("error", err))
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}
