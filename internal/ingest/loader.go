package ingest

import (
	"context"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/pkg/apperrors"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	customerColumns = []string{
		"customer_id", "first_name", "last_name", "age",
		"phone_number", "monthly_salary", "approved_limit",
	}
	loanColumns = []string{
		"customer_id", "loan_id", "loan_amount", "tenure",
		"interest_rate", "monthly_payment", "emis_paid_on_time",
		"start_date", "end_date",
	}

	dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", "2006/01/02", "1/2/2006", "01/02/2006"}
)

// Result counts rows written and rows skipped for one file.
type Result struct {
	Inserted int
	Skipped  int
}

type Report struct {
	Customers Result
	Loans     Result
}

type Loader struct {
	customers customer.CustomerRepository
	loans     loan.Repository
	logger    *slog.Logger
}

func NewLoader(customers customer.CustomerRepository, loans loan.Repository, logger *slog.Logger) *Loader {
	if customers == nil || loans == nil || logger == nil {
		panic("Loader dependencies cannot be nil")
	}
	return &Loader{
		customers: customers,
		loans:     loans,
		logger:    logger.With("component", "Loader"),
	}
}

// LoadFiles loads customers then loans and advances both id sequences.
// A customer file failure does not stop the loan file from being attempted.
func (l *Loader) LoadFiles(ctx context.Context, customersPath, loansPath string) (Report, error) {
	var report Report
	var errs []error

	custResult, err := l.loadFile(ctx, customersPath, l.LoadCustomers)
	report.Customers = custResult
	if err != nil {
		errs = append(errs, fmt.Errorf("customers: %w", err))
	}

	loanResult, err := l.loadFile(ctx, loansPath, l.LoadLoans)
	report.Loans = loanResult
	if err != nil {
		errs = append(errs, fmt.Errorf("loans: %w", err))
	}

	if err := l.customers.SyncIDSequence(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := l.loans.SyncIDSequence(ctx); err != nil {
		errs = append(errs, err)
	}

	return report, errors.Join(errs...)
}

func (l *Loader) loadFile(ctx context.Context, path string, load func(context.Context, io.Reader) (Result, error)) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to open ingestion file", slog.String("path", path), slog.Any("error", err))
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return load(ctx, f)
}

func (l *Loader) LoadCustomers(ctx context.Context, r io.Reader) (Result, error) {
	var res Result
	rows, err := newTable(r, customerColumns)
	if err != nil {
		l.logger.ErrorContext(ctx, "Customer file rejected", slog.Any("error", err))
		return res, err
	}

	for rows.next() {
		cust, err := rows.customer()
		if err == nil {
			err = l.customers.UpsertCustomer(ctx, cust)
		}
		if err != nil {
			l.logger.ErrorContext(ctx, "Error processing customer row", slog.Int("line", rows.line), slog.Any("error", err))
			res.Skipped++
			continue
		}
		res.Inserted++
	}
	if rows.err != nil {
		return res, rows.err
	}

	l.logger.InfoContext(ctx, "Loaded customers", slog.Int("inserted", res.Inserted), slog.Int("skipped", res.Skipped))
	return res, nil
}

func (l *Loader) LoadLoans(ctx context.Context, r io.Reader) (Result, error) {
	var res Result
	rows, err := newTable(r, loanColumns)
	if err != nil {
		l.logger.ErrorContext(ctx, "Loan file rejected", slog.Any("error", err))
		return res, err
	}

	for rows.next() {
		ln, err := rows.loan()
		if err != nil {
			l.logger.ErrorContext(ctx, "Error processing loan row", slog.Int("line", rows.line), slog.Any("error", err))
			res.Skipped++
			continue
		}

		if _, err := l.customers.FindByID(ctx, ln.CustomerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				l.logger.WarnContext(ctx, "Customer not found, skipping loan",
					slog.Int64("customerID", ln.CustomerID), slog.Int64("loanID", ln.LoanID))
			} else {
				l.logger.ErrorContext(ctx, "Failed to look up loan owner", slog.Int64("loanID", ln.LoanID), slog.Any("error", err))
			}
			res.Skipped++
			continue
		}

		if err := l.loans.UpsertLoan(ctx, ln); err != nil {
			l.logger.WarnContext(ctx, "Loan upsert failed", slog.Int64("loanID", ln.LoanID), slog.Any("error", err))
			res.Skipped++
			continue
		}
		res.Inserted++
	}
	if rows.err != nil {
		return res, rows.err
	}

	l.logger.InfoContext(ctx, "Loaded loans", slog.Int("inserted", res.Inserted), slog.Int("skipped", res.Skipped))
	return res, nil
}

// NormalizeHeader lowercases and trims a column name and replaces spaces
// with underscores.
func NormalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

type table struct {
	reader *csv.Reader
	index  map[string]int
	record []string
	line   int
	err    error
}

func newTable(r io.Reader, required []string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[NormalizeHeader(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %v", apperrors.ErrInvalidArgument, missing)
	}

	return &table{reader: reader, index: index, line: 1}, nil
}

func (t *table) next() bool {
	record, err := t.reader.Read()
	if errors.Is(err, io.EOF) {
		return false
	}
	t.line++
	if err != nil {
		t.err = fmt.Errorf("read line %d: %w", t.line, err)
		return false
	}
	t.record = record
	return true
}

func (t *table) field(col string) (string, error) {
	i := t.index[col]
	if i >= len(t.record) {
		return "", fmt.Errorf("column %s: missing value", col)
	}
	v := strings.TrimSpace(t.record[i])
	if v == "" {
		return "", fmt.Errorf("column %s: empty value", col)
	}
	return v, nil
}

func (t *table) decimal(col string) (decimal.Decimal, error) {
	v, err := t.field(col)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("column %s: %w", col, err)
	}
	return d, nil
}

// integer accepts whole numbers written with a fractional part, e.g. "50000.0".
func (t *table) integer(col string) (int64, error) {
	d, err := t.decimal(col)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("column %s: %s is not a whole number", col, d)
	}
	return d.IntPart(), nil
}

func (t *table) date(col string) (time.Time, error) {
	v, err := t.field(col)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, v); err == nil {
			return loan.DateOf(parsed), nil
		}
	}
	return time.Time{}, fmt.Errorf("column %s: unrecognised date %q", col, v)
}

func (t *table) customer() (*customer.Customer, error) {
	var c customer.Customer
	var err error
	var age int64

	if c.CustomerID, err = t.integer("customer_id"); err != nil {
		return nil, err
	}
	if c.FirstName, err = t.field("first_name"); err != nil {
		return nil, err
	}
	if c.LastName, err = t.field("last_name"); err != nil {
		return nil, err
	}
	if age, err = t.integer("age"); err != nil {
		return nil, err
	}
	c.Age = int(age)
	if c.PhoneNumber, err = t.integer("phone_number"); err != nil {
		return nil, err
	}
	if c.MonthlyIncome, err = t.integer("monthly_salary"); err != nil {
		return nil, err
	}
	if c.ApprovedLimit, err = t.integer("approved_limit"); err != nil {
		return nil, err
	}
	c.CurrentDebt = decimal.Zero
	return &c, nil
}

func (t *table) loan() (*loan.Loan, error) {
	var l loan.Loan
	var err error
	var tenure, paid int64

	if l.CustomerID, err = t.integer("customer_id"); err != nil {
		return nil, err
	}
	if l.LoanID, err = t.integer("loan_id"); err != nil {
		return nil, err
	}
	if l.LoanAmount, err = t.decimal("loan_amount"); err != nil {
		return nil, err
	}
	if tenure, err = t.integer("tenure"); err != nil {
		return nil, err
	}
	l.Tenure = int(tenure)
	if l.InterestRate, err = t.decimal("interest_rate"); err != nil {
		return nil, err
	}
	if l.MonthlyPayment, err = t.decimal("monthly_payment"); err != nil {
		return nil, err
	}
	if paid, err = t.integer("emis_paid_on_time"); err != nil {
		return nil, err
	}
	l.EMIsPaidOnTime = int(paid)
	if l.StartDate, err = t.date("start_date"); err != nil {
		return nil, err
	}
	if l.EndDate, err = t.date("end_date"); err != nil {
		return nil, err
	}
	return &l, nil
}
