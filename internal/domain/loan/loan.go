package loan

import (
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = fmt.Errorf("loan %w", apperrors.ErrNotFound)

// Loan is immutable after origination. MonthlyPayment is frozen at creation
// and never used for display; views recompute the installment.
type Loan struct {
	LoanID         int64
	CustomerID     int64
	LoanAmount     decimal.Decimal
	Tenure         int
	InterestRate   decimal.Decimal
	MonthlyPayment decimal.Decimal
	EMIsPaidOnTime int
	StartDate      time.Time
	EndDate        time.Time
	CreatedAt      time.Time
}

// NewLoan builds a loan originated today at the approved rate.
func NewLoan(customerID int64, amount decimal.Decimal, tenure int, rate decimal.Decimal, today time.Time) (*Loan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: loan amount must be positive", apperrors.ErrInvalidArgument)
	}
	if tenure <= 0 {
		return nil, fmt.Errorf("%w: tenure must be positive", apperrors.ErrInvalidArgument)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrInvalidArgument)
	}

	installment, err := InstallmentFor(amount, rate, tenure)
	if err != nil {
		return nil, err
	}

	start := DateOf(today)
	return &Loan{
		CustomerID:     customerID,
		LoanAmount:     amount,
		Tenure:         tenure,
		InterestRate:   rate,
		MonthlyPayment: RoundCurrency(installment),
		EMIsPaidOnTime: 0,
		StartDate:      start,
		EndDate:        EndDateFor(start, tenure),
	}, nil
}

// IsActive reports whether the loan's end date has not yet passed.
func (l *Loan) IsActive(today time.Time) bool {
	return !DateOf(l.EndDate).Before(DateOf(today))
}

// IsPast reports whether the loan ended strictly before today.
func (l *Loan) IsPast(today time.Time) bool {
	return DateOf(l.EndDate).Before(DateOf(today))
}

// FullyServiced reports whether every installment was paid on schedule.
func (l *Loan) FullyServiced() bool {
	return l.EMIsPaidOnTime >= l.Tenure
}

// RepaymentsLeft counts installments still due, by calendar month and
// ignoring the day of month.
func (l *Loan) RepaymentsLeft(today time.Time) int {
	left := l.Tenure - MonthsElapsed(l.StartDate, today)
	if left < 0 {
		return 0
	}
	return left
}

// DateOf strips the clock, keeping the calendar date of t in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndDateFor advances start by tenure/12 whole years. A Feb 29 start that
// lands on a non-leap year is clamped to Feb 28.
func EndDateFor(start time.Time, tenure int) time.Time {
	y, m, d := start.Date()
	year := y + tenure/12
	if m == time.February && d == 29 && !isLeap(year) {
		d = 28
	}
	return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
}

func MonthsElapsed(start, today time.Time) int {
	return (today.Year()-start.Year())*12 + int(today.Month()) - int(start.Month())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
