package loan

import (
	"credit-engine/internal/pkg/apperrors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewLoan(t *testing.T) {
	today := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

	l, err := NewLoan(7, decimal.NewFromInt(100000), 12, decimal.NewFromInt(12), today)

	require.NoError(t, err)
	assert.Equal(t, int64(7), l.CustomerID)
	assert.Equal(t, 12, l.Tenure)
	assert.Equal(t, 0, l.EMIsPaidOnTime)
	assert.Equal(t, date(2026, 10, 19), l.StartDate)
	assert.Equal(t, date(2027, 10, 19), l.EndDate)
	assert.Equal(t, "8884.88", l.MonthlyPayment.StringFixed(2))
}

func TestNewLoanRejectsInvalidTerms(t *testing.T) {
	today := date(2026, 1, 1)

	_, err := NewLoan(1, decimal.Zero, 12, decimal.NewFromInt(10), today)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = NewLoan(1, decimal.NewFromInt(1000), 0, decimal.NewFromInt(10), today)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = NewLoan(1, decimal.NewFromInt(1000), 12, decimal.NewFromInt(-1), today)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = NewLoan(1, decimal.NewFromInt(1000), 1200, decimal.NewFromInt(1000), today)
	assert.ErrorIs(t, err, ErrInstallmentOverflow)
}

func TestEndDateFor(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		tenure int
		want   time.Time
	}{
		{"under a year keeps the start date", date(2026, 5, 10), 6, date(2026, 5, 10)},
		{"whole years only", date(2026, 5, 10), 30, date(2028, 5, 10)},
		{"leap day to leap year", date(2024, 2, 29), 48, date(2028, 2, 29)},
		{"leap day clamps in common year", date(2024, 2, 29), 12, date(2025, 2, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EndDateFor(tt.start, tt.tenure))
		})
	}
}

func TestActiveAndPast(t *testing.T) {
	today := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)

	endsToday := &Loan{EndDate: date(2026, 10, 19)}
	assert.True(t, endsToday.IsActive(today))
	assert.False(t, endsToday.IsPast(today))

	endedYesterday := &Loan{EndDate: date(2026, 10, 18)}
	assert.False(t, endedYesterday.IsActive(today))
	assert.True(t, endedYesterday.IsPast(today))
}

func TestFullyServiced(t *testing.T) {
	assert.True(t, (&Loan{Tenure: 12, EMIsPaidOnTime: 12}).FullyServiced())
	assert.True(t, (&Loan{Tenure: 12, EMIsPaidOnTime: 13}).FullyServiced())
	assert.False(t, (&Loan{Tenure: 12, EMIsPaidOnTime: 11}).FullyServiced())
}

func TestRepaymentsLeft(t *testing.T) {
	today := date(2026, 10, 19)

	tests := []struct {
		name  string
		start time.Time
		tenur int
		want  int
	}{
		{"eight months in", date(2026, 2, 1), 24, 16},
		{"day of month is ignored", date(2026, 9, 30), 12, 11},
		{"started this month", date(2026, 10, 1), 6, 6},
		{"across years", date(2024, 11, 5), 36, 13},
		{"overdue floors at zero", date(2020, 1, 1), 12, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Loan{StartDate: tt.start, Tenure: tt.tenur}
			assert.Equal(t, tt.want, l.RepaymentsLeft(today))
		})
	}
}
