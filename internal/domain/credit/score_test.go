package credit

import (
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCustomer(limit int64, debt string) *customer.Customer {
	return &customer.Customer{
		CustomerID:    1,
		MonthlyIncome: 100000,
		ApprovedLimit: limit,
		CurrentDebt:   decimal.RequireFromString(debt),
	}
}

func pastPaidLoan(amount int64) loan.Loan {
	return loan.Loan{
		LoanAmount:     decimal.NewFromInt(amount),
		Tenure:         12,
		InterestRate:   decimal.NewFromInt(10),
		EMIsPaidOnTime: 12,
		StartDate:      date(2020, time.March, 1),
		EndDate:        date(2021, time.March, 1),
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		customer *customer.Customer
		loans    []loan.Loan
		expected string
	}{
		{
			name:     "No history clamps to zero",
			customer: newCustomer(3600000, "0"),
			expected: "0",
		},
		{
			name:     "Debt over limit is zero regardless of history",
			customer: newCustomer(100000, "100001"),
			loans:    []loan.Loan{pastPaidLoan(5000000), pastPaidLoan(5000000)},
			expected: "0",
		},
		{
			name:     "Debt equal to limit is scored",
			customer: newCustomer(100000, "100000"),
			loans:    []loan.Loan{pastPaidLoan(200000)},
			expected: "10",
		},
		{
			name:     "Past paid loans and amount",
			customer: newCustomer(3600000, "0"),
			loans:    []loan.Loan{pastPaidLoan(1000000), pastPaidLoan(2500000)},
			// 2*10 - 2*2 + 0 + 35
			expected: "51",
		},
		{
			name:     "Past loan not fully serviced earns nothing",
			customer: newCustomer(3600000, "0"),
			loans: []loan.Loan{{
				LoanAmount:     decimal.NewFromInt(1000000),
				Tenure:         12,
				EMIsPaidOnTime: 11,
				StartDate:      date(2020, time.March, 1),
				EndDate:        date(2021, time.March, 1),
			}},
			// -2 + 10
			expected: "8",
		},
		{
			name:     "Loan ending today is not past",
			customer: newCustomer(3600000, "0"),
			loans: []loan.Loan{{
				LoanAmount:     decimal.NewFromInt(1500000),
				Tenure:         12,
				EMIsPaidOnTime: 12,
				StartDate:      date(2025, time.October, 19),
				EndDate:        today,
			}},
			// -2 + 15
			expected: "13",
		},
		{
			name:     "Current year loans",
			customer: newCustomer(3600000, "0"),
			loans: []loan.Loan{{
				LoanAmount: decimal.NewFromInt(250000),
				Tenure:     24,
				StartDate:  date(2026, time.January, 10),
				EndDate:    date(2028, time.January, 10),
			}},
			// -2 + 5 + 2.5
			expected: "5.5",
		},
		{
			name:     "Clamped to 100",
			customer: newCustomer(360000000, "0"),
			loans:    []loan.Loan{pastPaidLoan(20000000)},
			expected: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.customer, tt.loans, today)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}
