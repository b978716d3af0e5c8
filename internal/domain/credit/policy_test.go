package credit

import (
	"credit-engine/internal/domain/loan"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRequiredRateFloor(t *testing.T) {
	p := NewPolicy(0.5)

	tests := []struct {
		score     string
		floor     string
		grantable bool
	}{
		{"100", "0", true},
		{"50.01", "0", true},
		{"50", "12", true},
		{"30.5", "12", true},
		{"30", "16", true},
		{"10.01", "16", true},
		{"10", "", false},
		{"0", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			floor, ok := p.RequiredRateFloor(d(tt.score))
			assert.Equal(t, tt.grantable, ok)
			if tt.grantable {
				assert.True(t, d(tt.floor).Equal(floor), "floor %s", floor)
			}
		})
	}
}

func TestRequiredRateFloorIsNonIncreasing(t *testing.T) {
	p := NewPolicy(0.5)
	previous := d("16")
	for s := 11; s <= 100; s++ {
		floor, ok := p.RequiredRateFloor(decimal.NewFromInt(int64(s)))
		require.True(t, ok)
		assert.True(t, floor.LessThanOrEqual(previous), "score %d", s)
		assert.False(t, floor.IsNegative())
		previous = floor
	}
}

func TestBracketsCoverEveryScore(t *testing.T) {
	p := NewPolicy(0.5)
	for s := -5; s <= 105; s++ {
		score := decimal.NewFromInt(int64(s))
		matches := 0
		for _, b := range DefaultBrackets {
			if b.Contains(score) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "score %d", s)
		assert.True(t, p.BracketFor(score).Contains(score))
	}
}

func TestQuoteRate(t *testing.T) {
	p := NewPolicy(0.5)

	tests := []struct {
		name      string
		score     string
		requested string
		approved  bool
		corrected string
	}{
		{"High score any rate", "60", "5", true, "5"},
		{"Mid score above floor", "40", "14", true, "14"},
		{"Mid score below floor", "40", "10", false, "12"},
		{"Low score at floor", "20", "16", true, "16"},
		{"Low score below floor", "20", "11", false, "16"},
		{"Very low score quotes 16", "5", "9", false, "16"},
		{"Very low score above 16 still quotes 16", "5", "20", false, "16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := p.QuoteRate(d(tt.score), d(tt.requested))
			assert.Equal(t, tt.approved, q.Approved)
			assert.True(t, d(tt.corrected).Equal(q.CorrectedRate), "corrected %s", q.CorrectedRate)
		})
	}
}

func TestWithinIncomeCap(t *testing.T) {
	p := NewPolicy(0.5)
	active := loan.Loan{
		LoanAmount:   d("120000"),
		InterestRate: d("0"),
		Tenure:       12,
		StartDate:    date(2026, 1, 1),
		EndDate:      date(2027, 1, 1),
	}
	ended := loan.Loan{
		LoanAmount:   d("1200000"),
		InterestRate: d("0"),
		Tenure:       12,
		StartDate:    date(2024, 1, 1),
		EndDate:      date(2025, 1, 1),
	}

	// active installment is 10000, cap is 25000
	assert.True(t, p.WithinIncomeCap(15000, []loan.Loan{active, ended}, 50000, today))
	assert.False(t, p.WithinIncomeCap(15000.01, []loan.Loan{active, ended}, 50000, today))
	assert.True(t, p.WithinIncomeCap(25000, nil, 50000, today))
	assert.False(t, p.WithinIncomeCap(1, nil, 0, today))
}

func TestNewPolicyDefaultsRatio(t *testing.T) {
	p := NewPolicy(0)
	assert.Equal(t, DefaultMaxEMIIncomeRatio, p.maxEMIIncomeRatio)
}
