package credit

import (
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MinScore = decimal.Zero
	MaxScore = decimal.NewFromInt(100)

	paidLoanWeight        = decimal.NewFromInt(10)
	loanCountPenalty      = decimal.NewFromInt(2)
	currentYearLoanWeight = decimal.NewFromInt(5)
	amountUnit            = decimal.NewFromInt(100000)
)

// Score rates a customer from 0 to 100 using their loan history as of today.
// loans must be a consistent snapshot of every loan the customer holds.
func Score(cust *customer.Customer, loans []loan.Loan, today time.Time) decimal.Decimal {
	if cust.OverLimit() {
		return MinScore
	}

	var pastPaid, currentYear int64
	totalAmount := decimal.Zero
	for i := range loans {
		l := &loans[i]
		if l.IsPast(today) && l.FullyServiced() {
			pastPaid++
		}
		if l.StartDate.Year() == today.Year() {
			currentYear++
		}
		totalAmount = totalAmount.Add(l.LoanAmount)
	}

	raw := decimal.NewFromInt(pastPaid).Mul(paidLoanWeight).
		Sub(decimal.NewFromInt(int64(len(loans))).Mul(loanCountPenalty)).
		Add(decimal.NewFromInt(currentYear).Mul(currentYearLoanWeight)).
		Add(totalAmount.Div(amountUnit))

	return clamp(raw)
}

func clamp(s decimal.Decimal) decimal.Decimal {
	if s.LessThan(MinScore) {
		return MinScore
	}
	if s.GreaterThan(MaxScore) {
		return MaxScore
	}
	return s
}
