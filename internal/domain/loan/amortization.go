package loan

import (
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// MonthlyInstallment is the unrounded equated monthly installment:
//
//	r   = annualRatePercent / 1200
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degenerates the formula, so it is an even split P / n.
// The arithmetic is float64 so sums of several installments compare the
// same way the income cap has always been evaluated.
func MonthlyInstallment(principal, annualRatePercent decimal.Decimal, tenureMonths int) float64 {
	p := principal.InexactFloat64()
	r := annualRatePercent.InexactFloat64() / (12 * 100)
	n := float64(tenureMonths)

	if r == 0 {
		return p / n
	}

	factor := math.Pow(1+r, n)
	return (p * r * factor) / (factor - 1)
}

var ErrInstallmentOverflow = fmt.Errorf("%w: monthly installment is not finite for this rate and tenure", apperrors.ErrInvalidArgument)

// InstallmentFor is MonthlyInstallment for terms that have not been accepted
// yet. It fails when (1+r)^n overflows and the installment is not finite.
func InstallmentFor(principal, annualRatePercent decimal.Decimal, tenureMonths int) (float64, error) {
	emi := MonthlyInstallment(principal, annualRatePercent, tenureMonths)
	if math.IsNaN(emi) || math.IsInf(emi, 0) {
		return 0, ErrInstallmentOverflow
	}
	return emi, nil
}

// EMI is MonthlyInstallment rounded to two decimals.
func EMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	return RoundCurrency(MonthlyInstallment(principal, annualRatePercent, tenureMonths))
}

// RoundCurrency rounds x to cents using the exact binary value of x and
// ties-to-even, so 0.125 becomes 0.12 and 2.675 (stored as 2.67499...) 2.67.
// A non-finite x has no decimal value and rounds to zero.
func RoundCurrency(x float64) decimal.Decimal {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return decimal.Zero
	}
	return decimal.RequireFromString(strconv.FormatFloat(x, 'f', 2, 64))
}
