package credit

import (
	"credit-engine/internal/domain/loan"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultMaxEMIIncomeRatio = 0.5

// Bracket is a score range (Lower, Upper] and the minimum annual rate a loan
// in that range must carry. A missing bound is open. A bracket that is not
// grantable still quotes its floor as the corrected rate.
type Bracket struct {
	Lower     decimal.NullDecimal
	Upper     decimal.NullDecimal
	Floor     decimal.Decimal
	Grantable bool
}

func (b Bracket) Contains(score decimal.Decimal) bool {
	if b.Lower.Valid && !score.GreaterThan(b.Lower.Decimal) {
		return false
	}
	if b.Upper.Valid && score.GreaterThan(b.Upper.Decimal) {
		return false
	}
	return true
}

func bound(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

// DefaultBrackets is ordered from the best scores down and covers every score.
var DefaultBrackets = []Bracket{
	{Lower: bound(50), Floor: decimal.Zero, Grantable: true},
	{Lower: bound(30), Upper: bound(50), Floor: decimal.NewFromInt(12), Grantable: true},
	{Lower: bound(10), Upper: bound(30), Floor: decimal.NewFromInt(16), Grantable: true},
	{Upper: bound(10), Floor: decimal.NewFromInt(16), Grantable: false},
}

type Policy struct {
	brackets          []Bracket
	maxEMIIncomeRatio float64
}

func NewPolicy(maxEMIIncomeRatio float64) *Policy {
	if maxEMIIncomeRatio <= 0 {
		maxEMIIncomeRatio = DefaultMaxEMIIncomeRatio
	}
	return &Policy{brackets: DefaultBrackets, maxEMIIncomeRatio: maxEMIIncomeRatio}
}

// BracketFor returns the first bracket containing score.
func (p *Policy) BracketFor(score decimal.Decimal) Bracket {
	for _, b := range p.brackets {
		if b.Contains(score) {
			return b
		}
	}
	return p.brackets[len(p.brackets)-1]
}

// RequiredRateFloor returns the minimum rate for score, or false when no
// loan can be granted at any rate.
func (p *Policy) RequiredRateFloor(score decimal.Decimal) (decimal.Decimal, bool) {
	b := p.BracketFor(score)
	if !b.Grantable {
		return decimal.Decimal{}, false
	}
	return b.Floor, true
}

// Quote is the eligibility answer for a requested rate. Approved and
// CorrectedRate are computed independently: a rejected request still carries
// the rate it would need.
type Quote struct {
	Approved      bool
	CorrectedRate decimal.Decimal
}

func (p *Policy) QuoteRate(score, requestedRate decimal.Decimal) Quote {
	b := p.BracketFor(score)

	q := Quote{
		Approved:      b.Grantable && requestedRate.GreaterThanOrEqual(b.Floor),
		CorrectedRate: requestedRate,
	}
	switch {
	case !b.Grantable:
		q.CorrectedRate = b.Floor
	case requestedRate.LessThan(b.Floor):
		q.CorrectedRate = b.Floor
	}
	return q
}

// WithinIncomeCap reports whether newInstallment plus the installments of
// every loan active today fits under the configured share of monthly income.
func (p *Policy) WithinIncomeCap(newInstallment float64, loans []loan.Loan, monthlyIncome int64, today time.Time) bool {
	var existing float64
	for i := range loans {
		l := &loans[i]
		if !l.IsActive(today) {
			continue
		}
		existing += loan.MonthlyInstallment(l.LoanAmount, l.InterestRate, l.Tenure)
	}
	return newInstallment+existing <= p.maxEMIIncomeRatio*float64(monthlyIncome)
}
