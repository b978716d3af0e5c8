package customer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	approvedLimitMultiplier = 36
	approvedLimitStep       = 100000
)

type Customer struct {
	CustomerID    int64           `json:"customerId"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Age           int             `json:"age"`
	PhoneNumber   int64           `json:"phoneNumber"`
	MonthlyIncome int64           `json:"monthlyIncome"`
	ApprovedLimit int64           `json:"approvedLimit"`
	CurrentDebt   decimal.Decimal `json:"currentDebt"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func NewCustomer(firstName, lastName string, age int, phoneNumber, monthlyIncome int64) *Customer {
	now := time.Now()
	return &Customer{
		FirstName:     strings.TrimSpace(firstName),
		LastName:      strings.TrimSpace(lastName),
		Age:           age,
		PhoneNumber:   phoneNumber,
		MonthlyIncome: monthlyIncome,
		ApprovedLimit: ApprovedLimitFor(monthlyIncome),
		CurrentDebt:   decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ApprovedLimitFor returns 36x the monthly income rounded to the nearest
// 100,000. Exact halves go to the even multiple.
func ApprovedLimitFor(monthlyIncome int64) int64 {
	raw := approvedLimitMultiplier * monthlyIncome
	q, r := raw/approvedLimitStep, raw%approvedLimitStep
	if r < 0 {
		q, r = q-1, r+approvedLimitStep
	}
	switch {
	case 2*r > approvedLimitStep:
		q++
	case 2*r == approvedLimitStep && q%2 != 0:
		q++
	}
	return q * approvedLimitStep
}

// OverLimit reports whether the outstanding debt exceeds the approved limit.
func (c *Customer) OverLimit() bool {
	return c.CurrentDebt.GreaterThan(decimal.NewFromInt(c.ApprovedLimit))
}
