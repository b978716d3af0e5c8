package customer_test

import (
	"credit-engine/internal/domain/customer"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApprovedLimitFor(t *testing.T) {
	tests := []struct {
		name     string
		income   int64
		expected int64
	}{
		{"Zero income", 0, 0},
		{"Rounds down", 50000, 1800000},
		{"Rounds up", 75000, 2700000},
		{"Below half rounds down", 1000, 0},
		{"Above half rounds up", 2000, 100000},
		{"Half to even down", 62500, 2200000},
		{"Half to even up", 87500, 3200000},
		{"Exact multiple", 100000, 3600000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, customer.ApprovedLimitFor(tt.income))
		})
	}
}

func TestNewCustomer(t *testing.T) {
	c := customer.NewCustomer("  Asha ", "Rao ", 31, 9876543210, 60000)

	assert.Equal(t, "Asha", c.FirstName)
	assert.Equal(t, "Rao", c.LastName)
	assert.Equal(t, int64(2200000), c.ApprovedLimit)
	assert.True(t, c.CurrentDebt.IsZero())
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
}

func TestCustomerOverLimit(t *testing.T) {
	c := &customer.Customer{ApprovedLimit: 100000, CurrentDebt: decimal.NewFromInt(100000)}
	assert.False(t, c.OverLimit())

	c.CurrentDebt = decimal.RequireFromString("100000.01")
	assert.True(t, c.OverLimit())
}
