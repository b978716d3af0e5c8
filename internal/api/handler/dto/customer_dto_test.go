package dto

import (
	"credit-engine/internal/domain/customer"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCustomerRequestToInput(t *testing.T) {
	var req RegisterCustomerRequest
	body := `{"first_name":"Asha","last_name":"Rao","age":31,"monthly_income":62500,"phone_number":9876543210}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, Validate(&req))

	assert.Equal(t, customer.RegisterInput{
		FirstName:     "Asha",
		LastName:      "Rao",
		Age:           31,
		MonthlyIncome: 62500,
		PhoneNumber:   9876543210,
	}, req.ToInput())
}

func TestRegisterCustomerRequestZeroIncomeIsPresent(t *testing.T) {
	var req RegisterCustomerRequest
	body := `{"first_name":"Asha","last_name":"Rao","age":31,"monthly_income":0,"phone_number":9876543210}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.NoError(t, Validate(&req))
}

func TestNewCustomerResponse(t *testing.T) {
	c := &customer.Customer{
		CustomerID:    42,
		FirstName:     "Asha",
		LastName:      "Rao",
		Age:           31,
		PhoneNumber:   9876543210,
		MonthlyIncome: 62500,
		ApprovedLimit: 2200000,
		CurrentDebt:   decimal.NewFromInt(150000),
	}

	body, err := json.Marshal(NewCustomerResponse(c))

	require.NoError(t, err)
	assert.JSONEq(t, `{"customer_id":42,"first_name":"Asha","last_name":"Rao","age":31,"monthly_income":62500,"phone_number":9876543210,"approved_limit":2200000}`, string(body))
}
