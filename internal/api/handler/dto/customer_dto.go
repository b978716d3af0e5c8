package dto

import (
	"credit-engine/internal/domain/customer"
)

type RegisterCustomerRequest struct {
	FirstName     string `json:"first_name" validate:"required,max=100"`
	LastName      string `json:"last_name" validate:"required,max=100"`
	Age           *int   `json:"age" validate:"required,gt=0"`
	MonthlyIncome *int64 `json:"monthly_income" validate:"required,gte=0"`
	PhoneNumber   *int64 `json:"phone_number" validate:"required,gt=0"`
}

// ToInput must only be called after Validate succeeded.
func (r *RegisterCustomerRequest) ToInput() customer.RegisterInput {
	return customer.RegisterInput{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Age:           *r.Age,
		MonthlyIncome: *r.MonthlyIncome,
		PhoneNumber:   *r.PhoneNumber,
	}
}

type CustomerResponse struct {
	CustomerID    int64  `json:"customer_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Age           int    `json:"age"`
	MonthlyIncome int64  `json:"monthly_income"`
	PhoneNumber   int64  `json:"phone_number"`
	ApprovedLimit int64  `json:"approved_limit"`
}

// ExistingCustomerResponse is returned when the phone number is already registered.
type ExistingCustomerResponse struct {
	Detail   string           `json:"detail"`
	Customer CustomerResponse `json:"customer"`
}

func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Age:           c.Age,
		MonthlyIncome: c.MonthlyIncome,
		PhoneNumber:   c.PhoneNumber,
		ApprovedLimit: c.ApprovedLimit,
	}
}
