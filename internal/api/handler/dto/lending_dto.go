package dto

import (
	"credit-engine/internal/domain/lending"

	"github.com/shopspring/decimal"
)

// LoanRequest is the body of both /check-eligibility and /create-loan.
// Amounts and rates accept JSON numbers or numeric strings.
type LoanRequest struct {
	CustomerID   *int64           `json:"customer_id" validate:"required,gt=0"`
	LoanAmount   *decimal.Decimal `json:"loan_amount" validate:"required" swaggertype:"number"`
	InterestRate *decimal.Decimal `json:"interest_rate" validate:"required" swaggertype:"number"`
	Tenure       *int             `json:"tenure" validate:"required,gt=0"`
}

// ToDomain must only be called after Validate succeeded.
func (r *LoanRequest) ToDomain() lending.LoanRequest {
	return lending.LoanRequest{
		CustomerID:   *r.CustomerID,
		LoanAmount:   *r.LoanAmount,
		InterestRate: *r.InterestRate,
		Tenure:       *r.Tenure,
	}
}

type EligibilityResponse struct {
	CustomerID            int64   `json:"customer_id"`
	Approval              bool    `json:"approval"`
	InterestRate          float64 `json:"interest_rate"`
	CorrectedInterestRate float64 `json:"corrected_interest_rate"`
	Tenure                int     `json:"tenure"`
	MonthlyInstallment    float64 `json:"monthly_installment"`
}

func NewEligibilityResponse(res *lending.EligibilityResult) EligibilityResponse {
	return EligibilityResponse{
		CustomerID:            res.CustomerID,
		Approval:              res.Approval,
		InterestRate:          res.InterestRate.InexactFloat64(),
		CorrectedInterestRate: res.CorrectedInterestRate.InexactFloat64(),
		Tenure:                res.Tenure,
		MonthlyInstallment:    res.MonthlyInstallment.InexactFloat64(),
	}
}

type LoanDecisionResponse struct {
	LoanID             *int64  `json:"loan_id"`
	CustomerID         int64   `json:"customer_id"`
	LoanApproved       bool    `json:"loan_approved"`
	Message            string  `json:"message"`
	MonthlyInstallment float64 `json:"monthly_installment"`
}

func NewLoanDecisionResponse(d *lending.LoanDecision) LoanDecisionResponse {
	return LoanDecisionResponse{
		LoanID:             d.LoanID,
		CustomerID:         d.CustomerID,
		LoanApproved:       d.LoanApproved,
		Message:            d.Message,
		MonthlyInstallment: d.MonthlyInstallment.InexactFloat64(),
	}
}

type LoanCustomerResponse struct {
	CustomerID  int64  `json:"customer_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber int64  `json:"phone_number"`
	Age         int    `json:"age"`
}

type LoanDetailResponse struct {
	LoanID             int64                `json:"loan_id"`
	Customer           LoanCustomerResponse `json:"customer"`
	LoanAmount         float64              `json:"loan_amount"`
	InterestRate       float64              `json:"interest_rate"`
	MonthlyInstallment float64              `json:"monthly_installment"`
	Tenure             int                  `json:"tenure"`
}

func NewLoanDetailResponse(v *lending.LoanView) LoanDetailResponse {
	return LoanDetailResponse{
		LoanID: v.LoanID,
		Customer: LoanCustomerResponse{
			CustomerID:  v.Customer.CustomerID,
			FirstName:   v.Customer.FirstName,
			LastName:    v.Customer.LastName,
			PhoneNumber: v.Customer.PhoneNumber,
			Age:         v.Customer.Age,
		},
		LoanAmount:         v.LoanAmount.InexactFloat64(),
		InterestRate:       v.InterestRate.InexactFloat64(),
		MonthlyInstallment: v.MonthlyInstallment.InexactFloat64(),
		Tenure:             v.Tenure,
	}
}

type CustomerLoanResponse struct {
	LoanID             int64   `json:"loan_id"`
	LoanAmount         float64 `json:"loan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	MonthlyInstallment float64 `json:"monthly_installment"`
	RepaymentsLeft     int     `json:"repayments_left"`
}

func NewCustomerLoanResponses(views []lending.CustomerLoanView) []CustomerLoanResponse {
	resp := make([]CustomerLoanResponse, len(views))
	for i, v := range views {
		resp[i] = CustomerLoanResponse{
			LoanID:             v.LoanID,
			LoanAmount:         v.LoanAmount.InexactFloat64(),
			InterestRate:       v.InterestRate.InexactFloat64(),
			MonthlyInstallment: v.MonthlyInstallment.InexactFloat64(),
			RepaymentsLeft:     v.RepaymentsLeft,
		}
	}
	return resp
}
