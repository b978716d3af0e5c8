package lending

import (
	"credit-engine/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const (
	MessageApproved         = "Loan approved successfully"
	MessageIncomeCapBreach  = "Loan rejected: EMI exceeds 50% of monthly income"
	MessageScoreTooLow      = "Loan rejected: credit score too low"
	MessageCustomerNotFound = "Customer not found"
	serverErrorPrefix       = "Server error: "

	OutcomeApproved         = "approved"
	OutcomeRejectedCap      = "rejected_income_cap"
	OutcomeRejectedScore    = "rejected_score"
	OutcomeCustomerNotFound = "customer_not_found"
	OutcomeError            = "error"
)

// Storage limits of the loans table: NUMERIC(16,2) amounts and NUMERIC(6,2) rates.
const currencyPlaces = 2

var (
	maxLoanAmount   = decimal.RequireFromString("99999999999999.99")
	maxInterestRate = decimal.RequireFromString("9999.99")
)

// LoanRequest is shared by eligibility checks and origination.
type LoanRequest struct {
	CustomerID   int64
	LoanAmount   decimal.Decimal
	InterestRate decimal.Decimal
	Tenure       int
}

func (r LoanRequest) Validate() error {
	var errs apperrors.ValidationErrors
	if r.CustomerID <= 0 {
		errs = append(errs, &apperrors.ValidationError{Field: "customer_id", Message: "must be a positive integer"})
	}
	switch {
	case !r.LoanAmount.IsPositive():
		errs = append(errs, &apperrors.ValidationError{Field: "loan_amount", Message: "must be greater than 0"})
	case r.LoanAmount.GreaterThan(maxLoanAmount):
		errs = append(errs, &apperrors.ValidationError{Field: "loan_amount", Message: "must not exceed " + maxLoanAmount.String()})
	case !hasAtMostPlaces(r.LoanAmount, currencyPlaces):
		errs = append(errs, &apperrors.ValidationError{Field: "loan_amount", Message: "must have at most 2 decimal places"})
	}
	switch {
	case r.InterestRate.IsNegative():
		errs = append(errs, &apperrors.ValidationError{Field: "interest_rate", Message: "must not be negative"})
	case r.InterestRate.GreaterThan(maxInterestRate):
		errs = append(errs, &apperrors.ValidationError{Field: "interest_rate", Message: "must not exceed " + maxInterestRate.String()})
	case !hasAtMostPlaces(r.InterestRate, currencyPlaces):
		errs = append(errs, &apperrors.ValidationError{Field: "interest_rate", Message: "must have at most 2 decimal places"})
	}
	if r.Tenure <= 0 {
		errs = append(errs, &apperrors.ValidationError{Field: "tenure", Message: "must be greater than 0"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// hasAtMostPlaces reports whether d is stored without rounding at places.
func hasAtMostPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}

type EligibilityResult struct {
	CustomerID            int64
	Approval              bool
	InterestRate          decimal.Decimal
	CorrectedInterestRate decimal.Decimal
	Tenure                int
	MonthlyInstallment    decimal.Decimal
}

// LoanDecision is the outcome of an origination attempt. LoanID is set only
// when a loan was created.
type LoanDecision struct {
	LoanID             *int64
	CustomerID         int64
	LoanApproved       bool
	Message            string
	MonthlyInstallment decimal.Decimal
}

// LoanView is a single loan with its installment recomputed from the stored
// principal, rate and tenure.
type LoanView struct {
	LoanID             int64
	Customer           CustomerSummary
	LoanAmount         decimal.Decimal
	InterestRate       decimal.Decimal
	MonthlyInstallment decimal.Decimal
	Tenure             int
}

type CustomerSummary struct {
	CustomerID  int64
	FirstName   string
	LastName    string
	PhoneNumber int64
	Age         int
}

type CustomerLoanView struct {
	LoanID             int64
	LoanAmount         decimal.Decimal
	InterestRate       decimal.Decimal
	MonthlyInstallment decimal.Decimal
	RepaymentsLeft     int
}
