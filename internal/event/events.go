package event

import (
	"time"

	"github.com/google/uuid"
)

type CustomerRegisteredEvent struct {
	EventID       string    `json:"eventId"`
	Timestamp     time.Time `json:"timestamp"`
	CustomerID    int64     `json:"customerId"`
	PhoneNumber   int64     `json:"phoneNumber"`
	MonthlyIncome int64     `json:"monthlyIncome"`
	ApprovedLimit int64     `json:"approvedLimit"`
}

type LoanApprovedEvent struct {
	EventID            string    `json:"eventId"`
	Timestamp          time.Time `json:"timestamp"`
	LoanID             int64     `json:"loanId"`
	CustomerID         int64     `json:"customerId"`
	LoanAmount         string    `json:"loanAmount"`
	InterestRate       string    `json:"interestRate"`
	Tenure             int       `json:"tenure"`
	MonthlyInstallment string    `json:"monthlyInstallment"`
}

func NewCustomerRegisteredEvent(customerID, phoneNumber, monthlyIncome, approvedLimit int64) CustomerRegisteredEvent {
	return CustomerRegisteredEvent{
		EventID:       uuid.NewString(),
		Timestamp:     time.Now().UTC(),
		CustomerID:    customerID,
		PhoneNumber:   phoneNumber,
		MonthlyIncome: monthlyIncome,
		ApprovedLimit: approvedLimit,
	}
}

func NewLoanApprovedEvent(loanID, customerID int64, amount, rate string, tenure int, installment string) LoanApprovedEvent {
	return LoanApprovedEvent{
		EventID:            uuid.NewString(),
		Timestamp:          time.Now().UTC(),
		LoanID:             loanID,
		CustomerID:         customerID,
		LoanAmount:         amount,
		InterestRate:       rate,
		Tenure:             tenure,
		MonthlyInstallment: installment,
	}
}
