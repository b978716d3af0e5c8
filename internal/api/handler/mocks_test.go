package handler_test

import (
	"context"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/lending"

	"github.com/stretchr/testify/mock"
)

type MockCustomerService struct {
	mock.Mock
}

func (_m *MockCustomerService) Register(ctx context.Context, input customer.RegisterInput) (*customer.Customer, bool, error) {
	ret := _m.Called(ctx, input)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

func (_m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

type MockLendingService struct {
	mock.Mock
}

func (_m *MockLendingService) CheckEligibility(ctx context.Context, req lending.LoanRequest) (*lending.EligibilityResult, error) {
	ret := _m.Called(ctx, req)

	var r0 *lending.EligibilityResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*lending.EligibilityResult)
	}
	return r0, ret.Error(1)
}

func (_m *MockLendingService) CreateLoan(ctx context.Context, req lending.LoanRequest) (*lending.LoanDecision, error) {
	ret := _m.Called(ctx, req)

	var r0 *lending.LoanDecision
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*lending.LoanDecision)
	}
	return r0, ret.Error(1)
}

type MockLoanReporter struct {
	mock.Mock
}

func (_m *MockLoanReporter) ViewLoan(ctx context.Context, loanID int64) (*lending.LoanView, error) {
	ret := _m.Called(ctx, loanID)

	var r0 *lending.LoanView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*lending.LoanView)
	}
	return r0, ret.Error(1)
}

func (_m *MockLoanReporter) ViewCustomerLoans(ctx context.Context, customerID int64) ([]lending.CustomerLoanView, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []lending.CustomerLoanView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]lending.CustomerLoanView)
	}
	return r0, ret.Error(1)
}
