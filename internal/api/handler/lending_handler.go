package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/lending"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

const (
	loanNotFoundMessage  = "Loan not found"
	noLoansFoundMessage  = "No loans found for this customer."
	customerNotFoundText = "Customer with ID %d not found."
)

type LendingHandler struct {
	lending  lending.LendingService
	reporter lending.LoanReporter
	logger   *slog.Logger
}

func NewLendingHandler(s lending.LendingService, rep lending.LoanReporter, l *slog.Logger) *LendingHandler {
	if s == nil {
		panic("lending service cannot be nil")
	}
	if rep == nil {
		panic("loan reporter cannot be nil")
	}
	return &LendingHandler{
		lending:  s,
		reporter: rep,
		logger:   l.With("component", "LendingHandler"),
	}
}

// CheckEligibility handles POST /check-eligibility
// @Summary Check loan eligibility
// @Description Scores the customer, applies the income cap and the rate policy, and quotes the installment without creating a loan.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.LoanRequest true "Loan request"
// @Success 200 {object} dto.EligibilityResponse "Eligibility decision"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /check-eligibility [post]
// @Security BearerAuth
func (h *LendingHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid eligibility request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	res, err := h.lending.CheckEligibility(r.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.logger.WarnContext(r.Context(), "Eligibility requested for unknown customer", slog.Int64("customerID", *req.CustomerID))
		} else {
			h.logger.ErrorContext(r.Context(), "Service failed to check eligibility", slog.Any("error", err))
		}
		respondErrorMessage(w, err, fmt.Sprintf(customerNotFoundText, *req.CustomerID))
		return
	}

	respondJSON(w, http.StatusOK, dto.NewEligibilityResponse(res))
}

// CreateLoan handles POST /create-loan
// @Summary Originate a loan
// @Description Re-runs the eligibility rules and, when approved, books the loan at the policy rate. Rejections are returned inline with loan_approved=false.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.LoanRequest true "Loan request"
// @Success 200 {object} dto.LoanDecisionResponse "Origination decision"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.LoanDecisionResponse "Unexpected failure, reported inline"
// @Router /create-loan [post]
// @Security BearerAuth
func (h *LendingHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid create loan request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	decision, err := h.lending.CreateLoan(r.Context(), req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create loan", slog.Any("error", err))
		if decision == nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusInternalServerError, dto.NewLoanDecisionResponse(decision))
		return
	}

	h.logger.InfoContext(r.Context(), "Loan decision made",
		slog.Int64("customerID", decision.CustomerID),
		slog.Bool("approved", decision.LoanApproved))
	respondJSON(w, http.StatusOK, dto.NewLoanDecisionResponse(decision))
}

// ViewLoan handles GET /view-loan/{loanID}
// @Summary View a loan
// @Description Returns a loan with its owner and the recomputed monthly installment.
// @Tags Loans
// @Produce json
// @Param loanID path int true "Loan ID" Minimum(1)
// @Success 200 {object} dto.LoanDetailResponse "Loan details"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /view-loan/{loanID} [get]
// @Security BearerAuth
func (h *LendingHandler) ViewLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := getIDFromURL(r, "loanID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get loan ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	view, err := h.reporter.ViewLoan(r.Context(), loanID)
	if err != nil {
		h.log(r, err, "Failed to view loan", slog.Int64("loanID", loanID))
		respondErrorMessage(w, err, loanNotFoundMessage)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanDetailResponse(view))
}

// ViewCustomerLoans handles GET /view-loans/{customerID}
// @Summary List a customer's loans
// @Description Returns every loan of the customer with the recomputed installment and the repayments left.
// @Tags Loans
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {array} dto.CustomerLoanResponse "Customer loans"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "No loans found for this customer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /view-loans/{customerID} [get]
// @Security BearerAuth
func (h *LendingHandler) ViewCustomerLoans(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	views, err := h.reporter.ViewCustomerLoans(r.Context(), customerID)
	if err != nil {
		h.log(r, err, "Failed to view customer loans", slog.Int64("customerID", customerID))
		respondErrorMessage(w, err, noLoansFoundMessage)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerLoanResponses(views))
}

func (h *LendingHandler) log(r *http.Request, err error, msg string, attrs ...any) {
	level := slog.LevelWarn
	if !errors.Is(err, apperrors.ErrNotFound) {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, msg, append(attrs, slog.Any("error", err))...)
}
