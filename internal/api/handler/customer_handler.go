package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/customer"
	"log/slog"
	"net/http"
)

const existingCustomerDetail = "Customer with this phone number already exists."

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// Register handles POST /register
// @Summary Register a customer
// @Description Registers a customer and derives the approved limit from the monthly income. A phone number that is already registered returns the stored customer.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.RegisterCustomerRequest true "Customer registration request"
// @Success 201 {object} dto.CustomerResponse "Customer registered"
// @Success 200 {object} dto.ExistingCustomerResponse "Phone number already registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /register [post]
// @Security BearerAuth
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received register customer request")

	var req dto.RegisterCustomerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid register request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	cust, created, err := h.service.Register(r.Context(), req.ToInput())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to register customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCustomerResponse(cust)
	if !created {
		h.logger.InfoContext(r.Context(), "Customer already registered", slog.Int64("customerID", cust.CustomerID))
		respondJSON(w, http.StatusOK, dto.ExistingCustomerResponse{
			Detail:   existingCustomerDetail,
			Customer: resp,
		})
		return
	}

	h.logger.InfoContext(r.Context(), "Customer registered successfully", slog.Int64("customerID", cust.CustomerID))
	respondJSON(w, http.StatusCreated, resp)
}
