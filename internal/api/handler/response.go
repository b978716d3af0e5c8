package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// decodeAndValidate decodes the body into v and runs its struct-tag rules.
func decodeAndValidate(r *http.Request, v interface{}) error {
	if err := decodeJSON(r, v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}
	return dto.Validate(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	respondErrorMessage(w, err, "")
}

// respondErrorMessage behaves like respondError but replaces the generic
// not-found text with notFoundMessage when one is given.
func respondErrorMessage(w http.ResponseWriter, err error, notFoundMessage string) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var fields map[string]string
	var validationErrors apperrors.ValidationErrors
	var validationError *apperrors.ValidationError
	var coded *apperrors.CodedError

	switch {
	case errors.As(err, &validationErrors):
		status, message, fields = http.StatusBadRequest, "Request validation failed.", validationErrors.Fields()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
		if notFoundMessage != "" {
			message = notFoundMessage
		}
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrAlreadyExists):
		status, message = http.StatusConflict, err.Error()
	case errors.As(err, &coded):
		message = "Server error: " + coded.Message
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
		if err != nil {
			message = "Server error: " + err.Error()
		}
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    apperrors.CodeOf(err),
			Message: message,
			Field:   field,
			Fields:  fields,
		},
	}
	respondJSON(w, status, resp)
}

func getIDFromURL(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return 0, fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, param)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s format in URL path: %s", apperrors.ErrInvalidArgument, param, idStr)
	}
	return id, nil
}
