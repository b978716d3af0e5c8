package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrValidation      = errors.New("validation failed")
	ErrAlreadyExists   = errors.New("resource already exists")
	ErrConflict        = errors.New("resource conflict")
	ErrDatabase        = errors.New("database error")
	ErrInternalServer  = errors.New("internal server error")
)

// Machine-readable codes reported alongside error messages.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeValidation      = "VALIDATION_FAILED"
	CodeConflict        = "CONFLICT"
	CodeDatabase        = "DB_ERROR"
	CodeInternal        = "INTERNAL"
)

var sentinelCodes = []struct {
	err  error
	code string
}{
	{ErrValidation, CodeValidation},
	{ErrInvalidArgument, CodeInvalidArgument},
	{ErrNotFound, CodeNotFound},
	{ErrAlreadyExists, CodeConflict},
	{ErrConflict, CodeConflict},
	{ErrDatabase, CodeDatabase},
}

// ValidationError is a single rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors collects every field failure of one request.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Fields returns the failures keyed by field name.
func (e ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(e))
	for _, fe := range e {
		fields[fe.Field] = fe.Message
	}
	return fields
}

// CodedError attaches an explicit code and a client-safe message to a cause.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return "[" + e.Code + "] " + e.Message
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

func WithCode(code, message string, cause error) error {
	return &CodedError{Code: code, Message: message, Cause: cause}
}

// WrapDatabaseError hides a storage failure behind message while keeping
// both ErrDatabase and cause reachable through errors.Is.
func WrapDatabaseError(cause error, message string) error {
	return WithCode(CodeDatabase, message, fmt.Errorf("%w: %w", ErrDatabase, cause))
}

// CodeOf reports the code for err: an explicit CodedError wins, then the
// first matching sentinel. Unknown errors are CodeInternal.
func CodeOf(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) && coded.Code != "" {
		return coded.Code
	}
	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.err) {
			return sc.code
		}
	}
	return CodeInternal
}
