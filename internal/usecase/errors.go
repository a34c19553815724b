package usecase

import (
	"errors"
	"fmt"

	"carwash-booking/pkg/database"
	"carwash-booking/pkg/utils"
)

// AppError is a domain failure with a stable machine code. Two AppErrors
// match under errors.Is when their codes are equal, so callers can compare
// against the sentinels below even when the message was customised.
type AppError struct {
	Code    string
	Message string
	Fields  map[string]string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.cause }

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

var (
	ErrValidation                = &AppError{Code: "VALIDATION_ERROR", Message: "validation failed"}
	ErrUnauthorized              = &AppError{Code: "UNAUTHORIZED", Message: "unauthorized"}
	ErrForbidden                 = &AppError{Code: "FORBIDDEN", Message: "forbidden"}
	ErrNotFound                  = &AppError{Code: "NOT_FOUND", Message: "not found"}
	ErrInvalidCar                = &AppError{Code: "INVALID_CAR", Message: "invalid car"}
	ErrEmptyCart                 = &AppError{Code: "EMPTY_CART", Message: "cart is empty"}
	ErrInactiveService           = &AppError{Code: "INACTIVE_SERVICE", Message: "service is not available"}
	ErrInvalidTransition         = &AppError{Code: "INVALID_TRANSITION", Message: "invalid status transition"}
	ErrCartConflict              = &AppError{Code: "CART_CONFLICT", Message: "cart changed, please refresh"}
	ErrReferenceGenerationFailed = &AppError{Code: "REFERENCE_GENERATION_FAILED", Message: "could not allocate a booking reference"}
	ErrAlreadyReviewed           = &AppError{Code: "ALREADY_REVIEWED", Message: "booking already reviewed"}
	ErrInsufficientFunds         = &AppError{Code: "INSUFFICIENT_FUNDS", Message: "insufficient wallet balance"}
	ErrStoreUnavailable          = &AppError{Code: "STORE_UNAVAILABLE", Message: "storage temporarily unavailable"}
	ErrInternal                  = &AppError{Code: "INTERNAL_ERROR", Message: "internal server error"}
)

// newError returns kind with a specific message.
func newError(kind *AppError, format string, args ...any) *AppError {
	return &AppError{Code: kind.Code, Message: fmt.Sprintf(format, args...)}
}

// validationError carries the per-field messages both as Fields and as a
// readable summary in Message.
func validationError(fields map[string]string) *AppError {
	message := ErrValidation.Message
	if len(fields) > 0 {
		message += ": " + utils.FormatValidationErrors(fields)
	}
	return &AppError{Code: ErrValidation.Code, Message: message, Fields: fields}
}

// storeError classifies a repository failure.
func storeError(err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	if database.IsUnavailable(err) {
		return &AppError{Code: ErrStoreUnavailable.Code, Message: ErrStoreUnavailable.Message, cause: err}
	}
	return &AppError{Code: ErrInternal.Code, Message: ErrInternal.Message, cause: err}
}
