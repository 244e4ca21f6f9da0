package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the authenticated user may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConfiguration indicates an invalid tax setup that must be fixed before
// any computation may run: repartition factors not summing to 100, a
// tax-included percentage of 100, a document missing its conversion rate.
// Configuration errors block saving the offending setup.
var ErrConfiguration = errors.New("tax configuration error")

// ErrStaleTaxDetails indicates that the tax details stored for a document no
// longer match a fresh computation. The caller decides whether to keep the
// stored values or accept the recomputed ones.
var ErrStaleTaxDetails = errors.New("stored tax details are stale")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
