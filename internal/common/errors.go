package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to the operator. Every failure in this API is an
// input-validation failure; there is no retry semantics behind any of them.
const (
	CodeDuplicateCategory = "DUPLICATE_CATEGORY"
	CodeUnknownCategory   = "UNKNOWN_CATEGORY"
	CodeInvalidRate       = "INVALID_RATE"
	CodeDuplicateRate     = "DUPLICATE_RATE"
	CodeEmptyCart         = "EMPTY_CART"
	CodeMissingPhone      = "MISSING_PHONE"
	CodeNotFound          = "NOT_FOUND"
	CodeBadRequest        = "BAD_REQUEST"
	CodeInternal          = "INTERNAL"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// ErrDuplicateCategory reports an attempt to create a category that already
// exists (or one with an empty name).
func ErrDuplicateCategory(name string) *AppError {
	return NewAppError(CodeDuplicateCategory, fmt.Sprintf("category %q already exists", name), http.StatusConflict, nil)
}

// ErrUnknownCategory reports an operation against a category that is not in
// the catalog.
func ErrUnknownCategory(name string) *AppError {
	return NewAppError(CodeUnknownCategory, fmt.Sprintf("category %q does not exist", name), http.StatusNotFound, nil)
}

// ErrInvalidRate reports a rate that is not a positive integer.
func ErrInvalidRate(rate int) *AppError {
	return NewAppError(CodeInvalidRate, fmt.Sprintf("rate must be a positive integer, got %d", rate), http.StatusBadRequest, nil)
}

// ErrEmptyCart reports a checkout attempt against an empty cart.
func ErrEmptyCart() *AppError {
	return NewAppError(CodeEmptyCart, "cart is empty", http.StatusBadRequest, nil)
}

// ErrMissingPhone reports a checkout attempt without a customer phone number.
func ErrMissingPhone() *AppError {
	return NewAppError(CodeMissingPhone, "customer phone number is required", http.StatusBadRequest, nil)
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}
