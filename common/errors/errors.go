package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error independent of its message.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindInvalidQuantity     Kind = "invalid_quantity"
	KindInvalidStatus       Kind = "invalid_status"
	KindEmptyCart           Kind = "empty_cart"
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindAuth                Kind = "auth"
	KindForbidden           Kind = "forbidden"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindPaymentVerification Kind = "payment_verification"
	KindRateLimited         Kind = "rate_limited"
	KindUnavailable         Kind = "unavailable"
	KindInternal            Kind = "internal"
)

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the package-level sentinels
// work with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(kind Kind, code int, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Sentinels, one per kind.
var (
	ErrValidation          = New(KindValidation, http.StatusBadRequest, "Validation error", nil)
	ErrInvalidQuantity     = New(KindInvalidQuantity, http.StatusBadRequest, "Quantity must be >= 1", nil)
	ErrInvalidStatus       = New(KindInvalidStatus, http.StatusBadRequest, "Invalid order status", nil)
	ErrEmptyCart           = New(KindEmptyCart, http.StatusBadRequest, "Cart is empty", nil)
	ErrNotFound            = New(KindNotFound, http.StatusNotFound, "Not found", nil)
	ErrConflict            = New(KindConflict, http.StatusConflict, "Conflict", nil)
	ErrUnauthorized        = New(KindAuth, http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden           = New(KindForbidden, http.StatusForbidden, "Forbidden", nil)
	ErrInsufficientStock   = New(KindInsufficientStock, http.StatusConflict, "Insufficient stock", nil)
	ErrPaymentVerification = New(KindPaymentVerification, http.StatusBadRequest, "Payment verification failed", nil)
	ErrRateLimited         = New(KindRateLimited, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
	ErrUnavailable         = New(KindUnavailable, http.StatusServiceUnavailable, "Service unavailable", nil)
	ErrInternalServer      = New(KindInternal, http.StatusInternalServerError, "Internal server error", nil)
)

func Validation(message string) *Error {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

func NotFound(message string) *Error {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func Conflict(message string) *Error {
	return New(KindConflict, http.StatusConflict, message, nil)
}

func Unauthorized(message string) *Error {
	return New(KindAuth, http.StatusUnauthorized, message, nil)
}

func InsufficientStock(productName string) *Error {
	return New(KindInsufficientStock, http.StatusConflict, fmt.Sprintf("Insufficient stock for %s", productName), nil)
}

func InvalidStatus(status string) *Error {
	return New(KindInvalidStatus, http.StatusBadRequest, fmt.Sprintf("Invalid order status: %q", status), nil)
}

// Internal wraps an unexpected failure. The wrapped error is logged by the
// middleware and never rendered.
func Internal(err error) *Error {
	return New(KindInternal, http.StatusInternalServerError, "Internal server error", err)
}

// From converts any error into an *Error, treating unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
