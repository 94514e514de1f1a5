package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Ledger errors
	ErrInsufficientFunds  = &Error{Code: "INSUFFICIENT_FUNDS", Message: "not enough cash for purchase"}
	ErrInsufficientShares = &Error{Code: "INSUFFICIENT_SHARES", Message: "not enough shares to sell"}
	ErrTickerNotHeld      = &Error{Code: "TICKER_NOT_HELD", Message: "ticker not found in portfolio"}
	ErrInvalidQuantity    = &Error{Code: "INVALID_QUANTITY", Message: "share quantity must be positive"}
	ErrInvalidPrice       = &Error{Code: "INVALID_PRICE", Message: "unit price must be positive"}

	// Alert errors
	ErrIndexOutOfRange = &Error{Code: "INDEX_OUT_OF_RANGE", Message: "alert index out of range"}

	// Strategy errors
	ErrInsufficientData = &Error{Code: "INSUFFICIENT_DATA", Message: "insufficient data for analysis"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "invalid configuration value"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Market data errors. DATA_UNAVAILABLE is the provider-level failure;
	// PRICE_UNAVAILABLE is the per-item, non-fatal form batch operations report.
	ErrDataUnavailable  = &Error{Code: "DATA_UNAVAILABLE", Message: "price data unavailable"}
	ErrPriceUnavailable = &Error{Code: "PRICE_UNAVAILABLE", Message: "could not fetch latest price"}
)
