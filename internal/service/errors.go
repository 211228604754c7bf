package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeDuplicateUsername   = "duplicate_username"
	ErrCodeDuplicateNationalID = "duplicate_national_id"
	ErrCodeNoSuchUser          = "no_such_user"
	ErrCodeAccountLocked       = "account_locked"
	ErrCodeBadPassword         = "bad_password"
	ErrCodeWrongOldPassword    = "wrong_old_password"
	ErrCodeInvalidAmount       = "invalid_amount"
	ErrCodeBelowMinimumBalance = "below_minimum_balance"
	ErrCodeAccountNotFound     = "account_not_found"
	ErrCodeInsufficientBalance = "insufficient_balance"
	ErrCodeActiveLoanExists    = "active_loan_exists"
	ErrCodeLoanNotFound        = "loan_not_found"
	ErrCodePendingRequest      = "pending_request_exists"
	ErrCodeEmptyField          = "empty_field"
	ErrCodeInvalidVerdict      = "invalid_verdict"
	ErrCodePersistence         = "persistence_failure"
	ErrCodeInternalError       = "internal_error"
)
