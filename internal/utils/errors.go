package utils

import (
	"errors"
	"net/http"
)

// Domain-level sentinel errors used by the service layer to provide
// fine-grained failure reasons. Controllers match with errors.Is.
var (
	ErrLeaseNotFound        = errors.New("lease_not_found")
	ErrTenantNotFound       = errors.New("tenant_not_found")
	ErrUnitNotFound         = errors.New("unit_not_found")
	ErrPaymentNotFound      = errors.New("payment_not_found")
	ErrTenantAlreadyLeased  = errors.New("tenant_already_leased")
	ErrUnitAlreadyLeased    = errors.New("unit_already_leased")
	ErrDuplicateUnitNumber  = errors.New("duplicate_unit_number")
	ErrDuplicateTenantEmail = errors.New("duplicate_tenant_email")
	ErrTenantHasRecords     = errors.New("tenant_has_records")
	ErrWrongLeaseStatus     = errors.New("wrong_lease_status")
	ErrNotLeaseTenant       = errors.New("not_lease_tenant")
	ErrNotPropertyOwner     = errors.New("not_property_owner")
	ErrAmountMismatch       = errors.New("amount_mismatch")
	ErrIntentNotSucceeded   = errors.New("intent_not_succeeded")
	ErrNoRowsUpdated        = errors.New("no_rows_updated")

	// For external service failures (Stripe, SendGrid, Twilio).
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError carries a status code and a public error code from the
// service layer up to the controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewValidationError reports a rejected guard check (400).
func NewValidationError(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: msg, Err: err}
}

// NewAuthorizationError reports an actor/scope mismatch (403).
func NewAuthorizationError(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Code: ErrCodeForbidden, Message: msg, Err: err}
}

// NewNotFoundError reports an id that does not resolve under the
// caller's scope (404).
func NewNotFoundError(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: msg, Err: err}
}

// NewConflictError reports a uniqueness violation (409).
func NewConflictError(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: ErrCodeConflict, Message: msg, Err: err}
}

// NewGatewayError reports a payment-gateway failure. Retryable; no
// partial state is committed when this is returned.
func NewGatewayError(msg string, err error) *AppError {
	return &AppError{StatusCode: http.StatusBadGateway, Code: ErrCodePaymentGatewayFailure, Message: msg, Err: err}
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
