package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeMissingField            = "MISSING_FIELD"
	ErrCodeNameTooShort            = "NAME_TOO_SHORT"
	ErrCodePhoneTooShort           = "PHONE_TOO_SHORT"
	ErrCodeInvalidEmail            = "INVALID_EMAIL"
	ErrCodeGeocodingFailed         = "GEOCODING_FAILED"
	ErrCodeChargeComputationFailed = "CHARGE_COMPUTATION_FAILED"
	ErrCodeOrderSubmissionFailed   = "ORDER_SUBMISSION_FAILED"
	ErrCodeOrderingDisabled        = "ORDERING_DISABLED"
	ErrCodeInvalidInput            = "INVALID_INPUT"
	ErrCodeInvalidTransition       = "INVALID_TRANSITION"
	ErrCodeEmptyCart               = "EMPTY_CART"
	ErrCodeDeliveryNotConfirmed    = "DELIVERY_NOT_CONFIRMED"
	ErrCodePaymentNotVerified      = "PAYMENT_NOT_VERIFIED"
	ErrCodePaymentAlreadyUsed      = "PAYMENT_ALREADY_USED"
	ErrCodeProductNotFound         = "PRODUCT_NOT_FOUND"
	ErrCodeProductUnavailable      = "PRODUCT_UNAVAILABLE"
	ErrCodeOrderNotFound           = "ORDER_NOT_FOUND"
	ErrCodeInvalidStatus           = "INVALID_STATUS"
	ErrCodeValidation              = "VALIDATION_FAILED"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// DomainError is a business rule violation with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Wrap attaches a cause to the domain error. The result matches both the
// domain error and the cause with errors.Is.
func (e *DomainError) Wrap(cause error) error {
	if cause == nil {
		return e
	}
	return &wrappedError{domain: e, cause: cause}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

type wrappedError struct {
	domain *DomainError
	cause  error
}

func (w *wrappedError) Error() string {
	return w.domain.Message + ": " + w.cause.Error()
}

func (w *wrappedError) Unwrap() []error {
	return []error{w.domain, w.cause}
}

// Common domain errors
var (
	ErrNameTooShort            = NewDomainError(ErrCodeNameTooShort, "Please enter your name (at least 2 characters)")
	ErrPhoneTooShort           = NewDomainError(ErrCodePhoneTooShort, "Please enter a valid phone number (at least 7 characters)")
	ErrInvalidEmail            = NewDomainError(ErrCodeInvalidEmail, "Please enter a valid email address")
	ErrGeocodingFailed         = NewDomainError(ErrCodeGeocodingFailed, "Unable to find that location. Please check the address and try again")
	ErrChargeComputationFailed = NewDomainError(ErrCodeChargeComputationFailed, "Failed to calculate delivery charge. Please try again")
	ErrOrderSubmissionFailed   = NewDomainError(ErrCodeOrderSubmissionFailed, "Failed to place order. Please try again")
	ErrOrderingDisabled        = NewDomainError(ErrCodeOrderingDisabled, "Ordering is currently closed")
	ErrInvalidInput            = NewDomainError(ErrCodeInvalidInput, "Valid destination coordinates are required")
	ErrInvalidTransition       = NewDomainError(ErrCodeInvalidTransition, "Operation not allowed in the current delivery state")
	ErrEmptyCart               = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrDeliveryNotConfirmed    = NewDomainError(ErrCodeDeliveryNotConfirmed, "Please confirm your delivery location before checkout")
	ErrPaymentNotVerified      = NewDomainError(ErrCodePaymentNotVerified, "Payment could not be verified")
	ErrPaymentAlreadyUsed      = NewDomainError(ErrCodePaymentAlreadyUsed, "This payment has already been used for an order")
	ErrProductNotFound         = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrProductUnavailable      = NewDomainError(ErrCodeProductUnavailable, "Product is currently unavailable")
	ErrOrderNotFound           = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidStatus           = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrMissingReference        = NewDomainError(ErrCodeMissingField, "Payment reference is required")
)
