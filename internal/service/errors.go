package service

import "errors"

// Checkout failures are returned as-is to the caller, which shows the message
// inline on the payment form.
var (
	ErrUnauthenticated    = errors.New("please sign in to subscribe")
	ErrInvalidPlan        = errors.New("invalid plan selected")
	ErrInvalidPhoneNumber = errors.New("please enter a valid Uganda phone number")
	ErrStoreUnavailable   = errors.New("subscription store unavailable, please try again")
	ErrPaymentDeclined    = errors.New("payment was declined")
	ErrAccountNotFound    = errors.New("account not found")
	ErrExportDisabled     = errors.New("wallet export is not configured")
)
