package dto

import "time"

// SubscriptionCheckoutRequest is the payment form submission
type SubscriptionCheckoutRequest struct {
	PlanID      string `json:"plan_id" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// EntitlementResponseDTO is the stored entitlement record
type EntitlementResponseDTO struct {
	AccountID        string    `json:"account_id"`
	PlanID           string    `json:"plan_id"`
	PlanName         string    `json:"plan_name"`
	AmountPaid       int64     `json:"amount_paid"`
	Currency         string    `json:"currency"`
	PhoneNumber      string    `json:"phone_number"`
	PaymentReference string    `json:"payment_reference"`
	Status           string    `json:"status"`
	IsActive         bool      `json:"is_active"`
	StartsAt         time.Time `json:"starts_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SubscriptionCheckoutResponse is returned after a successful checkout
type SubscriptionCheckoutResponse struct {
	Message     string                 `json:"message"`
	Entitlement EntitlementResponseDTO `json:"entitlement"`
}

// SubscriptionStatusResponse is the evaluated subscription of the caller
type SubscriptionStatusResponse struct {
	IsActive      bool                    `json:"is_active"`
	DaysRemaining int                     `json:"days_remaining"`
	RemainingText string                  `json:"remaining_text"`
	Entitlement   *EntitlementResponseDTO `json:"entitlement"`
}

// AccessResponse is the access gate decision for a piece of content
type AccessResponse struct {
	ContentID    string `json:"content_id"`
	Allowed      bool   `json:"allowed"`
	CheckoutPath string `json:"checkout_path,omitempty"`
}

// ErrorResponse carries a user-facing error message
type ErrorResponse struct {
	Error string `json:"error"`
}
