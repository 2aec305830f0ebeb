package dto

import "time"

// AccountCreateDTO is used for incoming registration requests
type AccountCreateDTO struct {
	Name  string `json:"name" validate:"max=200"`
	Email string `json:"email" validate:"omitempty,email"`
}

// AccountResponseDTO is returned in API responses
type AccountResponseDTO struct {
	AccountID             string     `json:"account_id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	SubscriptionStatus    string     `json:"subscription_status"`
	SubscriptionPlan      string     `json:"subscription_plan"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
