package model

import "time"

// Account is the profile kept next to the entitlement record. Its subscription
// fields are a denormalized summary and may lag behind the entitlement.
type Account struct {
	AccountID             string     `db:"account_id" json:"account_id"`
	Email                 string     `db:"email" json:"email"`
	Name                  string     `db:"name" json:"name"`
	SubscriptionStatus    string     `db:"subscription_status" json:"subscription_status"`
	SubscriptionPlan      string     `db:"subscription_plan" json:"subscription_plan"`
	SubscriptionExpiresAt *time.Time `db:"subscription_expires_at" json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}
