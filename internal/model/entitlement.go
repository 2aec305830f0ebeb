package model

import "time"

type EntitlementStatus string

const (
	EntitlementStatusActive  EntitlementStatus = "active"
	EntitlementStatusExpired EntitlementStatus = "expired"
	EntitlementStatusPending EntitlementStatus = "pending"
)

// Entitlement is the single subscription record kept per account. A new
// purchase overwrites it; there is no purchase history.
type Entitlement struct {
	AccountID        string            `db:"account_id" json:"account_id"`
	Email            string            `db:"email" json:"email"`
	PlanID           string            `db:"plan_id" json:"plan_id"`
	PlanName         string            `db:"plan_name" json:"plan_name"`
	AmountPaid       int64             `db:"amount_paid" json:"amount_paid"`
	Currency         string            `db:"currency" json:"currency"`
	PhoneNumber      string            `db:"phone_number" json:"phone_number"`
	PaymentReference string            `db:"payment_reference" json:"payment_reference"`
	Status           EntitlementStatus `db:"status" json:"status"`
	IsActive         bool              `db:"is_active" json:"is_active"`
	StartsAt         time.Time         `db:"starts_at" json:"starts_at"`
	ExpiresAt        time.Time         `db:"expires_at" json:"expires_at"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updated_at"`
}

// Evaluation is the read-time access decision derived from an Entitlement.
type Evaluation struct {
	IsActive      bool
	DaysRemaining int
	Entitlement   *Entitlement
}
