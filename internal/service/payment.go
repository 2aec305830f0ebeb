package service

import (
	"context"

	"oneflex/internal/model"

	"github.com/google/uuid"
)

// PaymentProcessor charges a mobile-money number for a plan and returns the
// provider's transaction reference.
type PaymentProcessor interface {
	Charge(ctx context.Context, accountID, phoneNumber string, plan model.Plan) (string, error)
}

// SimulatedPayment approves every charge without contacting a gateway. A real
// deployment must swap it for a processor that waits for the provider's
// payment confirmation before the entitlement is written.
type SimulatedPayment struct{}

func (SimulatedPayment) Charge(ctx context.Context, accountID, phoneNumber string, plan model.Plan) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "sim_" + uuid.NewString(), nil
}
