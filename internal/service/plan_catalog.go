package service

import (
	"fmt"

	"oneflex/internal/model"
)

// PlanCatalog is the fixed, read-only set of purchasable plans.
type PlanCatalog struct {
	plans []model.Plan
}

// NewPlanCatalog returns the catalog priced in the given currency.
func NewPlanCatalog(currency string) *PlanCatalog {
	return &PlanCatalog{plans: []model.Plan{
		{
			ID:            "one-day",
			Name:          "1 Day",
			PriceAmount:   3000,
			Currency:      currency,
			DurationDays:  1,
			DurationLabel: "24 hours",
			Features:      []string{"Unlimited access", "HD quality", "Ad-free streaming", "Download content"},
		},
		{
			ID:            "two-days",
			Name:          "2 Days",
			PriceAmount:   5000,
			Currency:      currency,
			DurationDays:  2,
			DurationLabel: "48 hours",
			Features:      []string{"Unlimited access", "Full HD quality", "Ad-free streaming", "Download & offline watch"},
			Popular:       true,
		},
		{
			ID:            "one-week",
			Name:          "1 Week",
			PriceAmount:   10000,
			Currency:      currency,
			DurationDays:  7,
			DurationLabel: "7 days",
			Features:      []string{"Unlimited access", "Full HD + 4K", "Ad-free streaming", "Download & offline watch", "Early access to new content"},
		},
	}}
}

// ListPlans returns the plans in display order.
func (c *PlanCatalog) ListPlans() []model.Plan {
	out := make([]model.Plan, len(c.plans))
	for i, p := range c.plans {
		out[i] = copyPlan(p)
	}
	return out
}

// GetPlan returns the plan with the given id or ErrInvalidPlan.
func (c *PlanCatalog) GetPlan(id string) (model.Plan, error) {
	for _, p := range c.plans {
		if p.ID == id {
			return copyPlan(p), nil
		}
	}
	return model.Plan{}, fmt.Errorf("%w: %q", ErrInvalidPlan, id)
}

func copyPlan(p model.Plan) model.Plan {
	p.Features = append([]string(nil), p.Features...)
	return p
}
