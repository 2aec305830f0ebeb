package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCatalogListPlans(t *testing.T) {
	plans := NewPlanCatalog("UGX").ListPlans()
	require.Len(t, plans, 3)

	ids := []string{plans[0].ID, plans[1].ID, plans[2].ID}
	assert.Equal(t, []string{"one-day", "two-days", "one-week"}, ids)

	for _, p := range plans {
		assert.Positive(t, p.PriceAmount)
		assert.Positive(t, p.DurationDays)
		assert.Equal(t, "UGX", p.Currency)
		assert.NotEmpty(t, p.Features)
	}
	assert.True(t, plans[1].Popular)
	assert.Equal(t, 7, plans[2].DurationDays)
	assert.Equal(t, int64(10000), plans[2].PriceAmount)
}

func TestPlanCatalogGetPlan(t *testing.T) {
	c := NewPlanCatalog("UGX")

	p, err := c.GetPlan("two-days")
	require.NoError(t, err)
	assert.Equal(t, "2 Days", p.Name)
	assert.Equal(t, int64(5000), p.PriceAmount)
	assert.Equal(t, 2, p.DurationDays)

	_, err = c.GetPlan("lifetime")
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestPlanCatalogReturnsCopies(t *testing.T) {
	c := NewPlanCatalog("UGX")
	p, err := c.GetPlan("one-day")
	require.NoError(t, err)
	p.Features[0] = "changed"
	p.PriceAmount = 1

	again, err := c.GetPlan("one-day")
	require.NoError(t, err)
	assert.Equal(t, "Unlimited access", again.Features[0])
	assert.Equal(t, int64(3000), again.PriceAmount)
}
