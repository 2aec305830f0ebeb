package model

// Plan is a purchasable offering. DurationDays is applied as a calendar-day
// offset from the purchase time.
type Plan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PriceAmount   int64    `json:"price_amount"`
	Currency      string   `json:"currency"`
	DurationDays  int      `json:"duration_days"`
	DurationLabel string   `json:"duration_label"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
}
