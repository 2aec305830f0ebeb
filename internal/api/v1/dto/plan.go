package dto

// PlanResponseDTO is one entry of the plan catalog
type PlanResponseDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PriceAmount   int64    `json:"price_amount"`
	Currency      string   `json:"currency"`
	DurationDays  int      `json:"duration_days"`
	DurationLabel string   `json:"duration_label"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
}
