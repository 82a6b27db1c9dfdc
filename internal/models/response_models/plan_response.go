package response_models

import "github.com/google/uuid"

type PlanResponse struct {
	ID              uuid.UUID `json:"id"`
	PlanKey         string    `json:"plan_key"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	BillingRequests int       `json:"billing_requests"`
	DurationDays    int       `json:"duration_days"`
	Capabilities    []string  `json:"capabilities"`
	IsUnlimited     bool      `json:"is_unlimited"`
	IsActive        bool      `json:"is_active"`
}
