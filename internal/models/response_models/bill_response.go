package response_models

import (
	"github.com/google/uuid"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
)

type BillResponse struct {
	ID            uuid.UUID           `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	Items         []db_models.BillItem `json:"items"`
	ItemsCount    int                 `json:"items_count"`
	Subtotal      float64             `json:"subtotal"`
	CgstAmount    float64             `json:"cgst_amount"`
	SgstAmount    float64             `json:"sgst_amount"`
	Total         float64             `json:"total"`
	Status        string              `json:"status"`
	IsPaid        bool                `json:"is_paid"`
	// RemainingRequests is present only on create for metered plans.
	RemainingRequests *int  `json:"remaining_requests,omitempty"`
	CreatedAt         int64 `json:"created_at"`
	UpdatedAt         int64 `json:"updated_at"`
}

// BillListItemResponse is the list row: amounts and a count instead of
// the full item payload.
type BillListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	ItemsCount    int       `json:"items_count"`
	Subtotal      float64   `json:"subtotal"`
	CgstAmount    float64   `json:"cgst_amount"`
	SgstAmount    float64   `json:"sgst_amount"`
	Total         float64   `json:"total"`
	Status        string    `json:"status"`
	IsPaid        bool      `json:"is_paid"`
	CreatedAt     int64     `json:"created_at"`
	UpdatedAt     int64     `json:"updated_at"`
}
