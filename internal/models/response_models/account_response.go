package response_models

import "github.com/google/uuid"

type TokenResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MobileNumber string    `json:"mobile_number"`

	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
	UpiID           string `json:"upi_id"`
	ReferredBy      string `json:"referred_by"`

	GstinNumber   string  `json:"gstin_number"`
	GstPercentage float64 `json:"gst_percentage"`

	PlanKey                  string        `json:"plan_key,omitempty"`
	CurrentPlan              *PlanResponse `json:"current_plan"`
	PlanExpiryDate           string        `json:"plan_expiry_date,omitempty"`
	BillingRequestsRemaining int           `json:"billing_requests_remaining"`
	HasActivePlan            bool          `json:"has_active_plan"`
	CanCreateBill            bool          `json:"can_create_bill"`

	IsAccountActivated bool  `json:"is_account_activated"`
	CreatedAt          int64 `json:"created_at"`
}

// AdminUserResponse is the admin listing row: profile basics plus the
// activation state the admin toggles.
type AdminUserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	MobileNumber       string    `json:"mobile_number"`
	BusinessName       string    `json:"business_name"`
	ReferredBy         string    `json:"referred_by"`
	PlanKey            string    `json:"plan_key,omitempty"`
	PlanExpiryDate     string    `json:"plan_expiry_date,omitempty"`
	IsAccountActivated bool      `json:"is_account_activated"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          int64     `json:"created_at"`
}
