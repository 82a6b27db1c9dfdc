package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	MobileNumber string `gorm:"column:mobile_number"`

	BusinessName    string `gorm:"column:business_name"`
	BusinessAddress string `gorm:"column:business_address;type:text"`
	UpiID           string `gorm:"column:upi_id"`
	ReferredBy      string `gorm:"column:referred_by"`

	GstinNumber   string          `gorm:"column:gstin_number"`
	GstPercentage decimal.Decimal `gorm:"column:gst_percentage;type:numeric(5,2)"`

	CurrentPlanID *uuid.UUID `gorm:"column:current_plan_id;type:uuid"`
	CurrentPlan   *Plan      `gorm:"foreignKey:CurrentPlanID"`
	// PlanExpiryDate is unix seconds; 0 means no plan period has been set.
	PlanExpiryDate           int64 `gorm:"column:plan_expiry_date"`
	BillingRequestsRemaining int   `gorm:"column:billing_requests_remaining;default:0"`

	IsActive           bool `gorm:"column:is_active;default:true"`
	IsAccountActivated bool `gorm:"column:is_account_activated;default:false"`
	IsAdmin            bool `gorm:"column:is_admin;default:false"`
}

func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) HasActivePlan(now int64) bool {
	return u.PlanExpiryDate > 0 && u.PlanExpiryDate > now
}

// CanCreateBill gates bill creation: the account must be activated by an
// admin, the plan period must not have lapsed, and metered plans must
// still have allowance left.
func (u *User) CanCreateBill(now int64) bool {
	if !u.IsAccountActivated {
		return false
	}
	if !u.HasActivePlan(now) {
		return false
	}
	if u.CurrentPlan != nil && u.CurrentPlan.IsUnlimited() {
		return true
	}
	return u.BillingRequestsRemaining > 0
}

func (u *User) IsMeteredPlan() bool {
	return u.CurrentPlan != nil && u.CurrentPlan.IsMetered() && !u.CurrentPlan.IsUnlimited()
}

// ActivatePlan assigns a plan and starts its period. The account still
// needs admin activation before bills can be created.
func (u *User) ActivatePlan(plan *Plan, now int64) {
	u.CurrentPlanID = &plan.ID
	u.CurrentPlan = plan
	u.PlanExpiryDate = now + int64(plan.DurationDays)*86400
	u.BillingRequestsRemaining = plan.BillingRequests
}

// ActivateAccount marks the account usable and restarts the plan period
// from the activation moment, so the paid duration is not eaten by
// verification lag.
func (u *User) ActivateAccount(now int64) {
	u.IsAccountActivated = true
	if u.CurrentPlan != nil {
		u.PlanExpiryDate = now + int64(u.CurrentPlan.DurationDays)*86400
	}
}

func (u *User) DeactivateAccount() {
	u.IsAccountActivated = false
}

func (u *User) PlanKey() string {
	if u.CurrentPlan == nil {
		return ""
	}
	return u.CurrentPlan.PlanKey
}
