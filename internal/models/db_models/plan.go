package db_models

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Capability is a feature switch carried on a plan. Plans grant features
// by listing capability keys instead of one boolean column per feature,
// so adding a tier never needs a migration.
type Capability string

const (
	CapUnlimitedBills      Capability = "unlimited_bills"
	CapCloudStorage        Capability = "cloud_storage"
	CapGSTCompliance       Capability = "gst_compliance"
	CapMultiDevice         Capability = "multi_device"
	CapCloudBackup         Capability = "cloud_backup"
	CapPrioritySupport     Capability = "priority_support"
	CapInventoryManagement Capability = "inventory_management"
	CapInsightsDashboard   Capability = "insights_dashboard"
	CapSalesReports        Capability = "sales_reports"
	CapInventoryReports    Capability = "inventory_reports"
	CapExcelExport         Capability = "excel_export"

	// CapMeteredQuota marks plans whose bill allowance is counted down
	// per bill rather than unlimited for the plan period.
	CapMeteredQuota Capability = "metered_quota"
)

type Plan struct {
	BaseModel
	PlanKey         string          `gorm:"column:plan_key;uniqueIndex;not null"`
	Name            string          `gorm:"not null"`
	Description     string          `gorm:"type:text"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2)"`
	BillingRequests int             `gorm:"default:0"`
	DurationDays    int             `gorm:"not null"`
	Capabilities    pq.StringArray  `gorm:"type:text[]"`
	IsActive        bool            `gorm:"default:true"`
	IsCustom        bool            `gorm:"default:false"`
}

func (p *Plan) HasCapability(c Capability) bool {
	for _, have := range p.Capabilities {
		if have == string(c) {
			return true
		}
	}
	return false
}

// IsUnlimited reports whether bill creation on this plan is uncapped.
// A zero allowance means unlimited, matching how tiers are seeded.
func (p *Plan) IsUnlimited() bool {
	return p.BillingRequests == 0 || p.HasCapability(CapUnlimitedBills)
}

func (p *Plan) IsMetered() bool {
	return p.HasCapability(CapMeteredQuota)
}
