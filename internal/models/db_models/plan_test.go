package db_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCapability(t *testing.T) {
	plan := testPlan(0, CapUnlimitedBills, CapSalesReports)

	assert.True(t, plan.HasCapability(CapUnlimitedBills))
	assert.True(t, plan.HasCapability(CapSalesReports))
	assert.False(t, plan.HasCapability(CapExcelExport))
}

func TestIsUnlimited(t *testing.T) {
	assert.True(t, testPlan(0).IsUnlimited(), "zero allowance is unlimited")
	assert.True(t, testPlan(50, CapUnlimitedBills).IsUnlimited(), "flag wins over allowance")
	assert.False(t, testPlan(50, CapMeteredQuota).IsUnlimited())
}

func TestIsMetered(t *testing.T) {
	assert.True(t, testPlan(50, CapMeteredQuota).IsMetered())
	assert.False(t, testPlan(50).IsMetered())
}
