package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

func analyticsPlan() *db_models.Plan {
	return &db_models.Plan{
		BaseModel:    db_models.BaseModel{ID: uuid.New()},
		PlanKey:      "12months",
		Name:         "12 Months Plan",
		Price:        decimal.NewFromInt(2799),
		DurationDays: 365,
		Capabilities: []string{
			string(db_models.CapUnlimitedBills),
			string(db_models.CapInsightsDashboard),
			string(db_models.CapSalesReports),
			string(db_models.CapInventoryReports),
			string(db_models.CapExcelExport),
		},
		IsActive: true,
	}
}

func analyticsBill(t *testing.T, userID uuid.UUID, createdAt int64, status, customer string, total float64, items ...db_models.BillItem) db_models.Bill {
	t.Helper()
	b := db_models.Bill{
		BaseModel:    db_models.BaseModel{ID: uuid.New(), CreatedAt: createdAt},
		UserID:       userID,
		CustomerName: customer,
		Total:        decimal.NewFromFloat(total),
		Status:       status,
	}
	require.NoError(t, b.SetItems(items))
	return b
}

func TestDashboardRequiresPlanCapability(t *testing.T) {
	t.Run("plan without dashboard", func(t *testing.T) {
		user := billingUser(unlimitedPlan(), 0)
		svc := NewDashboardService(newFakeUserRepo(user), &fakeDashboardRepo{})

		_, err := svc.Overview(context.Background(), user.ID)
		assert.ErrorIs(t, err, utils.ErrDashboardNotInPlan)

		_, err = svc.RevenueBreakdown(context.Background(), user.ID)
		assert.ErrorIs(t, err, utils.ErrDashboardNotInPlan)
	})

	t.Run("no plan at all", func(t *testing.T) {
		user := billingUser(unlimitedPlan(), 0)
		user.CurrentPlan = nil
		user.CurrentPlanID = nil
		svc := NewDashboardService(newFakeUserRepo(user), &fakeDashboardRepo{})

		_, err := svc.MonthlySales(context.Background(), user.ID)
		assert.ErrorIs(t, err, utils.ErrDashboardNotInPlan)
	})

	t.Run("expired plan keeps its dashboard", func(t *testing.T) {
		user := billingUser(analyticsPlan(), 0)
		user.PlanExpiryDate = utils.NowUnixSeconds() - 86400
		svc := NewDashboardService(newFakeUserRepo(user), &fakeDashboardRepo{})

		_, err := svc.Overview(context.Background(), user.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewDashboardService(newFakeUserRepo(), &fakeDashboardRepo{})

		_, err := svc.Overview(context.Background(), uuid.New())
		assert.ErrorIs(t, err, utils.ErrUserNotFound)
	})
}

func TestOverviewAggregates(t *testing.T) {
	user := billingUser(analyticsPlan(), 0)

	monthStart := utils.StartOfMonth(utils.BusinessNow()).Unix()
	weekStart := utils.StartOfDay(utils.BusinessNow()).AddDate(0, 0, -7).Unix()

	// Shared between the fake and the expectations so the test stays
	// consistent on days where the week and month windows coincide.
	sumFor := func(start int64) float64 {
		switch start {
		case 0:
			return 50000 // all time
		case monthStart:
			return 12000
		case weekStart:
			return 3000
		default:
			return 0
		}
	}

	repo := &fakeDashboardRepo{
		sumFn: func(start, end int64) float64 { return sumFor(start) },
		countFn: func(status string, start, end int64) int64 {
			if start == 0 {
				return 420
			}
			return 37
		},
		avg:   119.05,
		stock: repositories.StockSummaryRow{TotalProducts: 25, BelowThreshold: 4, OutOfStock: 2},
		bills: []db_models.Bill{
			analyticsBill(t, user.ID, utils.NowUnixSeconds(), db_models.BillStatusCompleted, "Asha", 118,
				db_models.BillItem{Name: "Notebook", Price: decimal.NewFromInt(50), Quantity: 2},
				db_models.BillItem{Name: "Pen", Price: decimal.NewFromInt(10), Quantity: 5},
			),
		},
	}
	svc := NewDashboardService(newFakeUserRepo(user), repo)

	overview, err := svc.Overview(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 50000.0, overview.TotalRevenue)
	assert.Equal(t, int64(420), overview.TotalBills)
	assert.Equal(t, sumFor(monthStart), overview.MonthRevenue)
	assert.Equal(t, int64(37), overview.MonthBills)
	assert.Equal(t, sumFor(weekStart), overview.WeekRevenue)
	assert.Equal(t, 119.05, overview.AvgBillValue)
	assert.Equal(t, int64(25), overview.TotalProducts)
	assert.Equal(t, int64(4), overview.LowStockCount)
	assert.Equal(t, int64(2), overview.OutOfStockCount)

	require.NotNil(t, overview.TopProduct)
	assert.Equal(t, "Pen", overview.TopProduct.Name)
	assert.Equal(t, 5, overview.TopProduct.QuantitySold)
}

func TestOverviewWithoutSalesHasNoTopProduct(t *testing.T) {
	user := billingUser(analyticsPlan(), 0)
	svc := NewDashboardService(newFakeUserRepo(user), &fakeDashboardRepo{})

	overview, err := svc.Overview(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, overview.TopProduct)
}

func TestMonthlySalesFormatsBuckets(t *testing.T) {
	user := billingUser(analyticsPlan(), 0)
	repo := &fakeDashboardRepo{
		monthly: []repositories.BucketSalesRow{
			{Bucket: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), Sales: 8000, Bills: 64},
			{Bucket: time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), Sales: 9500, Bills: 71},
		},
	}
	svc := NewDashboardService(newFakeUserRepo(user), repo)

	resp, err := svc.MonthlySales(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, resp.MonthlySales, 2)
	assert.Equal(t, "Jun 2026", resp.MonthlySales[0].Month)
	assert.Equal(t, 8000.0, resp.MonthlySales[0].Sales)
	assert.Equal(t, int64(71), resp.MonthlySales[1].Bills)
}

func TestDailySalesFormatsBuckets(t *testing.T) {
	user := billingUser(analyticsPlan(), 0)
	repo := &fakeDashboardRepo{
		daily: []repositories.BucketSalesRow{
			{Bucket: time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC), Sales: 450, Bills: 4},
		},
	}
	svc := NewDashboardService(newFakeUserRepo(user), repo)

	resp, err := svc.DailySales(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, resp.DailySales, 1)
	assert.Equal(t, "03 Aug", resp.DailySales[0].Date)
}

func TestProductInsights(t *testing.T) {
	user := billingUser(analyticsPlan(), 0)
	three := 3
	repo := &fakeDashboardRepo{
		lowStock: []db_models.Product{
			{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Stapler", Price: decimal.NewFromInt(95), StockQuantity: &three},
		},
		outStock: []db_models.Product{
			{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Marker", Price: decimal.NewFromInt(35)},
		},
		bills: []db_models.Bill{
			analyticsBill(t, user.ID, utils.NowUnixSeconds(), db_models.BillStatusCompleted, "Asha", 236,
				db_models.BillItem{Name: "Notebook", Price: decimal.NewFromInt(50), Quantity: 4},
				db_models.BillItem{Name: "Repair charge", Price: decimal.NewFromInt(36), Quantity: 1, IsCustom: true},
			),
		},
	}
	svc := NewDashboardService(newFakeUserRepo(user), repo)

	insights, err := svc.ProductInsights(context.Background(), user.ID)
	require.NoError(t, err)

	require.Len(t, insights.LowStockProducts, 1)
	assert.Equal(t, "Stapler", insights.LowStockProducts[0].Name)
	assert.Equal(t, 3, insights.LowStockProducts[0].StockQuantity)
	assert.Equal(t, 95.0, insights.LowStockProducts[0].Price)

	require.Len(t, insights.OutOfStockProducts, 1)
	assert.Equal(t, "Marker", insights.OutOfStockProducts[0].Name)

	// Custom items stay out of the catalog ranking.
	require.Len(t, insights.TopSellingProducts, 1)
	assert.Equal(t, "Notebook", insights.TopSellingProducts[0].Name)
	assert.Equal(t, 4, insights.TopSellingProducts[0].QuantitySold)
	assert.Equal(t, 200.0, insights.TopSellingProducts[0].Revenue)
}

func TestRevenueBreakdown(t *testing.T) {
	user := billingUser(analyticsPlan(), 0)

	today := utils.StartOfDay(utils.BusinessNow())
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)
	weekStart := today.AddDate(0, 0, -7)
	monthStart := utils.StartOfMonth(today)
	lastMonthStart := utils.StartOfMonth(monthStart.AddDate(0, 0, -1))

	sumFor := func(start, end int64) float64 {
		switch {
		case start == today.Unix() && end == tomorrow.Unix():
			return 400
		case start == yesterday.Unix() && end == today.Unix():
			return 350
		case start == weekStart.Unix() && end == 0:
			return 2100
		case start == monthStart.Unix() && end == 0:
			return 1500
		case start == lastMonthStart.Unix() && end == monthStart.Unix():
			return 1000
		default:
			return 0
		}
	}
	svc := NewDashboardService(newFakeUserRepo(user), &fakeDashboardRepo{sumFn: sumFor})

	breakdown, err := svc.RevenueBreakdown(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 400.0, breakdown.Today)
	assert.Equal(t, 350.0, breakdown.Yesterday)
	assert.Equal(t, 2100.0, breakdown.ThisWeek)

	thisMonth := sumFor(monthStart.Unix(), 0)
	lastMonth := sumFor(lastMonthStart.Unix(), monthStart.Unix())
	assert.Equal(t, thisMonth, breakdown.ThisMonth)
	assert.Equal(t, lastMonth, breakdown.LastMonth)
	assert.InDelta(t, (thisMonth-lastMonth)/lastMonth*100, breakdown.MonthGrowthPercentage, 1e-9)
}

func TestRevenueBreakdownGrowthWithEmptyLastMonth(t *testing.T) {
	user := billingUser(analyticsPlan(), 0)

	monthStart := utils.StartOfMonth(utils.StartOfDay(utils.BusinessNow()))
	repo := &fakeDashboardRepo{
		sumFn: func(start, end int64) float64 {
			if start == monthStart.Unix() {
				return 900
			}
			return 0
		},
	}
	svc := NewDashboardService(newFakeUserRepo(user), repo)

	breakdown, err := svc.RevenueBreakdown(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 900.0, breakdown.ThisMonth)
	assert.Zero(t, breakdown.MonthGrowthPercentage)
}

func TestSalesTallyRanking(t *testing.T) {
	tally := newSalesTally()
	tally.add("Pen", 2, 20)
	tally.add("Notebook", 5, 250)
	tally.add("Pen", 3, 30)
	tally.add("Eraser", 5, 25)

	byQty := tally.rankedByQuantity(0)
	require.Len(t, byQty, 3)
	// Notebook and Eraser tie on quantity; first seen wins.
	assert.Equal(t, "Notebook", byQty[0].Name)
	assert.Equal(t, "Eraser", byQty[1].Name)
	assert.Equal(t, "Pen", byQty[2].Name)
	assert.Equal(t, 5, byQty[0].Quantity)

	byRevenue := tally.rankedByRevenue(2)
	require.Len(t, byRevenue, 2)
	assert.Equal(t, "Notebook", byRevenue[0].Name)
	assert.Equal(t, "Pen", byRevenue[1].Name)
	assert.Equal(t, 50.0, byRevenue[1].Revenue)
}
