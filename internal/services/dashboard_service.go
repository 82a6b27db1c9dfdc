package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/response_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

const topProductLimit = 10

type DashboardServiceInterface interface {
	Overview(ctx context.Context, userID uuid.UUID) (*response_models.DashboardOverview, error)
	MonthlySales(ctx context.Context, userID uuid.UUID) (*response_models.MonthlySalesResponse, error)
	DailySales(ctx context.Context, userID uuid.UUID) (*response_models.DailySalesResponse, error)
	ProductInsights(ctx context.Context, userID uuid.UUID) (*response_models.ProductInsights, error)
	RevenueBreakdown(ctx context.Context, userID uuid.UUID) (*response_models.RevenueBreakdown, error)
}

type DashboardService struct {
	userRepo repositories.UserRepository
	dashRepo repositories.DashboardRepository
}

func NewDashboardService(userRepo repositories.UserRepository, dashRepo repositories.DashboardRepository) DashboardServiceInterface {
	return &DashboardService{userRepo: userRepo, dashRepo: dashRepo}
}

// requirePlanCapability gates analytics endpoints on the caller's plan.
// Only the plan flags are consulted; an expired plan keeps its dashboard
// until the user switches to one without the capability.
func requirePlanCapability(ctx context.Context, userRepo repositories.UserRepository, userID uuid.UUID, capability db_models.Capability, denied error) (*db_models.User, error) {
	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	if user.CurrentPlan == nil || !user.CurrentPlan.HasCapability(capability) {
		return nil, denied
	}
	return user, nil
}

func (s *DashboardService) Overview(ctx context.Context, userID uuid.UUID) (*response_models.DashboardOverview, error) {
	if _, err := requirePlanCapability(ctx, s.userRepo, userID, db_models.CapInsightsDashboard, utils.ErrDashboardNotInPlan); err != nil {
		return nil, err
	}

	today := utils.StartOfDay(utils.BusinessNow())
	monthStart := utils.StartOfMonth(utils.BusinessNow()).Unix()
	weekStart := today.AddDate(0, 0, -7).Unix()
	thirtyDaysAgo := today.AddDate(0, 0, -30).Unix()

	totalRevenue, err := s.dashRepo.SumCompletedTotal(ctx, userID, 0, 0)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	totalBills, err := s.dashRepo.CountBills(ctx, userID, "", 0, 0)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	monthRevenue, err := s.dashRepo.SumCompletedTotal(ctx, userID, monthStart, 0)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	monthBills, err := s.dashRepo.CountBills(ctx, userID, "", monthStart, 0)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	weekRevenue, err := s.dashRepo.SumCompletedTotal(ctx, userID, weekStart, 0)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	avgBillValue, err := s.dashRepo.AvgCompletedTotal(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	stock, err := s.dashRepo.ProductStockSummary(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	recentBills, err := s.dashRepo.BillsInRange(ctx, userID, thirtyDaysAgo, 0, "")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	tally := newSalesTally()
	tallyBillItems(recentBills, tally, true)

	var top *response_models.TopProduct
	if ranked := tally.rankedByQuantity(1); len(ranked) > 0 {
		top = &response_models.TopProduct{
			Name:         ranked[0].Name,
			QuantitySold: ranked[0].Quantity,
		}
	}

	return &response_models.DashboardOverview{
		TotalRevenue:    totalRevenue,
		TotalBills:      totalBills,
		MonthRevenue:    monthRevenue,
		MonthBills:      monthBills,
		WeekRevenue:     weekRevenue,
		AvgBillValue:    avgBillValue,
		TotalProducts:   stock.TotalProducts,
		LowStockCount:   stock.BelowThreshold,
		OutOfStockCount: stock.OutOfStock,
		TopProduct:      top,
	}, nil
}

func (s *DashboardService) MonthlySales(ctx context.Context, userID uuid.UUID) (*response_models.MonthlySalesResponse, error) {
	if _, err := requirePlanCapability(ctx, s.userRepo, userID, db_models.CapInsightsDashboard, utils.ErrDashboardNotInPlan); err != nil {
		return nil, err
	}

	start := utils.NowUnixSeconds() - 365*24*3600
	rows, err := s.dashRepo.MonthlySalesSeries(ctx, userID, start)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	points := make([]response_models.MonthlySalesPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, response_models.MonthlySalesPoint{
			Month: row.Bucket.Format("Jan 2006"),
			Sales: row.Sales,
			Bills: row.Bills,
		})
	}
	return &response_models.MonthlySalesResponse{MonthlySales: points}, nil
}

func (s *DashboardService) DailySales(ctx context.Context, userID uuid.UUID) (*response_models.DailySalesResponse, error) {
	if _, err := requirePlanCapability(ctx, s.userRepo, userID, db_models.CapInsightsDashboard, utils.ErrDashboardNotInPlan); err != nil {
		return nil, err
	}

	start := utils.StartOfDay(utils.BusinessNow()).AddDate(0, 0, -30).Unix()
	rows, err := s.dashRepo.DailySalesSeries(ctx, userID, start)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	points := make([]response_models.DailySalesPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, response_models.DailySalesPoint{
			Date:  row.Bucket.Format("02 Jan"),
			Sales: row.Sales,
			Bills: row.Bills,
		})
	}
	return &response_models.DailySalesResponse{DailySales: points}, nil
}

func (s *DashboardService) ProductInsights(ctx context.Context, userID uuid.UUID) (*response_models.ProductInsights, error) {
	if _, err := requirePlanCapability(ctx, s.userRepo, userID, db_models.CapInsightsDashboard, utils.ErrDashboardNotInPlan); err != nil {
		return nil, err
	}

	lowStock, err := s.dashRepo.ListLowStockProducts(ctx, userID, topProductLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	outOfStock, err := s.dashRepo.ListOutOfStockProducts(ctx, userID, topProductLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	thirtyDaysAgo := utils.StartOfDay(utils.BusinessNow()).AddDate(0, 0, -30).Unix()
	recentBills, err := s.dashRepo.BillsInRange(ctx, userID, thirtyDaysAgo, 0, "")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	tally := newSalesTally()
	tallyBillItems(recentBills, tally, true)

	insights := &response_models.ProductInsights{
		LowStockProducts:   make([]response_models.LowStockProduct, 0, len(lowStock)),
		OutOfStockProducts: make([]response_models.OutOfStockProduct, 0, len(outOfStock)),
		TopSellingProducts: make([]response_models.TopSellingProduct, 0, topProductLimit),
	}
	for _, p := range lowStock {
		stockQty := 0
		if p.StockQuantity != nil {
			stockQty = *p.StockQuantity
		}
		insights.LowStockProducts = append(insights.LowStockProducts, response_models.LowStockProduct{
			ID:            p.ID,
			Name:          p.Name,
			StockQuantity: stockQty,
			Price:         p.Price.InexactFloat64(),
		})
	}
	for _, p := range outOfStock {
		insights.OutOfStockProducts = append(insights.OutOfStockProducts, response_models.OutOfStockProduct{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price.InexactFloat64(),
		})
	}
	for _, t := range tally.rankedByQuantity(topProductLimit) {
		insights.TopSellingProducts = append(insights.TopSellingProducts, response_models.TopSellingProduct{
			Name:         t.Name,
			QuantitySold: t.Quantity,
			Revenue:      t.Revenue,
		})
	}
	return insights, nil
}

func (s *DashboardService) RevenueBreakdown(ctx context.Context, userID uuid.UUID) (*response_models.RevenueBreakdown, error) {
	if _, err := requirePlanCapability(ctx, s.userRepo, userID, db_models.CapInsightsDashboard, utils.ErrDashboardNotInPlan); err != nil {
		return nil, err
	}

	today := utils.StartOfDay(utils.BusinessNow())
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)
	weekStart := today.AddDate(0, 0, -7)
	monthStart := utils.StartOfMonth(today)
	lastMonthStart := utils.StartOfMonth(monthStart.AddDate(0, 0, -1))

	todayRevenue, err := s.dashRepo.SumCompletedTotal(ctx, userID, today.Unix(), tomorrow.Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	yesterdayRevenue, err := s.dashRepo.SumCompletedTotal(ctx, userID, yesterday.Unix(), today.Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	weekRevenue, err := s.dashRepo.SumCompletedTotal(ctx, userID, weekStart.Unix(), 0)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	monthRevenue, err := s.dashRepo.SumCompletedTotal(ctx, userID, monthStart.Unix(), 0)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	lastMonthRevenue, err := s.dashRepo.SumCompletedTotal(ctx, userID, lastMonthStart.Unix(), monthStart.Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	growth := 0.0
	if lastMonthRevenue > 0 {
		growth = (monthRevenue - lastMonthRevenue) / lastMonthRevenue * 100
	}

	return &response_models.RevenueBreakdown{
		Today:                 todayRevenue,
		Yesterday:             yesterdayRevenue,
		ThisWeek:              weekRevenue,
		ThisMonth:             monthRevenue,
		LastMonth:             lastMonthRevenue,
		MonthGrowthPercentage: growth,
	}, nil
}

// ---------- Item tallying ----------

// Line items live as JSON inside bills, so product rankings are built
// in Go rather than SQL.

type productTotals struct {
	Name     string
	Quantity int
	Revenue  float64
}

// salesTally accumulates per-product quantity and revenue, keeping
// first-seen order so equal tallies rank deterministically.
type salesTally struct {
	order    []string
	quantity map[string]int
	revenue  map[string]float64
}

func newSalesTally() *salesTally {
	return &salesTally{
		quantity: make(map[string]int),
		revenue:  make(map[string]float64),
	}
}

func (t *salesTally) add(name string, quantity int, revenue float64) {
	if _, seen := t.quantity[name]; !seen {
		t.order = append(t.order, name)
	}
	t.quantity[name] += quantity
	t.revenue[name] += revenue
}

func (t *salesTally) ranked(limit int, less func(a, b productTotals) bool) []productTotals {
	totals := make([]productTotals, 0, len(t.order))
	for _, name := range t.order {
		totals = append(totals, productTotals{
			Name:     name,
			Quantity: t.quantity[name],
			Revenue:  t.revenue[name],
		})
	}
	sort.SliceStable(totals, func(i, j int) bool { return less(totals[i], totals[j]) })
	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

func (t *salesTally) rankedByQuantity(limit int) []productTotals {
	return t.ranked(limit, func(a, b productTotals) bool { return a.Quantity > b.Quantity })
}

func (t *salesTally) rankedByRevenue(limit int) []productTotals {
	return t.ranked(limit, func(a, b productTotals) bool { return a.Revenue > b.Revenue })
}

// tallyBillItems feeds every readable line item into the tally.
// skipCustom drops off-catalog items, which dashboards exclude.
func tallyBillItems(bills []db_models.Bill, tally *salesTally, skipCustom bool) {
	for i := range bills {
		items, err := bills[i].ItemList()
		if err != nil {
			log.Warn().Err(err).Str("bill_id", bills[i].ID.String()).Msg("skipping bill with unreadable items")
			continue
		}
		for _, item := range items {
			if item.Name == "" {
				continue
			}
			if skipCustom && item.IsCustom {
				continue
			}
			tally.add(item.Name, item.Quantity, item.LineTotal().InexactFloat64())
		}
	}
}
