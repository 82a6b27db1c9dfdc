package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/response_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/pkg/metrics"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

const (
	reportDateLayout  = "2006-01-02"
	reportDefaultDays = 30
	topRankLimit      = 10
)

type ReportServiceInterface interface {
	SalesReport(ctx context.Context, userID uuid.UUID, startParam, endParam string) (*response_models.SalesReport, error)
	InventoryReport(ctx context.Context, userID uuid.UUID) (*response_models.InventoryReport, error)
	// ExportSalesReport renders the sales report as an xlsx workbook and
	// returns the file bytes plus a download filename.
	ExportSalesReport(ctx context.Context, userID uuid.UUID, startParam, endParam string) ([]byte, string, error)
}

type ReportService struct {
	userRepo    repositories.UserRepository
	dashRepo    repositories.DashboardRepository
	productRepo repositories.ProductRepository
	metrics     *metrics.Metrics
}

func NewReportService(
	userRepo repositories.UserRepository,
	dashRepo repositories.DashboardRepository,
	productRepo repositories.ProductRepository,
	m *metrics.Metrics,
) ReportServiceInterface {
	return &ReportService{
		userRepo:    userRepo,
		dashRepo:    dashRepo,
		productRepo: productRepo,
		metrics:     m,
	}
}

func (s *ReportService) SalesReport(ctx context.Context, userID uuid.UUID, startParam, endParam string) (*response_models.SalesReport, error) {
	if _, err := requirePlanCapability(ctx, s.userRepo, userID, db_models.CapSalesReports, utils.ErrSalesReportsNotInPlan); err != nil {
		return nil, err
	}
	return s.buildSalesReport(ctx, userID, startParam, endParam)
}

func (s *ReportService) buildSalesReport(ctx context.Context, userID uuid.UUID, startParam, endParam string) (*response_models.SalesReport, error) {
	start, end, err := resolveReportPeriod(startParam, endParam)
	if err != nil {
		return nil, err
	}

	// Both period dates are inclusive whole days.
	bills, err := s.dashRepo.BillsInRange(ctx, userID, start.Unix(), end.AddDate(0, 0, 1).Unix(), "")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	var (
		completedBills int64
		pendingBills   int64
		totalRevenue   decimal.Decimal
		totalSubtotal  decimal.Decimal
		totalCgst      decimal.Decimal
		totalSgst      decimal.Decimal
	)
	daily := make(map[string]*response_models.DailyBreakdownPoint)
	customers := newSalesTally()

	for i := range bills {
		b := &bills[i]
		switch b.Status {
		case db_models.BillStatusCompleted:
			completedBills++
		case db_models.BillStatusPending:
			pendingBills++
		}
		if b.Status != db_models.BillStatusCompleted {
			continue
		}

		totalRevenue = totalRevenue.Add(b.Total)
		totalSubtotal = totalSubtotal.Add(b.Subtotal)
		totalCgst = totalCgst.Add(b.CgstAmount)
		totalSgst = totalSgst.Add(b.SgstAmount)

		day := utils.FromUnixSeconds(b.CreatedAt).Format(reportDateLayout)
		point, ok := daily[day]
		if !ok {
			point = &response_models.DailyBreakdownPoint{Date: day}
			daily[day] = point
		}
		point.Sales += b.Total.InexactFloat64()
		point.Bills++

		if b.CustomerName != "" {
			customers.add(b.CustomerName, 0, b.Total.InexactFloat64())
		}
	}

	avgBillValue := 0.0
	if completedBills > 0 {
		avgBillValue = totalRevenue.Div(decimal.NewFromInt(completedBills)).InexactFloat64()
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)
	breakdown := make([]response_models.DailyBreakdownPoint, 0, len(days))
	for _, day := range days {
		breakdown = append(breakdown, *daily[day])
	}

	topCustomers := make([]response_models.TopCustomer, 0, topRankLimit)
	for _, c := range customers.rankedByRevenue(topRankLimit) {
		topCustomers = append(topCustomers, response_models.TopCustomer{Name: c.Name, Revenue: c.Revenue})
	}

	// Product ranking spans every bill in the period, custom items
	// included, so one-off lines still show up in the report.
	products := newSalesTally()
	tallyBillItems(bills, products, false)
	topProducts := make([]response_models.ReportProduct, 0, topRankLimit)
	for _, p := range products.rankedByRevenue(topRankLimit) {
		topProducts = append(topProducts, response_models.ReportProduct{
			Name:     p.Name,
			Quantity: p.Quantity,
			Revenue:  p.Revenue,
		})
	}

	return &response_models.SalesReport{
		Period: response_models.ReportPeriod{
			StartDate: start.Format(reportDateLayout),
			EndDate:   end.Format(reportDateLayout),
		},
		Summary: response_models.SalesReportSummary{
			TotalBills:     int64(len(bills)),
			CompletedBills: completedBills,
			PendingBills:   pendingBills,
			TotalRevenue:   totalRevenue.InexactFloat64(),
			TotalSubtotal:  totalSubtotal.InexactFloat64(),
			TotalCgst:      totalCgst.InexactFloat64(),
			TotalSgst:      totalSgst.InexactFloat64(),
			AvgBillValue:   avgBillValue,
		},
		DailyBreakdown: breakdown,
		TopCustomers:   topCustomers,
		TopProducts:    topProducts,
	}, nil
}

// resolveReportPeriod turns the optional query params into inclusive
// business dates, defaulting to the last 30 days.
func resolveReportPeriod(startParam, endParam string) (time.Time, time.Time, error) {
	if startParam == "" || endParam == "" {
		end := utils.StartOfDay(utils.BusinessNow())
		return end.AddDate(0, 0, -reportDefaultDays), end, nil
	}

	vErr := utils.NewValidationError()
	start, err := utils.ParseBusinessDate(startParam)
	if err != nil {
		vErr.Add("start_date", "Date must be in YYYY-MM-DD format")
	}
	end, err := utils.ParseBusinessDate(endParam)
	if err != nil {
		vErr.Add("end_date", "Date must be in YYYY-MM-DD format")
	}
	if vErr.HasErrors() {
		return time.Time{}, time.Time{}, vErr
	}
	return start, end, nil
}

func (s *ReportService) InventoryReport(ctx context.Context, userID uuid.UUID) (*response_models.InventoryReport, error) {
	if _, err := requirePlanCapability(ctx, s.userRepo, userID, db_models.CapSalesReports, utils.ErrInventoryReportsNotInPlan); err != nil {
		return nil, err
	}

	stock, err := s.dashRepo.ProductStockSummary(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	critical, err := s.dashRepo.ListOutOfStockProducts(ctx, userID, 0)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	lowStock, err := s.dashRepo.ListLowStockProducts(ctx, userID, 0)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	all, err := s.productRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.InventoryReport{
		Summary: response_models.InventorySummary{
			TotalProducts:       stock.TotalProducts,
			InStock:             stock.InStock,
			LowStock:            stock.LowStock,
			OutOfStock:          stock.OutOfStock,
			TotalInventoryValue: stock.InventoryValue,
		},
		CriticalProducts: toInventoryProducts(critical),
		LowStockProducts: toInventoryProducts(lowStock),
		AllProducts:      toInventoryProducts(all),
	}, nil
}

func toInventoryProducts(products []db_models.Product) []response_models.InventoryProduct {
	result := make([]response_models.InventoryProduct, 0, len(products))
	for i := range products {
		p := &products[i]
		result = append(result, response_models.InventoryProduct{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price.InexactFloat64(),
			StockQuantity: p.StockQuantity,
		})
	}
	return result
}

// ---------- Excel export ----------

func (s *ReportService) ExportSalesReport(ctx context.Context, userID uuid.UUID, startParam, endParam string) ([]byte, string, error) {
	if _, err := requirePlanCapability(ctx, s.userRepo, userID, db_models.CapExcelExport, utils.ErrExcelExportNotInPlan); err != nil {
		return nil, "", err
	}

	report, err := s.buildSalesReport(ctx, userID, startParam, endParam)
	if err != nil {
		return nil, "", err
	}

	data, err := renderSalesWorkbook(report)
	if err != nil {
		return nil, "", err
	}

	s.metrics.ReportsExported.Inc()
	filename := fmt.Sprintf("sales_report_%s_to_%s.xlsx", report.Period.StartDate, report.Period.EndDate)
	return data, filename, nil
}

func renderSalesWorkbook(report *response_models.SalesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	summary := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(summary, "Summary"); err != nil {
		return nil, err
	}

	summaryRows := [][]interface{}{
		{"Period", report.Period.StartDate + " to " + report.Period.EndDate},
		{},
		{"Total Bills", report.Summary.TotalBills},
		{"Completed Bills", report.Summary.CompletedBills},
		{"Pending Bills", report.Summary.PendingBills},
		{"Total Revenue", report.Summary.TotalRevenue},
		{"Total Subtotal", report.Summary.TotalSubtotal},
		{"Total CGST", report.Summary.TotalCgst},
		{"Total SGST", report.Summary.TotalSgst},
		{"Average Bill Value", report.Summary.AvgBillValue},
	}
	if err := writeSheetRows(f, "Summary", summaryRows); err != nil {
		return nil, err
	}

	dailyRows := [][]interface{}{{"Date", "Sales", "Bills"}}
	for _, d := range report.DailyBreakdown {
		dailyRows = append(dailyRows, []interface{}{d.Date, d.Sales, d.Bills})
	}
	if err := addSheet(f, "Daily Breakdown", dailyRows); err != nil {
		return nil, err
	}

	customerRows := [][]interface{}{{"Customer", "Revenue"}}
	for _, c := range report.TopCustomers {
		customerRows = append(customerRows, []interface{}{c.Name, c.Revenue})
	}
	if err := addSheet(f, "Top Customers", customerRows); err != nil {
		return nil, err
	}

	productRows := [][]interface{}{{"Product", "Quantity", "Revenue"}}
	for _, p := range report.TopProducts {
		productRows = append(productRows, []interface{}{p.Name, p.Quantity, p.Revenue})
	}
	if err := addSheet(f, "Top Products", productRows); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeSheetRows(f, name, rows)
}

func writeSheetRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
