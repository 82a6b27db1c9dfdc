package response_models

import "github.com/google/uuid"

type TopProduct struct {
	Name         string `json:"name"`
	QuantitySold int    `json:"quantity_sold"`
}

type DashboardOverview struct {
	TotalRevenue    float64     `json:"total_revenue"`
	TotalBills      int64       `json:"total_bills"`
	MonthRevenue    float64     `json:"month_revenue"`
	MonthBills      int64       `json:"month_bills"`
	WeekRevenue     float64     `json:"week_revenue"`
	AvgBillValue    float64     `json:"avg_bill_value"`
	TotalProducts   int64       `json:"total_products"`
	LowStockCount   int64       `json:"low_stock_count"`
	OutOfStockCount int64       `json:"out_of_stock_count"`
	TopProduct      *TopProduct `json:"top_product"`
}

type MonthlySalesPoint struct {
	// Month is rendered as "Jan 2006".
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
	Bills int64   `json:"bills"`
}

type MonthlySalesResponse struct {
	MonthlySales []MonthlySalesPoint `json:"monthly_sales"`
}

type DailySalesPoint struct {
	// Date is rendered as "02 Jan".
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
	Bills int64   `json:"bills"`
}

type DailySalesResponse struct {
	DailySales []DailySalesPoint `json:"daily_sales"`
}

type LowStockProduct struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stock_quantity"`
	Price         float64   `json:"price"`
}

type OutOfStockProduct struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

type TopSellingProduct struct {
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

type ProductInsights struct {
	LowStockProducts   []LowStockProduct   `json:"low_stock_products"`
	OutOfStockProducts []OutOfStockProduct `json:"out_of_stock_products"`
	TopSellingProducts []TopSellingProduct `json:"top_selling_products"`
}

type RevenueBreakdown struct {
	Today                 float64 `json:"today"`
	Yesterday             float64 `json:"yesterday"`
	ThisWeek              float64 `json:"this_week"`
	ThisMonth             float64 `json:"this_month"`
	LastMonth             float64 `json:"last_month"`
	MonthGrowthPercentage float64 `json:"month_growth_percentage"`
}

type ReportPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type SalesReportSummary struct {
	TotalBills     int64   `json:"total_bills"`
	CompletedBills int64   `json:"completed_bills"`
	PendingBills   int64   `json:"pending_bills"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalSubtotal  float64 `json:"total_subtotal"`
	TotalCgst      float64 `json:"total_cgst"`
	TotalSgst      float64 `json:"total_sgst"`
	AvgBillValue   float64 `json:"avg_bill_value"`
}

type DailyBreakdownPoint struct {
	// Date is rendered as "2006-01-02".
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
	Bills int64   `json:"bills"`
}

type TopCustomer struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type ReportProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type SalesReport struct {
	Period         ReportPeriod          `json:"period"`
	Summary        SalesReportSummary    `json:"summary"`
	DailyBreakdown []DailyBreakdownPoint `json:"daily_breakdown"`
	TopCustomers   []TopCustomer         `json:"top_customers"`
	TopProducts    []ReportProduct       `json:"top_products"`
}

type InventorySummary struct {
	TotalProducts       int64   `json:"total_products"`
	InStock             int64   `json:"in_stock"`
	LowStock            int64   `json:"low_stock"`
	OutOfStock          int64   `json:"out_of_stock"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
}

type InventoryProduct struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	StockQuantity *int      `json:"stock_quantity"`
}

type InventoryReport struct {
	Summary          InventorySummary   `json:"summary"`
	CriticalProducts []InventoryProduct `json:"critical_products"`
	LowStockProducts []InventoryProduct `json:"low_stock_products"`
	AllProducts      []InventoryProduct `json:"all_products"`
}
