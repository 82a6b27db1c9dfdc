package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

// lowStockThreshold splits tracked stock into in-stock and low-stock.
const lowStockThreshold = 10

type DashboardRepository interface {
	// Revenue aggregates over completed bills. start/end are unix
	// seconds; zero means unbounded, end is exclusive.
	SumCompletedTotal(ctx context.Context, userID uuid.UUID, start, end int64) (float64, error)
	AvgCompletedTotal(ctx context.Context, userID uuid.UUID) (float64, error)
	CountBills(ctx context.Context, userID uuid.UUID, status string, start, end int64) (int64, error)

	// Time series over completed bills, bucketed in the business timezone.
	MonthlySalesSeries(ctx context.Context, userID uuid.UUID, start int64) ([]BucketSalesRow, error)
	DailySalesSeries(ctx context.Context, userID uuid.UUID, start int64) ([]BucketSalesRow, error)

	// Stock classification over the active catalog.
	ProductStockSummary(ctx context.Context, userID uuid.UUID) (*StockSummaryRow, error)
	ListLowStockProducts(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Product, error)
	ListOutOfStockProducts(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Product, error)

	// BillsInRange feeds the item-level rankings: line items live as
	// JSON inside each bill, so top-N computations parse them in Go.
	BillsInRange(ctx context.Context, userID uuid.UUID, start, end int64, status string) ([]db_models.Bill, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------

type BucketSalesRow struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sales  float64   `gorm:"column:sales"`
	Bills  int64     `gorm:"column:bills"`
}

type StockSummaryRow struct {
	TotalProducts  int64   `gorm:"column:total_products"`
	InStock        int64   `gorm:"column:in_stock"`
	LowStock       int64   `gorm:"column:low_stock"`
	OutOfStock     int64   `gorm:"column:out_of_stock"`
	BelowThreshold int64   `gorm:"column:below_threshold"`
	InventoryValue float64 `gorm:"column:inventory_value"`
}

// ---------- Helpers ----------

func dateTrunc(interval, tz, unixColumn string) string {
	// unixColumn holds UNIX seconds; convert to timestamptz and truncate
	// in the given timezone so day/month buckets follow local calendars.
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + unixColumn + "))"
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + unixColumn + ")))"
}

func applyRange(tx *gorm.DB, start, end int64) *gorm.DB {
	if start > 0 {
		tx = tx.Where("created_at >= ?", start)
	}
	if end > 0 {
		tx = tx.Where("created_at < ?", end)
	}
	return tx
}

// ---------- Revenue aggregates ----------

func (r *dashboardRepository) SumCompletedTotal(ctx context.Context, userID uuid.UUID, start, end int64) (float64, error) {
	var sum float64
	tx := r.db.WithContext(ctx).
		Model(&db_models.Bill{}).
		Select("COALESCE(SUM(total), 0)").
		Where("user_id = ? AND status = ?", userID, db_models.BillStatusCompleted)
	err := applyRange(tx, start, end).Scan(&sum).Error
	return sum, err
}

func (r *dashboardRepository) AvgCompletedTotal(ctx context.Context, userID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&db_models.Bill{}).
		Select("COALESCE(AVG(total), 0)").
		Where("user_id = ? AND status = ?", userID, db_models.BillStatusCompleted).
		Scan(&avg).Error
	return avg, err
}

func (r *dashboardRepository) CountBills(ctx context.Context, userID uuid.UUID, status string, start, end int64) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).
		Model(&db_models.Bill{}).
		Where("user_id = ?", userID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err := applyRange(tx, start, end).Count(&n).Error
	return n, err
}

// ---------- Series ----------

func (r *dashboardRepository) MonthlySalesSeries(ctx context.Context, userID uuid.UUID, start int64) ([]BucketSalesRow, error) {
	return r.salesSeries(ctx, userID, "month", start)
}

func (r *dashboardRepository) DailySalesSeries(ctx context.Context, userID uuid.UUID, start int64) ([]BucketSalesRow, error) {
	return r.salesSeries(ctx, userID, "day", start)
}

func (r *dashboardRepository) salesSeries(ctx context.Context, userID uuid.UUID, interval string, start int64) ([]BucketSalesRow, error) {
	var rows []BucketSalesRow
	truncExpr := dateTrunc(interval, utils.BusinessTZ, "created_at")
	err := r.db.WithContext(ctx).
		Table("bills").
		Select(truncExpr+" AS bucket, SUM(total) AS sales, COUNT(*) AS bills", interval, utils.BusinessTZ).
		Where("user_id = ? AND status = ?", userID, db_models.BillStatusCompleted).
		Where("created_at >= ?", start).
		Where("deleted_at IS NULL").
		Group("bucket").
		Order("bucket ASC").
		Find(&rows).Error
	return rows, err
}

// ---------- Stock ----------

func (r *dashboardRepository) ProductStockSummary(ctx context.Context, userID uuid.UUID) (*StockSummaryRow, error) {
	var row StockSummaryRow
	err := r.db.WithContext(ctx).
		Table("products").
		Select(`
			COUNT(*) AS total_products,
			COUNT(*) FILTER (WHERE stock_quantity >= ?) AS in_stock,
			COUNT(*) FILTER (WHERE stock_quantity > 0 AND stock_quantity < ?) AS low_stock,
			COUNT(*) FILTER (WHERE stock_quantity <= 0) AS out_of_stock,
			COUNT(*) FILTER (WHERE stock_quantity < ?) AS below_threshold,
			COALESCE(SUM(price * COALESCE(stock_quantity, 0)), 0) AS inventory_value`,
			lowStockThreshold, lowStockThreshold, lowStockThreshold).
		Where("user_id = ? AND is_active = ?", userID, true).
		Where("deleted_at IS NULL").
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *dashboardRepository) ListLowStockProducts(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Product, error) {
	var products []db_models.Product
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Where("stock_quantity > 0 AND stock_quantity < ?", lowStockThreshold).
		Order("stock_quantity ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&products).Error
	return products, err
}

func (r *dashboardRepository) ListOutOfStockProducts(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Product, error) {
	var products []db_models.Product
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Where("stock_quantity <= 0")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&products).Error
	return products, err
}

// ---------- Bill fetch ----------

func (r *dashboardRepository) BillsInRange(ctx context.Context, userID uuid.UUID, start, end int64, status string) ([]db_models.Bill, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var bills []db_models.Bill
	err := applyRange(tx, start, end).Order("created_at DESC").Find(&bills).Error
	return bills, err
}
