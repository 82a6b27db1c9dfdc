package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
)

type ProductRepository interface {
	Insert(ctx context.Context, product *db_models.Product) error
	Update(ctx context.Context, product *db_models.Product) error
	// FindByID returns the product only if it belongs to userID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*db_models.Product, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Product, error)

	// ReduceStockByName decrements tracked stock for the active catalog
	// product with that name, floored at zero. A miss is not an error:
	// custom and unmatched items skip stock entirely.
	ReduceStockByName(ctx context.Context, userID uuid.UUID, name string, quantity int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Insert(ctx context.Context, product *db_models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *db_models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*db_models.Product, error) {
	var product db_models.Product
	err := r.db.WithContext(ctx).
		First(&product, "id = ? AND user_id = ?", id, userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Product, error) {
	var products []db_models.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) ReduceStockByName(ctx context.Context, userID uuid.UUID, name string, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Product{}).
		Where("user_id = ? AND name = ? AND is_active = ?", userID, name, true).
		UpdateColumn("stock_quantity", gorm.Expr("GREATEST(COALESCE(stock_quantity, 0) - ?, 0)", quantity)).Error
}
