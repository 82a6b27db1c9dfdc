package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is one entry in a user's private catalog. StockQuantity is a
// pointer because untracked products (nil) behave differently from
// products that are tracked and out of stock (0).
type Product struct {
	BaseModel
	UserID        uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:idx_products_user_active,priority:1;index:idx_products_user_name,priority:1"`
	Name          string          `gorm:"not null;index:idx_products_user_name,priority:2"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2)"`
	Category      string          `gorm:"column:category"`
	StockQuantity *int            `gorm:"column:stock_quantity"`
	IsActive      bool            `gorm:"column:is_active;default:true;index:idx_products_user_active,priority:2"`
}
