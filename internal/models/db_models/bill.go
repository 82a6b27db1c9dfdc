package db_models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	BillStatusPending   = "pending"
	BillStatusCompleted = "completed"
)

func IsValidBillStatus(s string) bool {
	return s == BillStatusPending || s == BillStatusCompleted
}

// BillItem is one line on a bill. Custom items are typed in at the
// counter and do not map to a catalog product, so they never touch stock
// and stay out of inventory insights.
type BillItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	IsCustom bool            `json:"isCustom"`
}

func (i BillItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Bill struct {
	BaseModel
	UserID        uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index:idx_bills_user_status,priority:1"`
	CustomerName  string         `gorm:"column:customer_name;not null"`
	CustomerPhone string         `gorm:"column:customer_phone"`
	Items         datatypes.JSON `gorm:"column:items"`

	Subtotal   decimal.Decimal `gorm:"type:numeric(10,2);default:0"`
	CgstAmount decimal.Decimal `gorm:"column:cgst_amount;type:numeric(10,2);default:0"`
	SgstAmount decimal.Decimal `gorm:"column:sgst_amount;type:numeric(10,2);default:0"`
	Total      decimal.Decimal `gorm:"type:numeric(10,2);default:0"`

	Status string `gorm:"default:completed;index:idx_bills_user_status,priority:2"`
	IsPaid bool   `gorm:"column:is_paid;default:false"`
}

func (b *Bill) ItemList() ([]BillItem, error) {
	if len(b.Items) == 0 {
		return nil, nil
	}
	var items []BillItem
	if err := json.Unmarshal(b.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (b *Bill) SetItems(items []BillItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	b.Items = datatypes.JSON(raw)
	return nil
}

func (b *Bill) ItemsCount() int {
	items, err := b.ItemList()
	if err != nil {
		return 0
	}
	return len(items)
}
