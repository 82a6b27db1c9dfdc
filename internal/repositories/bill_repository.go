package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
)

type BillRepository interface {
	Insert(ctx context.Context, bill *db_models.Bill) error
	Update(ctx context.Context, bill *db_models.Bill) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*db_models.Bill, error)
	// ListByUser returns the user's bills newest first, optionally
	// narrowed to one status.
	ListByUser(ctx context.Context, userID uuid.UUID, status string) ([]db_models.Bill, error)
	Delete(ctx context.Context, bill *db_models.Bill) error
}

type billRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Insert(ctx context.Context, bill *db_models.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *billRepository) Update(ctx context.Context, bill *db_models.Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

func (r *billRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*db_models.Bill, error) {
	var bill db_models.Bill
	err := r.db.WithContext(ctx).
		First(&bill, "id = ? AND user_id = ?", id, userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &bill, nil
}

func (r *billRepository) ListByUser(ctx context.Context, userID uuid.UUID, status string) ([]db_models.Bill, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var bills []db_models.Bill
	err := tx.Order("created_at DESC").Find(&bills).Error
	return bills, err
}

func (r *billRepository) Delete(ctx context.Context, bill *db_models.Bill) error {
	return r.db.WithContext(ctx).Delete(bill).Error
}
