package services

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/request_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/response_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/pkg/metrics"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

type BillingServiceInterface interface {
	CreateBill(ctx context.Context, userID uuid.UUID, req request_models.CreateBillRequest) (*response_models.BillResponse, error)
	GetBill(ctx context.Context, userID, id uuid.UUID) (*response_models.BillResponse, error)
	ListBills(ctx context.Context, userID uuid.UUID, status string) ([]response_models.BillListItemResponse, error)
	UpdateBill(ctx context.Context, userID, id uuid.UUID, req request_models.UpdateBillRequest) (*response_models.BillResponse, error)
	DeleteBill(ctx context.Context, userID, id uuid.UUID) error
}

type BillingService struct {
	userRepo    repositories.UserRepository
	billRepo    repositories.BillRepository
	productRepo repositories.ProductRepository
	metrics     *metrics.Metrics
}

func NewBillingService(
	userRepo repositories.UserRepository,
	billRepo repositories.BillRepository,
	productRepo repositories.ProductRepository,
	m *metrics.Metrics,
) BillingServiceInterface {
	return &BillingService{
		userRepo:    userRepo,
		billRepo:    billRepo,
		productRepo: productRepo,
		metrics:     m,
	}
}

// CreateBill runs the whole billing pipeline: entitlement gate, item
// validation, tax computation, persistence, then stock and quota side
// effects.
func (b *BillingService) CreateBill(ctx context.Context, userID uuid.UUID, req request_models.CreateBillRequest) (*response_models.BillResponse, error) {
	user, err := b.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	now := utils.NowUnixSeconds()
	if !user.IsAccountActivated {
		return nil, utils.ErrAccountNotActivated
	}
	if !user.HasActivePlan(now) {
		return nil, utils.ErrPlanExpired
	}
	metered := user.IsMeteredPlan()
	if metered && user.BillingRequestsRemaining <= 0 {
		b.metrics.QuotaExhausted.Inc()
		return nil, utils.ErrQuotaExhausted
	}

	items, err := ValidateBillItems(req.Items)
	if err != nil {
		return nil, err
	}

	status := db_models.BillStatusCompleted
	if req.Status != nil {
		if !db_models.IsValidBillStatus(*req.Status) {
			vErr := utils.NewValidationError()
			vErr.Add("status", "Status must be pending or completed")
			return nil, vErr
		}
		status = *req.Status
	}

	subtotal, cgst, sgst, total := ComputeBillAmounts(items, user.GstPercentage)

	// Metered allowance is taken with a guarded decrement before the
	// insert; a concurrent request racing past the check above loses
	// here instead of overdrawing the quota.
	if metered {
		ok, err := b.userRepo.DecrementBillingRequests(ctx, user.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if !ok {
			b.metrics.QuotaExhausted.Inc()
			return nil, utils.ErrQuotaExhausted
		}
	}

	bill := &db_models.Bill{
		UserID:        user.ID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Subtotal:      subtotal,
		CgstAmount:    cgst,
		SgstAmount:    sgst,
		Total:         total,
		Status:        status,
	}
	if req.IsPaid != nil {
		bill.IsPaid = *req.IsPaid
	}
	if err := bill.SetItems(items); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := b.billRepo.Insert(ctx, bill); err != nil {
		if metered {
			if rerr := b.userRepo.RestoreBillingRequest(ctx, user.ID); rerr != nil {
				log.Error().Err(rerr).Str("user_id", user.ID.String()).Msg("quota restore failed")
			}
		}
		return nil, utils.ErrDatabaseError
	}

	b.applyStockReductions(ctx, user.ID, items)
	b.metrics.BillsCreated.Inc()

	var remaining *int
	if metered {
		left := user.BillingRequestsRemaining - 1
		remaining = &left
	}

	resp := toBillResponse(bill, remaining)
	return &resp, nil
}

// applyStockReductions decrements tracked stock for catalog-matched
// items. Custom and unmatched items are skipped; a failed decrement is
// logged but never fails the bill, which is already persisted.
func (b *BillingService) applyStockReductions(ctx context.Context, userID uuid.UUID, items []db_models.BillItem) {
	for _, item := range items {
		if item.IsCustom || item.Quantity <= 0 || item.Name == "" {
			continue
		}
		if err := b.productRepo.ReduceStockByName(ctx, userID, item.Name, item.Quantity); err != nil {
			log.Warn().Err(err).Str("product", item.Name).Msg("stock reduction failed")
		}
	}
}

func (b *BillingService) GetBill(ctx context.Context, userID, id uuid.UUID) (*response_models.BillResponse, error) {
	bill, err := b.billRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if bill == nil {
		return nil, utils.ErrBillNotFound
	}

	resp := toBillResponse(bill, nil)
	return &resp, nil
}

func (b *BillingService) ListBills(ctx context.Context, userID uuid.UUID, status string) ([]response_models.BillListItemResponse, error) {
	bills, err := b.billRepo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.BillListItemResponse, 0, len(bills))
	for i := range bills {
		result = append(result, toBillListItemResponse(&bills[i]))
	}
	return result, nil
}

func (b *BillingService) UpdateBill(ctx context.Context, userID, id uuid.UUID, req request_models.UpdateBillRequest) (*response_models.BillResponse, error) {
	bill, err := b.billRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if bill == nil {
		return nil, utils.ErrBillNotFound
	}

	if req.Status != nil && !db_models.IsValidBillStatus(*req.Status) {
		vErr := utils.NewValidationError()
		vErr.Add("status", "Status must be pending or completed")
		return nil, vErr
	}

	// Re-supplied items recompute every amount from scratch; omitted
	// items leave the stored amounts untouched.
	if req.Items != nil {
		items, err := ValidateBillItems(*req.Items)
		if err != nil {
			return nil, err
		}

		user, err := b.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if user == nil {
			return nil, utils.ErrUserNotFound
		}

		subtotal, cgst, sgst, total := ComputeBillAmounts(items, user.GstPercentage)
		bill.Subtotal = subtotal
		bill.CgstAmount = cgst
		bill.SgstAmount = sgst
		bill.Total = total
		if err := bill.SetItems(items); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	if req.CustomerName != nil {
		bill.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		bill.CustomerPhone = *req.CustomerPhone
	}
	if req.Status != nil {
		bill.Status = *req.Status
	}
	if req.IsPaid != nil {
		bill.IsPaid = *req.IsPaid
	}

	if err := b.billRepo.Update(ctx, bill); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toBillResponse(bill, nil)
	return &resp, nil
}

func (b *BillingService) DeleteBill(ctx context.Context, userID, id uuid.UUID) error {
	bill, err := b.billRepo.FindByID(ctx, userID, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if bill == nil {
		return utils.ErrBillNotFound
	}

	if err := b.billRepo.Delete(ctx, bill); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// ValidateBillItems checks every line item and reports all problems at
// once, each attributed to items[i].field.
func ValidateBillItems(inputs []request_models.BillItemInput) ([]db_models.BillItem, error) {
	vErr := utils.NewValidationError()
	if len(inputs) == 0 {
		vErr.Add("items", "At least one item is required")
		return nil, vErr
	}

	items := make([]db_models.BillItem, 0, len(inputs))
	for i, in := range inputs {
		item := db_models.BillItem{Name: in.Name, IsCustom: in.IsCustom}

		if strings.TrimSpace(in.Name) == "" {
			vErr.AddItem(i, "name", "Item name is required")
		}

		price, msg := coercePrice(in.Price)
		if msg != "" {
			vErr.AddItem(i, "price", msg)
		} else {
			item.Price = price
		}

		quantity, msg := coerceQuantity(in.Quantity)
		if msg != "" {
			vErr.AddItem(i, "quantity", msg)
		} else {
			item.Quantity = quantity
		}

		items = append(items, item)
	}

	if vErr.HasErrors() {
		return nil, vErr
	}
	return items, nil
}

func coercePrice(v interface{}) (decimal.Decimal, string) {
	switch p := v.(type) {
	case nil:
		return decimal.Zero, "Price is required"
	case float64:
		if p < 0 {
			return decimal.Zero, "Price must be non-negative"
		}
		return decimal.NewFromFloat(p), ""
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return decimal.Zero, "Price must be a valid number"
		}
		if d.IsNegative() {
			return decimal.Zero, "Price must be non-negative"
		}
		return d, ""
	default:
		return decimal.Zero, "Price must be a valid number"
	}
}

func coerceQuantity(v interface{}) (int, string) {
	switch q := v.(type) {
	case nil:
		return 0, "Quantity is required"
	case float64:
		if q != math.Trunc(q) {
			return 0, "Quantity must be a whole number"
		}
		if q <= 0 {
			return 0, "Quantity must be greater than zero"
		}
		return int(q), ""
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(q))
		if err != nil {
			return 0, "Quantity must be a valid number"
		}
		if !d.IsInteger() {
			return 0, "Quantity must be a whole number"
		}
		if d.Sign() <= 0 {
			return 0, "Quantity must be greater than zero"
		}
		return int(d.IntPart()), ""
	default:
		return 0, "Quantity must be a valid number"
	}
}

// ComputeBillAmounts derives the four persisted amounts. GST splits
// symmetrically into CGST and SGST; each component is rounded to 2
// places before totalling so total == subtotal + cgst + sgst holds on
// the stored values.
func ComputeBillAmounts(items []db_models.BillItem, gstPercentage decimal.Decimal) (subtotal, cgst, sgst, total decimal.Decimal) {
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	subtotal = subtotal.Round(2)

	half := gstPercentage.Div(decimal.NewFromInt(2))
	cgst = subtotal.Mul(half).Div(decimal.NewFromInt(100)).Round(2)
	sgst = cgst

	total = subtotal.Add(cgst).Add(sgst).Round(2)
	return subtotal, cgst, sgst, total
}

func toBillResponse(b *db_models.Bill, remaining *int) response_models.BillResponse {
	items, err := b.ItemList()
	if err != nil {
		log.Error().Err(err).Str("bill_id", b.ID.String()).Msg("stored items unreadable")
		items = []db_models.BillItem{}
	}

	return response_models.BillResponse{
		ID:                b.ID,
		CustomerName:      b.CustomerName,
		CustomerPhone:     b.CustomerPhone,
		Items:             items,
		ItemsCount:        len(items),
		Subtotal:          b.Subtotal.InexactFloat64(),
		CgstAmount:        b.CgstAmount.InexactFloat64(),
		SgstAmount:        b.SgstAmount.InexactFloat64(),
		Total:             b.Total.InexactFloat64(),
		Status:            b.Status,
		IsPaid:            b.IsPaid,
		RemainingRequests: remaining,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func toBillListItemResponse(b *db_models.Bill) response_models.BillListItemResponse {
	return response_models.BillListItemResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		ItemsCount:    b.ItemsCount(),
		Subtotal:      b.Subtotal.InexactFloat64(),
		CgstAmount:    b.CgstAmount.InexactFloat64(),
		SgstAmount:    b.SgstAmount.InexactFloat64(),
		Total:         b.Total.InexactFloat64(),
		Status:        b.Status,
		IsPaid:        b.IsPaid,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
