package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
)

// In-memory repository doubles shared across the service tests.

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*db_models.User
	insertErr error
	updateErr error
}

func newFakeUserRepo(users ...*db_models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*db_models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *db_models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) ListAll(_ context.Context) ([]db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]db_models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (f *fakeUserRepo) DecrementBillingRequests(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	if u == nil || u.BillingRequestsRemaining <= 0 {
		return false, nil
	}
	u.BillingRequestsRemaining--
	return true, nil
}

func (f *fakeUserRepo) RestoreBillingRequest(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u := f.users[id]; u != nil {
		u.BillingRequestsRemaining++
	}
	return nil
}

type fakePlanRepo struct {
	mu    sync.Mutex
	plans map[uuid.UUID]*db_models.Plan
}

func newFakePlanRepo(plans ...*db_models.Plan) *fakePlanRepo {
	repo := &fakePlanRepo{plans: make(map[uuid.UUID]*db_models.Plan)}
	for _, p := range plans {
		repo.plans[p.ID] = p
	}
	return repo
}

func (f *fakePlanRepo) Insert(_ context.Context, plan *db_models.Plan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) Update(_ context.Context, plan *db_models.Plan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plans[id], nil
}

func (f *fakePlanRepo) FindByKey(_ context.Context, planKey string) (*db_models.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.plans {
		if p.PlanKey == planKey {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePlanRepo) ListPublic(_ context.Context) ([]db_models.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	plans := make([]db_models.Plan, 0, len(f.plans))
	for _, p := range f.plans {
		if p.IsActive && !p.IsCustom {
			plans = append(plans, *p)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Price.LessThan(plans[j].Price) })
	return plans, nil
}

type fakeBillRepo struct {
	mu        sync.Mutex
	bills     []*db_models.Bill
	insertErr error
}

func newFakeBillRepo() *fakeBillRepo { return &fakeBillRepo{} }

func (f *fakeBillRepo) Insert(_ context.Context, bill *db_models.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	f.bills = append(f.bills, bill)
	return nil
}

func (f *fakeBillRepo) Update(_ context.Context, bill *db_models.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bills {
		if f.bills[i].ID == bill.ID {
			f.bills[i] = bill
			return nil
		}
	}
	return nil
}

func (f *fakeBillRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*db_models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bills {
		if b.ID == id && b.UserID == userID {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBillRepo) ListByUser(_ context.Context, userID uuid.UUID, status string) ([]db_models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []db_models.Bill
	for i := len(f.bills) - 1; i >= 0; i-- {
		b := f.bills[i]
		if b.UserID != userID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

func (f *fakeBillRepo) Delete(_ context.Context, bill *db_models.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bills {
		if f.bills[i].ID == bill.ID {
			f.bills = append(f.bills[:i], f.bills[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*db_models.Product
}

func newFakeProductRepo(products ...*db_models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*db_models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) Insert(_ context.Context, product *db_models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *db_models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*db_models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[id]
	if p == nil || p.UserID != userID {
		return nil, nil
	}
	return p, nil
}

func (f *fakeProductRepo) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]db_models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []db_models.Product
	for _, p := range f.products {
		if p.UserID == userID && p.IsActive {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeProductRepo) ReduceStockByName(_ context.Context, userID uuid.UUID, name string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.UserID != userID || p.Name != name || !p.IsActive {
			continue
		}
		current := 0
		if p.StockQuantity != nil {
			current = *p.StockQuantity
		}
		next := current - quantity
		if next < 0 {
			next = 0
		}
		p.StockQuantity = &next
	}
	return nil
}

// fakeMailService records every send so tests can assert on deliveries
// without a network.
type fakeMailService struct {
	mu        sync.Mutex
	otps      map[string]string
	resets    map[string]string
	welcomes  []string
	activated []string
	sendErr   error
}

func newFakeMailService() *fakeMailService {
	return &fakeMailService{
		otps:   make(map[string]string),
		resets: make(map[string]string),
	}
}

func (f *fakeMailService) SendOtpMail(to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.otps[to] = code
	return nil
}

func (f *fakeMailService) SendResetPasswordMail(to, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.resets[to] = token
	return nil
}

func (f *fakeMailService) SendWelcomeMail(to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes = append(f.welcomes, to)
	return nil
}

func (f *fakeMailService) SendAccountActivatedMail(to, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activated = append(f.activated, to)
	return nil
}

func (f *fakeMailService) welcomeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.welcomes)
}

func (f *fakeMailService) activatedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.activated)
}

func (f *fakeMailService) lastOtp(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.otps[email]
}

func (f *fakeMailService) lastResetToken(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets[email]
}

// fakeDashboardRepo returns canned aggregates; the SQL behind the real
// one is exercised against a live database, not here.
type fakeDashboardRepo struct {
	sumFn     func(start, end int64) float64
	avg       float64
	countFn   func(status string, start, end int64) int64
	monthly   []repositories.BucketSalesRow
	daily     []repositories.BucketSalesRow
	stock     repositories.StockSummaryRow
	lowStock  []db_models.Product
	outStock  []db_models.Product
	bills     []db_models.Bill
	rangeCall func(start, end int64, status string)
}

func (f *fakeDashboardRepo) SumCompletedTotal(_ context.Context, _ uuid.UUID, start, end int64) (float64, error) {
	if f.sumFn == nil {
		return 0, nil
	}
	return f.sumFn(start, end), nil
}

func (f *fakeDashboardRepo) AvgCompletedTotal(_ context.Context, _ uuid.UUID) (float64, error) {
	return f.avg, nil
}

func (f *fakeDashboardRepo) CountBills(_ context.Context, _ uuid.UUID, status string, start, end int64) (int64, error) {
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(status, start, end), nil
}

func (f *fakeDashboardRepo) MonthlySalesSeries(_ context.Context, _ uuid.UUID, _ int64) ([]repositories.BucketSalesRow, error) {
	return f.monthly, nil
}

func (f *fakeDashboardRepo) DailySalesSeries(_ context.Context, _ uuid.UUID, _ int64) ([]repositories.BucketSalesRow, error) {
	return f.daily, nil
}

func (f *fakeDashboardRepo) ProductStockSummary(_ context.Context, _ uuid.UUID) (*repositories.StockSummaryRow, error) {
	stock := f.stock
	return &stock, nil
}

func (f *fakeDashboardRepo) ListLowStockProducts(_ context.Context, _ uuid.UUID, limit int) ([]db_models.Product, error) {
	if limit > 0 && len(f.lowStock) > limit {
		return f.lowStock[:limit], nil
	}
	return f.lowStock, nil
}

func (f *fakeDashboardRepo) ListOutOfStockProducts(_ context.Context, _ uuid.UUID, limit int) ([]db_models.Product, error) {
	if limit > 0 && len(f.outStock) > limit {
		return f.outStock[:limit], nil
	}
	return f.outStock, nil
}

func (f *fakeDashboardRepo) BillsInRange(_ context.Context, _ uuid.UUID, start, end int64, status string) ([]db_models.Bill, error) {
	if f.rangeCall != nil {
		f.rangeCall(start, end, status)
	}
	if status == "" {
		return f.bills, nil
	}
	var result []db_models.Bill
	for _, b := range f.bills {
		if b.Status == status {
			result = append(result, b)
		}
	}
	return result, nil
}
