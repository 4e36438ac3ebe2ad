package service

import (
	"context"
	"time"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/security"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Customer), args.Int(1), args.Error(2)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockItemRepo) List(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) LockForRental(ctx context.Context, ids []int64) ([]domain.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) MarkRented(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockItemRepo) ReleaseForPO(ctx context.Context, poID int64) (int64, error) {
	args := m.Called(ctx, poID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPORepo
type MockPORepo struct {
	mock.Mock
}

func (m *MockPORepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}
func (m *MockPORepo) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}
func (m *MockPORepo) GetForUpdate(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}
func (m *MockPORepo) ListItems(ctx context.Context, poID int64) ([]domain.POLineItem, error) {
	args := m.Called(ctx, poID)
	return args.Get(0).([]domain.POLineItem), args.Error(1)
}
func (m *MockPORepo) UpdateStatus(ctx context.Context, id int64, status domain.POStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockPORepo) List(ctx context.Context, filter domain.POFilter) ([]domain.PurchaseOrder, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.PurchaseOrder), args.Int(1), args.Error(2)
}
func (m *MockPORepo) CountByStatus(ctx context.Context, statuses []domain.POStatus, createdIn domain.DateRange) (int, error) {
	args := m.Called(ctx, statuses, createdIn)
	return args.Int(0), args.Error(1)
}
func (m *MockPORepo) ListActiveEndingBetween(ctx context.Context, from, to time.Time) ([]domain.PurchaseOrder, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.PurchaseOrder), args.Error(1)
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) ListByPO(ctx context.Context, poID int64) ([]domain.Invoice, error) {
	args := m.Called(ctx, poID)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) SumByPO(ctx context.Context, poID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, poID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockInvoiceRepo) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

// MockFinanceRepo
type MockFinanceRepo struct {
	mock.Mock
}

func (m *MockFinanceRepo) Create(ctx context.Context, entry *domain.FinanceEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockFinanceRepo) List(ctx context.Context, filter domain.FinanceFilter) ([]domain.FinanceEntry, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.FinanceEntry), args.Int(1), args.Error(2)
}
func (m *MockFinanceRepo) Totals(ctx context.Context, period domain.DateRange) (domain.FinanceTotals, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(domain.FinanceTotals), args.Error(1)
}

// MockSequenceRepo
type MockSequenceRepo struct {
	mock.Mock
}

func (m *MockSequenceRepo) Next(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) List(ctx context.Context, onlyActive bool) ([]domain.Product, error) {
	args := m.Called(ctx, onlyActive)
	return args.Get(0).([]domain.Product), args.Error(1)
}

// MockSettingRepo
type MockSettingRepo struct {
	mock.Mock
}

func (m *MockSettingRepo) List(ctx context.Context) ([]domain.SiteSetting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SiteSetting), args.Error(1)
}
func (m *MockSettingRepo) Get(ctx context.Context, key string) (*domain.SiteSetting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SiteSetting), args.Error(1)
}
func (m *MockSettingRepo) Create(ctx context.Context, s *domain.SiteSetting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSettingRepo) UpdateValue(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
func (m *MockSettingRepo) Upsert(ctx context.Context, s *domain.SiteSetting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockContactRepo
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, c *domain.ContactSubmission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContactRepo) List(ctx context.Context, status domain.ContactStatus) ([]domain.ContactSubmission, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.ContactSubmission), args.Error(1)
}
func (m *MockContactRepo) UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) StoreDataURL(ctx context.Context, folder, dataURL string) (string, error) {
	args := m.Called(ctx, folder, dataURL)
	return args.String(0), args.Error(1)
}
func (m *MockImageStorage) StoreUpload(ctx context.Context, folder string, upload *domain.Upload) (string, error) {
	args := m.Called(ctx, folder, upload)
	return args.String(0), args.Error(1)
}
func (m *MockImageStorage) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendAdminNotification(ctx context.Context, subject, message string) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}
func (m *MockEmailService) SendDueSoonDigest(ctx context.Context, orders []domain.PurchaseOrder) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReport(ctx context.Context, orders []domain.PurchaseOrder) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}
func (m *MockEmailService) SendContactNotification(ctx context.Context, c *domain.ContactSubmission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(user *domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}

// fakeTx runs the unit of work against the mocked repositories and counts
// attempts and commits.
type fakeTx struct {
	repos   repository.Repositories
	calls   int
	commits int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	f.calls++
	if err := fn(f.repos); err != nil {
		return err
	}
	f.commits++
	return nil
}

type testRepos struct {
	users     *MockUserRepo
	customers *MockCustomerRepo
	items     *MockItemRepo
	pos       *MockPORepo
	invoices  *MockInvoiceRepo
	finance   *MockFinanceRepo
	sequences *MockSequenceRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		users:     new(MockUserRepo),
		customers: new(MockCustomerRepo),
		items:     new(MockItemRepo),
		pos:       new(MockPORepo),
		invoices:  new(MockInvoiceRepo),
		finance:   new(MockFinanceRepo),
		sequences: new(MockSequenceRepo),
	}
}

func (r *testRepos) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:          r.users,
		Customers:      r.customers,
		Items:          r.items,
		PurchaseOrders: r.pos,
		Invoices:       r.invoices,
		Finance:        r.finance,
		Sequences:      r.sequences,
	}
}

type mockAsserter interface {
	AssertExpectations(t mock.TestingT) bool
}

func (r *testRepos) AssertExpectations(t mock.TestingT) {
	for _, m := range []mockAsserter{r.users, r.customers, r.items, r.pos, r.invoices, r.finance, r.sequences} {
		m.AssertExpectations(t)
	}
}

// AssertNoCalls checks that no repository was touched.
func (r *testRepos) AssertNoCalls(t mock.TestingT) {
	for _, m := range []*mock.Mock{
		&r.users.Mock, &r.customers.Mock, &r.items.Mock, &r.pos.Mock,
		&r.invoices.Mock, &r.finance.Mock, &r.sequences.Mock,
	} {
		if len(m.Calls) != 0 {
			t.Errorf("expected no repository calls, got %d", len(m.Calls))
		}
	}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
