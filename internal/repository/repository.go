package repository

import (
	"context"
	"time"

	"genset-rental-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetByLogin finds a user by username or email.
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error)

	// LockForRental reads the given items with a row lock for the rest of
	// the transaction. Missing ids are simply absent from the result.
	LockForRental(ctx context.Context, ids []int64) ([]domain.Item, error)
	MarkRented(ctx context.Context, ids []int64) (int64, error)
	// ReleaseForPO returns the PO's rented items to available unless another
	// item-holding purchase order still references them.
	ReleaseForPO(ctx context.Context, poID int64) (int64, error)
}

type PurchaseOrderRepository interface {
	// Create inserts the header and all line items.
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	// GetForUpdate reads the header with a row lock.
	GetForUpdate(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	ListItems(ctx context.Context, poID int64) ([]domain.POLineItem, error)
	UpdateStatus(ctx context.Context, id int64, status domain.POStatus) error
	List(ctx context.Context, filter domain.POFilter) ([]domain.PurchaseOrder, int, error)
	CountByStatus(ctx context.Context, statuses []domain.POStatus, createdIn domain.DateRange) (int, error)
	ListActiveEndingBetween(ctx context.Context, from, to time.Time) ([]domain.PurchaseOrder, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	ListByPO(ctx context.Context, poID int64) ([]domain.Invoice, error)
	SumByPO(ctx context.Context, poID int64) (decimal.Decimal, error)
	List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, int, error)
}

type FinanceRepository interface {
	Create(ctx context.Context, entry *domain.FinanceEntry) error
	List(ctx context.Context, filter domain.FinanceFilter) ([]domain.FinanceEntry, int, error)
	Totals(ctx context.Context, period domain.DateRange) (domain.FinanceTotals, error)
}

type SequenceRepository interface {
	// Next allocates the next document number for prefix. It must run inside
	// a transaction; the counter row stays locked until commit.
	Next(ctx context.Context, prefix string) (string, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, onlyActive bool) ([]domain.Product, error)
}

type SiteSettingRepository interface {
	List(ctx context.Context) ([]domain.SiteSetting, error)
	Get(ctx context.Context, key string) (*domain.SiteSetting, error)
	Create(ctx context.Context, s *domain.SiteSetting) error
	UpdateValue(ctx context.Context, key, value string) error
	Upsert(ctx context.Context, s *domain.SiteSetting) error
}

type ContactRepository interface {
	Create(ctx context.Context, c *domain.ContactSubmission) error
	List(ctx context.Context, status domain.ContactStatus) ([]domain.ContactSubmission, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus) error
}

// Repositories bundles every repository bound to one database handle,
// either the pool or a single transaction.
type Repositories struct {
	Users          UserRepository
	Customers      CustomerRepository
	Items          ItemRepository
	PurchaseOrders PurchaseOrderRepository
	Invoices       InvoiceRepository
	Finance        FinanceRepository
	Sequences      SequenceRepository
	Products       ProductRepository
	Settings       SiteSettingRepository
	Contacts       ContactRepository
}

// Transactor runs fn as one atomic unit of work. The repositories passed to
// fn share a transaction that commits when fn returns nil and rolls back
// otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
