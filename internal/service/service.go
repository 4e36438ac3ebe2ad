package service

import (
	"context"

	"genset-rental-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, input domain.LoginInput) (*domain.LoginResult, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	// EnsureAdmin creates the bootstrap admin account unless it already exists.
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, input domain.CustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, input domain.CustomerInput) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	ListCustomers(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, domain.Pagination, error)
}

type ItemService interface {
	CreateItem(ctx context.Context, input domain.ItemInput) (*domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	UpdateItem(ctx context.Context, id int64, input domain.ItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	ListItems(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error)
}

type PurchaseOrderService interface {
	CreatePO(ctx context.Context, input domain.CreatePOInput) (*domain.PurchaseOrder, error)
	GetPO(ctx context.Context, id int64) (*domain.PODetail, error)
	ListPOs(ctx context.Context, filter domain.POFilter) ([]domain.PurchaseOrder, domain.Pagination, error)
	UpdateStatus(ctx context.Context, id int64, status domain.POStatus) (*domain.PurchaseOrder, error)
}

type InvoiceService interface {
	RecordPayment(ctx context.Context, input domain.RecordPaymentInput) (*domain.PaymentReceipt, error)
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, domain.Pagination, error)
}

type FinanceService interface {
	CreateEntry(ctx context.Context, input domain.FinanceEntryInput) (*domain.FinanceEntry, error)
	ListEntries(ctx context.Context, filter domain.FinanceFilter) ([]domain.FinanceEntry, domain.Pagination, error)
}

type ReportService interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	GetSummary(ctx context.Context, period domain.DateRange) (*domain.ReportSummary, error)
	// DueSoon lists active purchase orders ending between today and the
	// due-soon horizon, both included.
	DueSoon(ctx context.Context) ([]domain.PurchaseOrder, error)
	// Overdue lists active purchase orders whose rental period already ended.
	Overdue(ctx context.Context) ([]domain.PurchaseOrder, error)
}

type ProductService interface {
	ListProducts(ctx context.Context, onlyActive bool) ([]domain.Product, error)
	CreateProduct(ctx context.Context, input domain.ProductInput, image *domain.Upload) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, input domain.ProductInput, image *domain.Upload) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type SiteSettingService interface {
	ListSettings(ctx context.Context) ([]domain.SiteSetting, error)
	PublicSettings(ctx context.Context) (map[string]string, error)
	CreateSetting(ctx context.Context, input domain.SiteSettingInput) (*domain.SiteSetting, error)
	UpdateSetting(ctx context.Context, key, value string) (*domain.SiteSetting, error)
	SetHeroImage(ctx context.Context, image *domain.Upload) (*domain.SiteSetting, error)
}

type ContactService interface {
	Submit(ctx context.Context, input domain.ContactInput) (*domain.ContactSubmission, error)
	ListSubmissions(ctx context.Context, status domain.ContactStatus) ([]domain.ContactSubmission, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus) error
}

// ImageStorageService stores signatures and product photos through the
// storage collaborator and hands back reference strings.
type ImageStorageService interface {
	// StoreDataURL decodes a base64 data URL and stores it under folder.
	// An empty input stores nothing and returns "".
	StoreDataURL(ctx context.Context, folder, dataURL string) (string, error)
	StoreUpload(ctx context.Context, folder string, upload *domain.Upload) (string, error)
	// Delete removes a stored reference. Unknown references are ignored.
	Delete(ctx context.Context, ref string) error
}

type EmailService interface {
	SendAdminNotification(ctx context.Context, subject, message string) error
	SendDueSoonDigest(ctx context.Context, orders []domain.PurchaseOrder) error
	SendOverdueReport(ctx context.Context, orders []domain.PurchaseOrder) error
	SendContactNotification(ctx context.Context, c *domain.ContactSubmission) error
}
