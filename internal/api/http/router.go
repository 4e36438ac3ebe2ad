package http

import (
	"net/http"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers bundles the request handlers mounted by NewRouter.
type Handlers struct {
	Auth      *AuthHandler
	Customers *CustomerHandler
	Items     *ItemHandler
	POs       *POHandler
	Invoices  *InvoiceHandler
	Finance   *FinanceHandler
	Products  *ProductHandler
	Settings  *SettingHandler
	Contacts  *ContactHandler
	Uploads   *ImageUploadHandler
	Health    *HealthHandler
}

// NewRouter builds the HTTP API. Route names drive the security level looked
// up by the auth middleware, so every route is named.
func NewRouter(h Handlers, tokens security.TokenManager, metrics *Metrics, corsOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Route not found", Code: domain.KindNotFound})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "Method not allowed", Code: domain.KindValidation})
	})

	r.Use(requestLogger, recovery, metrics.Middleware, authenticate(tokens))

	// Infrastructure
	r.HandleFunc("/health", h.Health.Check).Methods(http.MethodGet).Name("health")
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet).Name("metrics")
	r.HandleFunc("/uploads/{key:.+}", h.Uploads.HandleDownload).Methods(http.MethodGet).Name("uploads")

	api := r.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet).Name("auth.me")

	// Public site
	api.HandleFunc("/public/products", h.Products.ListPublic).Methods(http.MethodGet).Name("public.products")
	api.HandleFunc("/public/settings", h.Settings.ListPublic).Methods(http.MethodGet).Name("public.settings")
	api.HandleFunc("/public/contact", h.Contacts.Submit).Methods(http.MethodPost).Name("public.contact")

	// Dashboard and reports
	api.HandleFunc("/dashboard/stats", h.Finance.DashboardStats).Methods(http.MethodGet).Name("dashboard.stats")
	api.HandleFunc("/reports/summary", h.Finance.Summary).Methods(http.MethodGet).Name("reports.summary")
	api.HandleFunc("/reports/due-soon", h.Finance.DueSoon).Methods(http.MethodGet).Name("reports.dueSoon")
	api.HandleFunc("/reports/overdue", h.Finance.Overdue).Methods(http.MethodGet).Name("reports.overdue")

	// Customers
	api.HandleFunc("/customers", h.Customers.List).Methods(http.MethodGet).Name("customers.list")
	api.HandleFunc("/customers", h.Customers.Create).Methods(http.MethodPost).Name("customers.create")
	api.HandleFunc("/customers/{id:[0-9]+}", h.Customers.Get).Methods(http.MethodGet).Name("customers.get")
	api.HandleFunc("/customers/{id:[0-9]+}", h.Customers.Update).Methods(http.MethodPut).Name("customers.update")
	api.HandleFunc("/customers/{id:[0-9]+}", h.Customers.Delete).Methods(http.MethodDelete).Name("customers.delete")

	// Items
	api.HandleFunc("/items", h.Items.List).Methods(http.MethodGet).Name("items.list")
	api.HandleFunc("/items", h.Items.Create).Methods(http.MethodPost).Name("items.create")
	api.HandleFunc("/items/available", h.Items.ListAvailable).Methods(http.MethodGet).Name("items.available")
	api.HandleFunc("/items/{id:[0-9]+}", h.Items.Get).Methods(http.MethodGet).Name("items.get")
	api.HandleFunc("/items/{id:[0-9]+}", h.Items.Update).Methods(http.MethodPut).Name("items.update")
	api.HandleFunc("/items/{id:[0-9]+}", h.Items.Delete).Methods(http.MethodDelete).Name("items.delete")

	// Purchase orders
	api.HandleFunc("/po", h.POs.List).Methods(http.MethodGet).Name("po.list")
	api.HandleFunc("/po", h.POs.Create).Methods(http.MethodPost).Name("po.create")
	api.HandleFunc("/po/{id:[0-9]+}", h.POs.Get).Methods(http.MethodGet).Name("po.get")
	api.HandleFunc("/po/{id:[0-9]+}/status", h.POs.UpdateStatus).Methods(http.MethodPut).Name("po.status")

	// Invoices
	api.HandleFunc("/invoices", h.Invoices.List).Methods(http.MethodGet).Name("invoices.list")
	api.HandleFunc("/invoices", h.Invoices.Create).Methods(http.MethodPost).Name("invoices.create")
	api.HandleFunc("/invoices/{id:[0-9]+}", h.Invoices.Get).Methods(http.MethodGet).Name("invoices.get")

	// Finance ledger
	api.HandleFunc("/finance", h.Finance.List).Methods(http.MethodGet).Name("finance.list")
	api.HandleFunc("/finance", h.Finance.Create).Methods(http.MethodPost).Name("finance.create")

	// Products
	api.HandleFunc("/products", h.Products.List).Methods(http.MethodGet).Name("products.list")
	api.HandleFunc("/products", h.Products.Create).Methods(http.MethodPost).Name("products.create")
	api.HandleFunc("/products/{id:[0-9]+}", h.Products.Update).Methods(http.MethodPut).Name("products.update")
	api.HandleFunc("/products/{id:[0-9]+}", h.Products.Delete).Methods(http.MethodDelete).Name("products.delete")

	// Site settings
	api.HandleFunc("/settings", h.Settings.List).Methods(http.MethodGet).Name("settings.list")
	api.HandleFunc("/settings", h.Settings.Create).Methods(http.MethodPost).Name("settings.create")
	api.HandleFunc("/settings/hero-image", h.Settings.UploadHeroImage).Methods(http.MethodPost).Name("settings.heroImage")
	api.HandleFunc("/settings/{key}", h.Settings.Update).Methods(http.MethodPut).Name("settings.update")

	// Contact leads
	api.HandleFunc("/contact-submissions", h.Contacts.List).Methods(http.MethodGet).Name("contact.list")
	api.HandleFunc("/contact-submissions/{id:[0-9]+}/status", h.Contacts.UpdateStatus).Methods(http.MethodPut).Name("contact.status")

	return newCORS(corsOrigins).Handler(r)
}
